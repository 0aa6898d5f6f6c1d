package handlers

import (
	"context"

	"github.com/fra-atlas/fra-atlas-backend/types"
)

// TextExtractor turns uploaded file bytes into recognized text.
// Implemented by ocr.Processor.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, filename string) (string, error)
}

// FieldExtractor parses recognized text into structured claim fields.
// Implemented by nlp.Extractor.
type FieldExtractor interface {
	Extract(text string) types.ExtractedFields
}

// Recommender scores a claim against a scheme catalog.
// Implemented by recommend.Engine.
type Recommender interface {
	Recommend(claim types.Claim, schemes []types.Scheme) []types.ScoredScheme
}

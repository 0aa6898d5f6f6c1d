package ocr

import (
	"context"
	"strings"

	apperrors "github.com/fra-atlas/fra-atlas-backend/errors"
	"go.uber.org/zap"
)

// PDFNotSupportedMessage is the fixed placeholder returned for PDF uploads.
const PDFNotSupportedMessage = "PDF processing requires additional setup"

var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"bmp":  true,
	"tiff": true,
	"gif":  true,
}

// Processor dispatches an uploaded file by media kind and runs the
// recognition pipeline for images. Stateless after construction.
type Processor struct {
	normalizer *Normalizer
	runner     *Runner
	log        *zap.SugaredLogger
}

// NewProcessor wires the normalizer and strategy runner into a file-level
// text extractor.
func NewProcessor(normalizer *Normalizer, runner *Runner, log *zap.SugaredLogger) *Processor {
	return &Processor{normalizer: normalizer, runner: runner, log: log}
}

// ExtractText processes file bytes according to the declared filename's
// extension. Images go through normalize → multi-strategy recognition; PDFs
// return a fixed not-implemented message; anything else is rejected.
func (p *Processor) ExtractText(ctx context.Context, data []byte, filename string) (string, error) {
	ext := fileExtension(filename)

	switch {
	case imageExtensions[ext]:
		return p.extractFromImage(ctx, data)
	case ext == "pdf":
		p.log.Warnw("PDF upload received; PDF extraction is not implemented", "filename", filename)
		return PDFNotSupportedMessage, nil
	default:
		return "", apperrors.UnsupportedMedia(ext)
	}
}

func (p *Processor) extractFromImage(ctx context.Context, data []byte) (string, error) {
	img, err := p.normalizer.Normalize(data)
	if err != nil {
		return "", apperrors.DecodeFailed(err)
	}

	text := p.runner.Run(ctx, img)
	p.log.Infow("OCR extracted text", "length", len(text))
	return text, nil
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

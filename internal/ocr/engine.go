// Package ocr contains the text-extraction pipeline: image normalization,
// a pluggable recognition engine contract, and the multi-strategy runner that
// picks the best recognition result for a scanned form.
package ocr

import (
	"context"
	"strconv"
)

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// Image is the encoded image payload (PNG, JPEG, ...).
	Image []byte
	// Languages is a list of Tesseract language codes (e.g., "hin", "eng")
	// used to select trained data.
	Languages []string
	// Metadata passes engine-specific variables (e.g., the page segmentation
	// mode for Tesseract) without hard-coding them into the API surface.
	Metadata map[string]string
}

// Result captures recognition output for a single input image.
type Result struct {
	// PlainText contains the linearized text extracted from the image.
	PlainText string
	// Language indicates the dominant language hint used, if any.
	Language string
}

// Engine is the recognition provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}

// InputOption mutates a recognition input.
type InputOption func(*Input)

// WithLanguages sets language hints on the input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithPageSegMode sets the Tesseract page segmentation mode variable.
func WithPageSegMode(mode int) InputOption {
	return func(in *Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]string)
		}
		in.Metadata["tessedit_pageseg_mode"] = strconv.Itoa(mode)
	}
}

// NewInput builds an Input from raw image bytes and options.
func NewInput(image []byte, opts ...InputOption) Input {
	in := Input{Image: image}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

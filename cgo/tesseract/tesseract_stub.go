//go:build !cgo || !tesseract

package tesseract

import (
	"context"
	"image"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// Ensure Recognizer implements the interface.
var _ driven.TextRecognizer = (*Recognizer)(nil)

// Available reports whether this build links Tesseract.
const Available = false

// Recognizer extracts text from screenshots using Tesseract.
// This is a stub for builds without Tesseract.
type Recognizer struct {
	language string
}

// New creates a recognizer.
// This is a stub for builds without Tesseract.
func New(language string) (*Recognizer, error) {
	return &Recognizer{language: language}, nil
}

// Recognize always fails in stub builds.
func (r *Recognizer) Recognize(_ context.Context, _ image.Image) (string, error) {
	return "", domain.ErrRecognizerUnavailable
}

// Close is a no-op.
func (r *Recognizer) Close() error {
	return nil
}

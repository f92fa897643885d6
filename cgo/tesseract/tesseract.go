//go:build cgo && tesseract

package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/custodia-labs/shotbrain/internal/core/ports/driven"
)

// Ensure Recognizer implements the interface.
var _ driven.TextRecognizer = (*Recognizer)(nil)

// Available reports whether this build links Tesseract.
const Available = true

// Recognizer extracts text from screenshots using Tesseract.
type Recognizer struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a recognizer for a "+"-separated language list such as "vie+eng".
func New(language string) (*Recognizer, error) {
	langs := splitLanguages(language)
	if len(langs) == 0 {
		return nil, errors.New("tesseract: language cannot be empty")
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("tesseract: setting language: %w", err)
	}

	return &Recognizer{client: client}, nil
}

// Recognize returns the text found in img.
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("tesseract: encoding image: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return "", errors.New("tesseract: recognizer is closed")
	}
	if err := r.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("tesseract: setting image: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// Close releases the Tesseract client.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client == nil {
		return nil
	}
	err := r.client.Close()
	r.client = nil
	return err
}

func splitLanguages(language string) []string {
	var out []string
	for _, l := range strings.Split(language, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

package classifier

import (
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/extract/noise"
)

// Input is one capture as seen by the rules.
type Input struct {
	// Raw is the recognised text exactly as supplied.
	// Annotation offsets index into Raw.
	Raw string

	// Text is Raw in Unicode NFC, so decomposed diacritics from OCR match
	// the precomposed forms used by the patterns.
	Text string

	QRPayload   string
	Annotations []domain.Annotation

	cleaned *string
}

// NewInput prepares an input for classification.
func NewInput(raw, qrPayload string, annotations []domain.Annotation) *Input {
	return &Input{
		Raw:         raw,
		Text:        norm.NFC.String(raw),
		QRPayload:   qrPayload,
		Annotations: annotations,
	}
}

// Cleaned returns the noise-filtered text, computed on first use.
func (in *Input) Cleaned() string {
	if in.cleaned == nil {
		c := noise.Clean(in.Text)
		in.cleaned = &c
	}
	return *in.cleaned
}

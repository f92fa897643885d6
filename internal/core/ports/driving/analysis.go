package driving

import (
	"context"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// AnalysisService turns screenshots and recognised text into captures.
type AnalysisService interface {
	// Analyse classifies, segments and titles the input and persists the
	// resulting capture. Returns domain.ErrNoContent for empty input.
	Analyse(ctx context.Context, input domain.CaptureInput) (*domain.Capture, error)

	// Preview runs the same analysis as Analyse without persisting.
	Preview(ctx context.Context, input domain.CaptureInput) (*domain.Capture, error)

	// AnalyseImage recognises text and QR codes in the image at path and
	// analyses the result. Supplied text, QR payload or annotations in
	// input take precedence over what is recognised.
	AnalyseImage(ctx context.Context, path string, input domain.CaptureInput) (*domain.Capture, error)

	// Rules returns the active classifier cascade order.
	Rules() []string
}

package driving

import (
	"context"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// CaptureService manages stored captures.
type CaptureService interface {
	// List returns captures passing the filter, newest first.
	List(ctx context.Context, filter domain.CaptureFilter) ([]domain.Capture, error)

	// Get retrieves a capture by ID or unique ID prefix.
	Get(ctx context.Context, id string) (*domain.Capture, error)

	// Delete removes a capture and its vault image.
	Delete(ctx context.Context, id string) error
}

package driven

import (
	"context"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// CaptureStore persists analysed screenshots.
type CaptureStore interface {
	// Save stores a capture. Creates if new, replaces if the ID exists.
	Save(ctx context.Context, capture *domain.Capture) error

	// Get retrieves a capture by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Capture, error)

	// Delete removes a capture by ID. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns captures passing the filter, newest CapturedAt first.
	List(ctx context.Context, filter domain.CaptureFilter) ([]domain.Capture, error)
}

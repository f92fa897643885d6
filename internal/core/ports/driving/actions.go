package driving

import (
	"context"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// ActionService resolves and performs the actions offered for a capture.
// This is used by TUI, CLI, and MCP adapters.
type ActionService interface {
	// For returns the actions of every block of a capture, in block order.
	For(capture *domain.Capture) []domain.Action

	// ForBlock returns the action of a single block.
	ForBlock(capture *domain.Capture, block domain.TextBlock) domain.Action

	// Perform opens the action's target or copies its text to the clipboard.
	Perform(ctx context.Context, action domain.Action) error
}

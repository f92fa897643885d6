package mcp

import (
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

// Ports holds the services the MCP server calls. Without Capture the
// capture resources are not registered and list_captures fails.
type Ports struct {
	// Analysis classifies screenshot text.
	Analysis driving.AnalysisService

	// Capture lists and retrieves stored captures.
	Capture driving.CaptureService

	// Actions resolves the action offered for each block.
	Actions driving.ActionService
}

// Validate reports ErrMissingAnalysisService when Analysis is nil.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}

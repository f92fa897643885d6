// Package tui provides an interactive terminal user interface for shotbrain.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Capture lists, opens and deletes stored captures.
	Capture driving.CaptureService

	// Actions resolves and performs block actions.
	Actions driving.ActionService

	// Analysis analyses pasted text. Optional; the analyse view is
	// unavailable without it.
	Analysis driving.AnalysisService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	capture driving.CaptureService,
	actions driving.ActionService,
	analysis driving.AnalysisService,
) *Ports {
	return &Ports{
		Capture:  capture,
		Actions:  actions,
		Analysis: analysis,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Capture == nil {
		return ErrMissingCaptureService
	}
	if p.Actions == nil {
		return ErrMissingActionService
	}
	return nil
}

// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewCaptures lists stored captures.
	ViewCaptures ViewType = iota
	// ViewCaptureDetail shows one capture with its blocks and actions.
	ViewCaptureDetail
	// ViewAnalyse accepts pasted text for analysis.
	ViewAnalyse
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewCaptures:
		return "captures"
	case ViewCaptureDetail:
		return "capture_detail"
	case ViewAnalyse:
		return "analyse"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// CapturesLoaded carries a capture listing from the service.
type CapturesLoaded struct {
	Captures []domain.Capture
	Err      error
}

// CaptureSelected signals a capture was opened from the list.
type CaptureSelected struct {
	Capture domain.Capture
}

// CaptureAnalysed carries the result of analysing pasted text.
type CaptureAnalysed struct {
	Capture *domain.Capture
	Err     error
}

// CaptureDeleted signals a capture was removed.
type CaptureDeleted struct {
	ID  string
	Err error
}

// ActionPerformed signals a block action completed.
type ActionPerformed struct {
	Action domain.Action
	Err    error
}

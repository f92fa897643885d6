package tui

import "errors"

// Errors returned by Ports.Validate and NewApp.
var (
	ErrInvalidPorts          = errors.New("tui: invalid ports configuration")
	ErrMissingCaptureService = errors.New("tui: capture service is required")
	ErrMissingActionService  = errors.New("tui: action service is required")
)

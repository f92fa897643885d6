// Package mcp provides an MCP (Model Context Protocol) server adapter for shotbrain.
// It lets AI assistants classify screenshot text and browse stored captures.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")

// ErrMissingCaptureService is returned by capture tools when no capture
// service is configured.
var ErrMissingCaptureService = errors.New("mcp: capture service not configured")

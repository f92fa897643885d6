package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for shotbrain resources.
	uriScheme = "shotbrain://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for recent captures.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "captures",
		Name:        "captures",
		Description: "Recent screenshot captures, sensitive categories excluded",
		MIMEType:    "application/json",
	}, s.handleCapturesResource)

	// Template for a single capture.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "captures/{captureId}",
		Name:        "capture",
		Description: "A stored capture with its text, blocks and actions",
		MIMEType:    "application/json",
	}, s.handleCaptureResource)
}

// handleCapturesResource returns the most recent captures.
func (s *Server) handleCapturesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Capture == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	captures, err := s.ports.Capture.List(ctx, domain.CaptureFilter{Limit: defaultListLimit})
	if err != nil {
		return nil, fmt.Errorf("listing captures: %w", err)
	}

	infos := make([]CaptureOutput, len(captures))
	for i := range captures {
		infos[i] = s.toOutput(&captures[i], false)
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling captures: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleCaptureResource returns one capture in full.
func (s *Server) handleCaptureResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Capture == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract captureId from URI: shotbrain://captures/{captureId}
	id := extractCaptureID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	capture, err := s.ports.Capture.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting capture: %w", err)
	}

	type captureDetail struct {
		CaptureOutput
		RawText   string `json:"raw_text"`
		QRPayload string `json:"qr_payload,omitempty"`
	}

	data, err := json.MarshalIndent(captureDetail{
		CaptureOutput: s.toOutput(capture, true),
		RawText:       capture.RawText,
		QRPayload:     capture.QRPayload,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling capture: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractCaptureID extracts the capture ID from a URI like shotbrain://captures/{captureId}.
func extractCaptureID(uri string) string {
	const prefix = uriScheme + "captures/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// defaultListLimit caps list_captures when no limit is given.
const defaultListLimit = 20

// AnalyseInput is the input schema for the analyse_text tool.
type AnalyseInput struct {
	Text        string              `json:"text" jsonschema:"recognised screenshot text"`
	QR          string              `json:"qr,omitempty" jsonschema:"decoded QR payload, if the screenshot carries one"`
	Annotations []domain.Annotation `json:"annotations,omitempty" jsonschema:"entity spans over the text, offsets in characters"`
	Save        bool                `json:"save,omitempty" jsonschema:"store the result as a capture (default false)"`
}

// CaptureOutput is a capture as returned by the tools.
type CaptureOutput struct {
	ID               string        `json:"id,omitempty"`
	Category         string        `json:"category"`
	ExtractedContent string        `json:"extracted_content"`
	Title            string        `json:"title"`
	EventTime        string        `json:"event_time,omitempty"`
	CapturedAt       string        `json:"captured_at,omitempty"`
	Blocks           []BlockOutput `json:"blocks,omitempty"`
}

// BlockOutput is one content block with its suggested action.
type BlockOutput struct {
	Kind     string            `json:"kind"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Action   string            `json:"action,omitempty"`
	Target   string            `json:"target,omitempty"`
}

// ListInput is the input schema for the list_captures tool.
type ListInput struct {
	Category         string `json:"category,omitempty" jsonschema:"restrict to one category: url, phone, bank, event, map, note, other"`
	Query            string `json:"query,omitempty" jsonschema:"case-insensitive text to match"`
	Limit            int    `json:"limit,omitempty" jsonschema:"maximum number of captures to return (default 20)"`
	IncludeSensitive bool   `json:"include_sensitive,omitempty" jsonschema:"include bank captures when no category is given"`
}

// ListOutput is the output schema for the list_captures tool.
type ListOutput struct {
	Captures []CaptureOutput `json:"captures"`
	Count    int             `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyse_text",
		Description: "Classify screenshot text into link, phone, bank, event, map, note or other and split it into blocks",
	}, s.handleAnalyse)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_captures",
		Description: "List stored screenshot captures, newest first",
	}, s.handleList)
}

// handleAnalyse handles the analyse_text tool invocation.
func (s *Server) handleAnalyse(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyseInput,
) (*mcp.CallToolResult, CaptureOutput, error) {
	in := domain.CaptureInput{
		Text:        input.Text,
		QRPayload:   input.QR,
		Annotations: input.Annotations,
	}

	var (
		capture *domain.Capture
		err     error
	)
	if input.Save {
		capture, err = s.ports.Analysis.Analyse(ctx, in)
	} else {
		capture, err = s.ports.Analysis.Preview(ctx, in)
	}
	if err != nil {
		return nil, CaptureOutput{}, err
	}

	out := s.toOutput(capture, true)
	if !input.Save {
		out.ID = ""
	}
	return nil, out, nil
}

// handleList handles the list_captures tool invocation.
func (s *Server) handleList(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	if s.ports.Capture == nil {
		return nil, ListOutput{}, ErrMissingCaptureService
	}

	filter := domain.CaptureFilter{
		Query:            input.Query,
		IncludeSensitive: input.IncludeSensitive,
		Limit:            input.Limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if input.Category != "" {
		c, err := domain.ParseCategory(input.Category)
		if err != nil {
			return nil, ListOutput{}, err
		}
		filter.Category = &c
	}

	captures, err := s.ports.Capture.List(ctx, filter)
	if err != nil {
		return nil, ListOutput{}, err
	}

	output := ListOutput{
		Captures: make([]CaptureOutput, len(captures)),
		Count:    len(captures),
	}
	for i := range captures {
		output.Captures[i] = s.toOutput(&captures[i], false)
	}

	return nil, output, nil
}

// toOutput converts a capture, optionally with its blocks and actions.
func (s *Server) toOutput(c *domain.Capture, withBlocks bool) CaptureOutput {
	out := CaptureOutput{
		ID:               c.ID,
		Category:         c.Category.String(),
		ExtractedContent: c.ExtractedContent,
		Title:            c.Title,
	}
	if c.EventTime != nil {
		out.EventTime = c.EventTime.UTC().Format(time.RFC3339)
	}
	if !c.CapturedAt.IsZero() {
		out.CapturedAt = c.CapturedAt.UTC().Format(time.RFC3339)
	}
	if !withBlocks {
		return out
	}

	out.Blocks = make([]BlockOutput, len(c.Blocks))
	for i, b := range c.Blocks {
		out.Blocks[i] = BlockOutput{
			Kind:     string(b.Kind),
			Content:  b.Content,
			Metadata: b.Metadata,
		}
		if s.ports.Actions != nil {
			a := s.ports.Actions.ForBlock(c, b)
			out.Blocks[i].Action = string(a.Kind)
			out.Blocks[i].Target = a.Target
		}
	}
	return out
}

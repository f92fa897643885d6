package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	capture  *domain.Capture
	err      error
	saved    bool
	previews int
	lastIn   domain.CaptureInput
}

func (m *mockAnalysisService) Analyse(_ context.Context, in domain.CaptureInput) (*domain.Capture, error) {
	m.saved = true
	m.lastIn = in
	return m.capture, m.err
}

func (m *mockAnalysisService) Preview(_ context.Context, in domain.CaptureInput) (*domain.Capture, error) {
	m.previews++
	m.lastIn = in
	return m.capture, m.err
}

func (m *mockAnalysisService) AnalyseImage(_ context.Context, _ string, _ domain.CaptureInput) (*domain.Capture, error) {
	return m.capture, m.err
}

func (m *mockAnalysisService) Rules() []string {
	return domain.DefaultRules()
}

// mockCaptureService is a mock implementation of driving.CaptureService.
type mockCaptureService struct {
	captures   []domain.Capture
	capture    *domain.Capture
	err        error
	lastFilter domain.CaptureFilter
}

func (m *mockCaptureService) List(_ context.Context, filter domain.CaptureFilter) ([]domain.Capture, error) {
	m.lastFilter = filter
	return m.captures, m.err
}

func (m *mockCaptureService) Get(_ context.Context, _ string) (*domain.Capture, error) {
	return m.capture, m.err
}

func (m *mockCaptureService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockActionService is a mock implementation of driving.ActionService.
type mockActionService struct{}

func (m *mockActionService) For(c *domain.Capture) []domain.Action {
	out := make([]domain.Action, len(c.Blocks))
	for i, b := range c.Blocks {
		out[i] = m.ForBlock(c, b)
	}
	return out
}

func (m *mockActionService) ForBlock(_ *domain.Capture, b domain.TextBlock) domain.Action {
	if b.Kind == domain.BlockURLLink {
		return domain.Action{Kind: domain.ActionOpen, Target: b.Content, Text: b.Content}
	}
	return domain.Action{Kind: domain.ActionCopy, Text: b.Content}
}

func (m *mockActionService) Perform(_ context.Context, _ domain.Action) error {
	return nil
}

func urlCapture() *domain.Capture {
	return &domain.Capture{
		ID:               "cap-1",
		RawText:          "Xem tại https://shopee.vn",
		Category:         domain.CategoryURL,
		ExtractedContent: "https://shopee.vn",
		Title:            "Shopee",
		Blocks: []domain.TextBlock{
			{Kind: domain.BlockURLLink, Content: "https://shopee.vn", Metadata: map[string]string{domain.MetaDomain: "shopee.vn"}},
			{Kind: domain.BlockText, Content: "Xem tại"},
		},
		CapturedAt: time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
	}
}

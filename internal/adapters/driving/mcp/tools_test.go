package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

func TestServer_handleAnalyse(t *testing.T) {
	ctx := context.Background()

	t.Run("previews by default", func(t *testing.T) {
		analysis := &mockAnalysisService{capture: urlCapture()}
		server, err := NewServer(&Ports{Analysis: analysis, Actions: &mockActionService{}})
		require.NoError(t, err)

		_, output, err := server.handleAnalyse(ctx, nil, AnalyseInput{Text: "Xem tại https://shopee.vn"})

		require.NoError(t, err)
		assert.False(t, analysis.saved)
		assert.Equal(t, 1, analysis.previews)
		assert.Equal(t, "Xem tại https://shopee.vn", analysis.lastIn.Text)
		assert.Empty(t, output.ID)
		assert.Equal(t, "url", output.Category)
		assert.Equal(t, "https://shopee.vn", output.ExtractedContent)
		assert.Equal(t, "Shopee", output.Title)
		require.Len(t, output.Blocks, 2)
		assert.Equal(t, "url_link", output.Blocks[0].Kind)
		assert.Equal(t, "open", output.Blocks[0].Action)
		assert.Equal(t, "https://shopee.vn", output.Blocks[0].Target)
		assert.Equal(t, "copy", output.Blocks[1].Action)
	})

	t.Run("saves when asked", func(t *testing.T) {
		analysis := &mockAnalysisService{capture: urlCapture()}
		server, err := NewServer(&Ports{Analysis: analysis})
		require.NoError(t, err)

		_, output, err := server.handleAnalyse(ctx, nil, AnalyseInput{Text: "x", QR: "000201", Save: true})

		require.NoError(t, err)
		assert.True(t, analysis.saved)
		assert.Equal(t, "000201", analysis.lastIn.QRPayload)
		assert.Equal(t, "cap-1", output.ID)
		assert.Empty(t, output.Blocks[0].Action, "no action service")
	})

	t.Run("event time is RFC3339", func(t *testing.T) {
		at := time.Date(2026, 3, 15, 19, 30, 0, 0, time.UTC)
		analysis := &mockAnalysisService{capture: &domain.Capture{
			Category: domain.CategoryEvent, EventTime: &at,
		}}
		server, err := NewServer(&Ports{Analysis: analysis})
		require.NoError(t, err)

		_, output, err := server.handleAnalyse(ctx, nil, AnalyseInput{Text: "19h30 15/3"})

		require.NoError(t, err)
		assert.Equal(t, "2026-03-15T19:30:00Z", output.EventTime)
	})

	t.Run("returns error on analysis failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{err: domain.ErrNoContent}})
		require.NoError(t, err)

		_, _, err = server.handleAnalyse(ctx, nil, AnalyseInput{})

		assert.ErrorIs(t, err, domain.ErrNoContent)
	})
}

func TestServer_handleList(t *testing.T) {
	ctx := context.Background()

	t.Run("lists captures with default limit", func(t *testing.T) {
		captures := &mockCaptureService{captures: []domain.Capture{*urlCapture()}}
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Capture: captures})
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{Query: "shopee"})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "cap-1", output.Captures[0].ID)
		assert.Equal(t, "2025-06-10T10:00:00Z", output.Captures[0].CapturedAt)
		assert.Empty(t, output.Captures[0].Blocks)
		assert.Equal(t, defaultListLimit, captures.lastFilter.Limit)
		assert.Equal(t, "shopee", captures.lastFilter.Query)
		assert.Nil(t, captures.lastFilter.Category)
	})

	t.Run("parses category", func(t *testing.T) {
		captures := &mockCaptureService{}
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Capture: captures})
		require.NoError(t, err)

		_, output, err := server.handleList(ctx, nil, ListInput{Category: "BANK", Limit: 3})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		require.NotNil(t, captures.lastFilter.Category)
		assert.Equal(t, domain.CategoryBank, *captures.lastFilter.Category)
		assert.Equal(t, 3, captures.lastFilter.Limit)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Capture: &mockCaptureService{}})
		require.NoError(t, err)

		_, _, err = server.handleList(ctx, nil, ListInput{Category: "recipe"})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("requires capture service", func(t *testing.T) {
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}})
		require.NoError(t, err)

		_, _, err = server.handleList(ctx, nil, ListInput{})

		assert.ErrorIs(t, err, ErrMissingCaptureService)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		captures := &mockCaptureService{err: errors.New("db locked")}
		server, err := NewServer(&Ports{Analysis: &mockAnalysisService{}, Capture: captures})
		require.NoError(t, err)

		_, _, err = server.handleList(ctx, nil, ListInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "db locked")
	})
}

package captures

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

// MockCaptureService implements driving.CaptureService for testing.
type MockCaptureService struct {
	captures    []domain.Capture
	listErr     error
	deleteErr   error
	lastFilter  domain.CaptureFilter
	deletedIDs  []string
	listInvoked int
}

func (m *MockCaptureService) List(_ context.Context, filter domain.CaptureFilter) ([]domain.Capture, error) {
	m.listInvoked++
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []domain.Capture
	for i := range m.captures {
		if filter.Matches(&m.captures[i]) {
			out = append(out, m.captures[i])
		}
	}
	return out, nil
}

func (m *MockCaptureService) Get(_ context.Context, id string) (*domain.Capture, error) {
	for i := range m.captures {
		if m.captures[i].ID == id {
			return &m.captures[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockCaptureService) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func sampleCaptures() []domain.Capture {
	at := time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)
	return []domain.Capture{
		{ID: "11111111-aaaa", Title: "shopee.vn", Category: domain.CategoryURL,
			RawText: "https://shopee.vn", ExtractedContent: "https://shopee.vn", CapturedAt: at},
		{ID: "22222222-bbbb", Title: "Vietcombank", Category: domain.CategoryBank,
			RawText: "VCB 0123456789", ExtractedContent: "Vietcombank (NGUYEN VAN A)\n0123456789", CapturedAt: at},
		{ID: "33333333-cccc", Title: "0912 345 678", Category: domain.CategoryPhone,
			RawText: "Hotline 0912345678", ExtractedContent: "0912345678", CapturedAt: at},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds the resulting message back into the view.
func run(t *testing.T, v *View, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	v.Update(msg)
	return msg
}

func loadedView(t *testing.T) (*View, *MockCaptureService) {
	t.Helper()
	svc := &MockCaptureService{captures: sampleCaptures()}
	v := NewView(nil, nil, svc)
	v.SetDimensions(120, 30)
	run(t, v, v.Init())
	return v, svc
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.False(t, v.Loading())
	assert.Equal(t, "all", v.FilterLabel())
	assert.Len(t, v.filters, len(domain.AllCategories())+1)
}

func TestView_InitHidesSensitive(t *testing.T) {
	v, svc := loadedView(t)

	assert.False(t, v.Loading())
	assert.Len(t, v.Captures(), 2)
	assert.False(t, svc.lastFilter.IncludeSensitive)
	assert.Nil(t, svc.lastFilter.Category)
}

func TestView_NilServiceReportsError(t *testing.T) {
	v := NewView(nil, nil, nil)

	run(t, v, v.Init())

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "capture service not available")
}

func TestView_ListError(t *testing.T) {
	svc := &MockCaptureService{listErr: errors.New("disk full")}
	v := NewView(nil, nil, svc)

	run(t, v, v.Init())

	assert.EqualError(t, v.Err(), "disk full")
}

func TestView_SensitiveToggle(t *testing.T) {
	v, svc := loadedView(t)

	_, cmd := v.Update(key("s"))
	run(t, v, cmd)

	assert.True(t, svc.lastFilter.IncludeSensitive)
	assert.Len(t, v.Captures(), 3)
	assert.Equal(t, "all +sensitive", v.FilterLabel())
}

func TestView_FilterCycles(t *testing.T) {
	v, svc := loadedView(t)

	_, cmd := v.Update(key("f"))
	run(t, v, cmd)

	require.NotNil(t, svc.lastFilter.Category)
	assert.Equal(t, domain.CategoryURL, *svc.lastFilter.Category)
	assert.Len(t, v.Captures(), 1)
	assert.Equal(t, "url", v.FilterLabel())

	// Bank is selected explicitly, so it lists without the sensitive toggle.
	_, cmd = v.Update(key("tab"))
	run(t, v, cmd)
	_, cmd = v.Update(key("f"))
	run(t, v, cmd)
	assert.Equal(t, domain.CategoryBank, *svc.lastFilter.Category)
	assert.Len(t, v.Captures(), 1)

	for range domain.AllCategories()[3:] {
		v.Update(key("f"))
	}
	_, cmd = v.Update(key("f"))
	run(t, v, cmd)
	assert.Nil(t, svc.lastFilter.Category)
}

func TestView_Search(t *testing.T) {
	v, svc := loadedView(t)

	v.Update(key("/"))
	require.True(t, v.Searching())

	for _, r := range "hotline" {
		v.Update(key(string(r)))
	}
	_, cmd := v.Update(key("enter"))
	run(t, v, cmd)

	assert.False(t, v.Searching())
	assert.Equal(t, "hotline", svc.lastFilter.Query)
	require.Len(t, v.Captures(), 1)
	assert.Equal(t, "33333333-cccc", v.Captures()[0].ID)
	assert.Contains(t, v.FilterLabel(), `"hotline"`)

	v.Update(key("/"))
	_, cmd = v.Update(key("esc"))
	run(t, v, cmd)
	assert.Equal(t, "", svc.lastFilter.Query)
	assert.Len(t, v.Captures(), 2)
}

func TestView_SearchCapturesQuitKey(t *testing.T) {
	v, _ := loadedView(t)

	v.Update(key("/"))
	_, cmd := v.Update(key("q"))

	if cmd != nil {
		_, isQuit := cmd().(messages.Quit)
		assert.False(t, isQuit)
	}
	assert.Equal(t, "q", v.query.Value())
}

func TestView_SelectOpensCapture(t *testing.T) {
	v, _ := loadedView(t)

	v.Update(key("down"))
	_, cmd := v.Update(key("enter"))

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.CaptureSelected)
	require.True(t, ok)
	assert.Equal(t, "33333333-cccc", msg.Capture.ID)
}

func TestView_SelectOnEmptyList(t *testing.T) {
	v := NewView(nil, nil, &MockCaptureService{})
	run(t, v, v.Init())

	_, cmd := v.Update(key("enter"))

	assert.Nil(t, cmd)
}

func TestView_NavigationKeys(t *testing.T) {
	tests := []struct {
		key  string
		want messages.ViewType
	}{
		{"n", messages.ViewAnalyse},
		{"?", messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, _ := loadedView(t)

			_, cmd := v.Update(key(tt.key))

			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: tt.want}, cmd())
		})
	}
}

func TestView_Quit(t *testing.T) {
	v, _ := loadedView(t)

	_, cmd := v.Update(key("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}

func TestView_DeleteConfirmed(t *testing.T) {
	v, svc := loadedView(t)

	v.Update(key("d"))
	require.True(t, v.ConfirmingDelete())
	assert.Contains(t, v.View(), "Delete")

	_, cmd := v.Update(key("y"))
	require.NotNil(t, cmd)
	deleted := cmd()
	assert.Equal(t, messages.CaptureDeleted{ID: "11111111-aaaa"}, deleted)

	_, cmd = v.Update(deleted)
	assert.Equal(t, "Deleted 11111111", v.Message())
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"11111111-aaaa"}, svc.deletedIDs)
}

func TestView_DeleteCancelled(t *testing.T) {
	v, svc := loadedView(t)

	v.Update(key("d"))
	_, cmd := v.Update(key("n"))

	assert.Nil(t, cmd)
	assert.False(t, v.ConfirmingDelete())
	assert.Empty(t, svc.deletedIDs)
}

func TestView_DeleteError(t *testing.T) {
	v, _ := loadedView(t)

	v.Update(messages.CaptureDeleted{ID: "x", Err: errors.New("locked")})

	assert.EqualError(t, v.Err(), "locked")
}

func TestView_Reload(t *testing.T) {
	v, svc := loadedView(t)
	before := svc.listInvoked

	_, cmd := v.Update(key("r"))
	assert.True(t, v.Loading())
	run(t, v, cmd)

	assert.Equal(t, before+1, svc.listInvoked)
	assert.False(t, v.Loading())
}

func TestView_ViewRendersCaptures(t *testing.T) {
	v, _ := loadedView(t)

	view := v.View()

	assert.Contains(t, view, "Captures (2)")
	assert.Contains(t, view, "shopee.vn")
	assert.NotContains(t, view, "Vietcombank")
	assert.Contains(t, view, "[n] analyse")
}

func TestView_ViewEmpty(t *testing.T) {
	v := NewView(nil, nil, &MockCaptureService{})
	run(t, v, v.Init())

	assert.Contains(t, v.View(), "No captures yet")
}

func TestView_ErrorOccurred(t *testing.T) {
	v, _ := loadedView(t)

	v.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.Contains(t, v.View(), "Error: boom")
}

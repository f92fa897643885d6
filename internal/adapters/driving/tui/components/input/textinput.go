// Package input provides text input components for the TUI.
package input

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
)

const (
	queryLabel     = "Find: "
	minQueryWidth  = 20
	queryCharLimit = 256
)

// QueryInput is the single-line search field above the capture list. It
// starts blurred; Focus begins editing and Commit or Clear ends it.
type QueryInput struct {
	field  textinput.Model
	styles *styles.Styles
	width  int
}

// NewQueryInput creates a blurred, empty query field.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.Prompt = ""
	field.Placeholder = "text, title or content"
	field.CharLimit = queryCharLimit

	q := &QueryInput{field: field, styles: s}
	q.SetWidth(60)
	return q
}

// Update feeds a message to the field while it is focused.
func (q *QueryInput) Update(msg tea.Msg) tea.Cmd {
	if !q.field.Focused() {
		return nil
	}
	var cmd tea.Cmd
	q.field, cmd = q.field.Update(msg)
	return cmd
}

// View renders the field while editing, and the applied query otherwise.
func (q *QueryInput) View() string {
	label := q.styles.Title.Render(queryLabel)
	if q.field.Focused() {
		return lipgloss.JoinHorizontal(lipgloss.Center, label, q.styles.InputField.Render(q.field.View()))
	}
	if query := q.Query(); query != "" {
		return label + q.styles.Muted.Render(fmt.Sprintf("%q  (/ to edit)", query))
	}
	return ""
}

// Focus starts editing and returns the cursor blink command.
func (q *QueryInput) Focus() tea.Cmd {
	q.field.CursorEnd()
	return q.field.Focus()
}

// Commit stops editing and returns the query to apply.
func (q *QueryInput) Commit() string {
	q.field.Blur()
	return q.Query()
}

// Clear stops editing and empties the field.
func (q *QueryInput) Clear() {
	q.field.Blur()
	q.field.Reset()
}

// Value returns the raw field contents.
func (q *QueryInput) Value() string {
	return q.field.Value()
}

// Query returns the field contents without surrounding space.
func (q *QueryInput) Query() string {
	return strings.TrimSpace(q.field.Value())
}

// Focused reports whether the field is being edited.
func (q *QueryInput) Focused() bool {
	return q.field.Focused()
}

// SetWidth sizes the field to the available width, label included.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	q.field.Width = max(width-len(queryLabel)-4, minQueryWidth)
}

package input

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
)

const (
	textAreaCharLimit = 8192
	minTextAreaWidth  = 20
	minTextAreaHeight = 3
)

// TextArea is a multi-line field for pasting recognised screenshot text.
type TextArea struct {
	textarea textarea.Model
	styles   *styles.Styles
	width    int
	height   int
}

// NewTextArea creates a focused text area.
func NewTextArea(s *styles.Styles) *TextArea {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste screenshot text..."
	ta.ShowLineNumbers = false
	ta.CharLimit = textAreaCharLimit
	ta.Focus()

	t := &TextArea{
		textarea: ta,
		styles:   s,
	}
	t.SetDimensions(60, 8)
	return t
}

// Init initialises the text area.
func (t *TextArea) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles input messages.
func (t *TextArea) Update(msg tea.Msg) (*TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)
	return t, cmd
}

// View renders the text area inside a bordered field.
func (t *TextArea) View() string {
	return t.styles.InputField.Render(t.textarea.View())
}

// Value returns the entered text.
func (t *TextArea) Value() string {
	return t.textarea.Value()
}

// SetValue replaces the entered text.
func (t *TextArea) SetValue(value string) {
	t.textarea.SetValue(value)
}

// Focus sets focus on the text area.
func (t *TextArea) Focus() tea.Cmd {
	return t.textarea.Focus()
}

// Blur removes focus from the text area.
func (t *TextArea) Blur() {
	t.textarea.Blur()
}

// Focused returns whether the text area is focused.
func (t *TextArea) Focused() bool {
	return t.textarea.Focused()
}

// SetDimensions sizes the text area, leaving room for the border.
func (t *TextArea) SetDimensions(width, height int) {
	t.width = width
	t.height = height
	t.textarea.SetWidth(max(width-4, minTextAreaWidth))
	t.textarea.SetHeight(max(height, minTextAreaHeight))
}

// Width returns the current width.
func (t *TextArea) Width() int {
	return t.width
}

// Height returns the current height.
func (t *TextArea) Height() int {
	return t.height
}

// Reset clears the text area.
func (t *TextArea) Reset() {
	t.textarea.Reset()
}

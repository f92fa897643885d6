// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
)

const timeLayout = "02 Jan 15:04"

// CaptureList displays captures in a navigable list.
type CaptureList struct {
	captures []domain.Capture
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewCaptureList creates a new capture list component.
func NewCaptureList(s *styles.Styles) *CaptureList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CaptureList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the capture list.
func (l *CaptureList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *CaptureList) Update(msg tea.Msg) (*CaptureList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.captures) > 0 {
				l.selected = len(l.captures) - 1
			}
		}
	}
	return l, nil
}

// View renders the capture list.
func (l *CaptureList) View() string {
	if len(l.captures) == 0 {
		return l.styles.Muted.Render("No captures")
	}

	// Each capture takes two lines.
	visibleCount := max(l.height/2, 1)

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := min(start+visibleCount, len(l.captures))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderCapture(i, &l.captures[i]))
	}
	return strings.Join(lines, "\n")
}

// renderCapture formats a capture as a title line and a preview line.
func (l *CaptureList) renderCapture(index int, c *domain.Capture) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	badge := l.styles.Category(c.Category).Render(fmt.Sprintf("%-5s", c.Category.String()))
	when := c.CapturedAt.Local().Format(timeLayout)

	title := c.Title
	if title == "" {
		title = "(Untitled)"
	}
	title = Truncate(title, max(l.width-len(when)-14, 10))

	var titleLine string
	if index == l.selected {
		titleLine = indicator + badge + " " + l.styles.Selected.Render(title) + "  " + l.styles.Muted.Render(when)
	} else {
		titleLine = indicator + badge + " " + l.styles.Normal.Render(title) + "  " + l.styles.Muted.Render(when)
	}

	preview := Truncate(FirstLine(c.ExtractedContent), max(l.width-6, 20))
	return titleLine + "\n" + l.styles.Muted.Render("    "+preview)
}

// SetCaptures replaces the listed captures, keeping the selection in range.
func (l *CaptureList) SetCaptures(captures []domain.Capture) {
	l.captures = captures
	if l.selected >= len(captures) {
		l.selected = max(len(captures)-1, 0)
	}
}

// Captures returns the listed captures.
func (l *CaptureList) Captures() []domain.Capture {
	return l.captures
}

// Selected returns the index of the selected capture.
func (l *CaptureList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *CaptureList) SetSelected(index int) {
	if index >= 0 && index < len(l.captures) {
		l.selected = index
	}
}

// SelectedCapture returns the currently selected capture, or nil if none.
func (l *CaptureList) SelectedCapture() *domain.Capture {
	if len(l.captures) == 0 || l.selected < 0 || l.selected >= len(l.captures) {
		return nil
	}
	return &l.captures[l.selected]
}

// MoveUp moves selection up.
func (l *CaptureList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *CaptureList) MoveDown() {
	if l.selected < len(l.captures)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *CaptureList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *CaptureList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *CaptureList) Height() int {
	return l.height
}

// Count returns the number of captures.
func (l *CaptureList) Count() int {
	return len(l.captures)
}

// IsEmpty returns whether the list is empty.
func (l *CaptureList) IsEmpty() bool {
	return len(l.captures) == 0
}

// FirstLine returns the first non-blank line of s, trimmed.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

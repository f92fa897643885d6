// Package status renders the one-line bar at the bottom of the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
)

// State selects the bar's left-hand text and its key hints.
type State string

const (
	StateReady     State = "ready"
	StateLoading   State = "loading"
	StateAnalysing State = "analysing"
	StateError     State = "error"
	StateHelp      State = "help"
	StateList      State = "list"
	StateDetail    State = "detail"
)

// Status is what the bar shows. The app rebuilds it after every update.
type Status struct {
	State   State
	Message string

	// Count and Filter describe the capture list in StateList.
	Count  int
	Filter string
}

// Bar shows the current Status on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	hints  help.Model
	status Status
	width  int
}

// NewBar creates a ready bar. Nil arguments take their defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	hints := help.New()
	hints.Styles.ShortKey = s.Normal
	hints.Styles.ShortDesc = s.Muted
	hints.Styles.ShortSeparator = s.Muted

	return &Bar{
		styles: s,
		keymap: km,
		hints:  hints,
		status: Status{State: StateReady},
		width:  80,
	}
}

// Show replaces the displayed status.
func (b *Bar) Show(st Status) {
	if st.State == "" {
		st.State = StateReady
	}
	b.status = st
}

// View renders the bar at its current width.
func (b *Bar) View() string {
	left := b.left()
	b.hints.Width = max(b.width-lipgloss.Width(left)-3, 0)
	right := b.hints.ShortHelpView(b.bindings())

	gap := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) left() string {
	st := b.status
	switch st.State {
	case StateLoading:
		return b.styles.Muted.Render("Loading...")
	case StateAnalysing:
		return b.styles.Muted.Render("Analysing...")
	case StateError:
		if st.Message == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + st.Message)
	case StateHelp:
		return b.styles.Normal.Render("Help")
	}

	switch {
	case st.Message != "":
		return b.styles.Success.Render(st.Message)
	case st.State == StateList && st.Count > 0:
		text := fmt.Sprintf("%d captures", st.Count)
		if st.Filter != "" {
			text += " · " + st.Filter
		}
		return b.styles.Normal.Render(text)
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) bindings() []key.Binding {
	//nolint:exhaustive // remaining states share the short hints
	switch b.status.State {
	case StateList:
		return b.keymap.ListHelp()
	case StateDetail:
		return b.keymap.DetailHelp()
	default:
		return b.keymap.ShortHelp()
	}
}

func (b *Bar) State() State    { return b.status.State }
func (b *Bar) Message() string { return b.status.Message }
func (b *Bar) Count() int      { return b.status.Count }
func (b *Bar) Filter() string  { return b.status.Filter }

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) { b.width = width }

// Width returns the bar width.
func (b *Bar) Width() int { return b.width }

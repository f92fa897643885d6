// Package analyse provides the text analysis view component for the TUI.
package analyse

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

// View accepts pasted screenshot text and analyses it.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	analysisService driving.AnalysisService

	text      *input.TextArea
	analysing bool
	err       error
	width     int
	height    int
}

// NewView creates a new analyse view.
func NewView(s *styles.Styles, km *keymap.KeyMap, analysisService driving.AnalysisService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:          s,
		keymap:          km,
		analysisService: analysisService,
		text:            input.NewTextArea(s),
	}
}

// Init focuses the text area.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.text.Focus(), v.text.Init())
}

// Reset clears the entered text and any error.
func (v *View) Reset() {
	v.text.Reset()
	v.analysing = false
	v.err = nil
}

// Update handles messages for the analyse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CaptureAnalysed:
		v.analysing = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.text.Reset()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.text, cmd = v.text.Update(msg)
	return v, cmd
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case v.analysing:
		return v, nil
	case keymap.Matches(k, v.keymap.Submit):
		return v, v.submit()
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewCaptures}
		}
	}

	v.err = nil
	var cmd tea.Cmd
	v.text, cmd = v.text.Update(msg)
	return v, cmd
}

// submit returns a command that analyses and stores the entered text.
func (v *View) submit() tea.Cmd {
	text := v.text.Value()
	if strings.TrimSpace(text) == "" {
		v.err = domain.ErrNoContent
		return nil
	}

	v.analysing = true
	v.err = nil
	return func() tea.Msg {
		if v.analysisService == nil {
			return messages.CaptureAnalysed{Err: fmt.Errorf("analysis service not available")}
		}
		c, err := v.analysisService.Analyse(context.Background(), domain.CaptureInput{Text: text})
		return messages.CaptureAnalysed{Capture: c, Err: err}
	}
}

// View renders the analyse view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Analyse text"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Paste the text recognised from a screenshot."))
	b.WriteString("\n\n")
	b.WriteString(v.text.View())
	b.WriteString("\n\n")

	switch {
	case v.analysing:
		b.WriteString(v.styles.Muted.Render("Analysing..."))
		b.WriteString("\n\n")
	case v.err != nil:
		msg := v.err.Error()
		if errors.Is(v.err, domain.ErrNoContent) {
			msg = "Nothing to analyse: enter some text first."
		}
		b.WriteString(v.styles.Error.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Help.Render("[ctrl+s] analyse and save  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	// Title, hint, border and help take eight lines.
	v.text.SetDimensions(width, height-8)
}

// Value returns the entered text.
func (v *View) Value() string {
	return v.text.Value()
}

// SetValue replaces the entered text.
func (v *View) SetValue(text string) {
	v.text.SetValue(text)
}

// Analysing returns whether an analysis is in flight.
func (v *View) Analysing() bool {
	return v.analysing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

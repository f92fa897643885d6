// Package detail provides the capture detail view component for the TUI.
package detail

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

const (
	timeLayout = "2006-01-02 15:04"

	// rawTextLines caps the raw text preview.
	rawTextLines = 6
)

// View is the capture detail view.
type View struct {
	styles        *styles.Styles
	keymap        *keymap.KeyMap
	actionService driving.ActionService

	capture  *domain.Capture
	actions  []domain.Action
	selected int
	message  string
	err      error
	width    int
	height   int
}

// NewView creates a new capture detail view.
func NewView(s *styles.Styles, km *keymap.KeyMap, actionService driving.ActionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:        s,
		keymap:        km,
		actionService: actionService,
		width:         80,
	}
}

// SetCapture sets the capture to display and resolves its block actions.
func (v *View) SetCapture(c *domain.Capture) {
	v.capture = c
	v.selected = 0
	v.message = ""
	v.err = nil
	v.actions = nil
	if c != nil && v.actionService != nil {
		v.actions = v.actionService.For(c)
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the capture detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ActionPerformed:
		if msg.Err != nil {
			v.err = msg.Err
			v.message = ""
			return v, nil
		}
		v.err = nil
		v.message = performedMessage(msg.Action)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < v.blockCount()-1 {
			v.selected++
		}
	case keymap.Matches(k, v.keymap.Select):
		if a, ok := v.SelectedAction(); ok {
			return v, v.perform(a)
		}
	case keymap.Matches(k, v.keymap.Copy):
		if b, ok := v.SelectedBlock(); ok {
			return v, v.perform(domain.Action{
				Kind:  domain.ActionCopy,
				Label: "Copy",
				Text:  b.Content,
			})
		}
	case keymap.Matches(k, v.keymap.Back), k == "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewCaptures}
		}
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	}

	return v, nil
}

// perform returns a command that performs an action.
func (v *View) perform(a domain.Action) tea.Cmd {
	return func() tea.Msg {
		if v.actionService == nil {
			return messages.ActionPerformed{Action: a, Err: fmt.Errorf("action service not available")}
		}
		err := v.actionService.Perform(context.Background(), a)
		return messages.ActionPerformed{Action: a, Err: err}
	}
}

func performedMessage(a domain.Action) string {
	if a.Opens() {
		return fmt.Sprintf("%s: %s", a.Label, a.Target)
	}
	return "Copied to clipboard"
}

// View renders the capture detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.capture == nil {
		b.WriteString(v.styles.Title.Render("Capture"))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("No capture selected."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	c := v.capture
	b.WriteString(v.styles.Category(c.Category).Render(strings.ToUpper(c.Category.String())))
	b.WriteString(" ")
	b.WriteString(v.styles.Title.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 10)))
	b.WriteString("\n")

	b.WriteString(v.formatField("ID", c.ID))
	if !c.CapturedAt.IsZero() {
		b.WriteString(v.formatField("Captured", c.CapturedAt.Local().Format(timeLayout)))
	}
	if c.EventTime != nil {
		b.WriteString(v.formatField("Event", c.EventTime.Local().Format(timeLayout)))
	}
	if c.ImagePath != "" {
		b.WriteString(v.formatField("Image", c.ImagePath))
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Subtitle.Render("Blocks"))
	b.WriteString("\n")
	for i, block := range c.Blocks {
		b.WriteString(v.renderBlock(i, block))
		b.WriteString("\n")
	}

	if raw := strings.TrimSpace(c.RawText); raw != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render("Raw text"))
		b.WriteString("\n")
		lines := strings.Split(raw, "\n")
		if len(lines) > rawTextLines {
			lines = append(lines[:rawTextLines], fmt.Sprintf("… %d more lines", len(lines)-rawTextLines))
		}
		for _, line := range lines {
			b.WriteString(v.styles.Muted.Render("  " + list.Truncate(line, max(v.width-4, 20))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	case v.message != "":
		b.WriteString(v.styles.Success.Render(v.message))
		b.WriteString("\n\n")
	}
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderBlock renders a block chip, its content and its action.
func (v *View) renderBlock(index int, block domain.TextBlock) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	chip := v.styles.Block(block.Kind).Render(block.Kind.Label())
	lines := strings.Split(block.Content, "\n")
	pad := strings.Repeat(" ", 4)

	var b strings.Builder
	b.WriteString(indicator)
	b.WriteString(chip)
	b.WriteString(" ")
	if index == v.selected {
		b.WriteString(v.styles.Selected.Render(lines[0]))
	} else {
		b.WriteString(v.styles.Normal.Render(lines[0]))
	}
	for _, line := range lines[1:] {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString(v.styles.Normal.Render(line))
	}
	if index < len(v.actions) {
		b.WriteString("\n")
		b.WriteString(pad)
		b.WriteString(v.styles.Muted.Render("→ " + v.actions[index].Label))
	}
	return b.String()
}

// formatField formats a field for display.
func (v *View) formatField(label, value string) string {
	return fmt.Sprintf("%-10s %s\n", label+":", value)
}

// renderHelp renders the help text.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] block  [enter] perform  [c] copy  [esc] back")
}

func (v *View) blockCount() int {
	if v.capture == nil {
		return 0
	}
	return len(v.capture.Blocks)
}

// SelectedBlock returns the selected block.
func (v *View) SelectedBlock() (domain.TextBlock, bool) {
	if v.selected < 0 || v.selected >= v.blockCount() {
		return domain.TextBlock{}, false
	}
	return v.capture.Blocks[v.selected], true
}

// SelectedAction returns the action of the selected block.
func (v *View) SelectedAction() (domain.Action, bool) {
	if v.selected < 0 || v.selected >= len(v.actions) {
		return domain.Action{}, false
	}
	return v.actions[v.selected], true
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Capture returns the displayed capture.
func (v *View) Capture() *domain.Capture {
	return v.capture
}

// Selected returns the selected block index.
func (v *View) Selected() int {
	return v.selected
}

// Message returns the result of the last action.
func (v *View) Message() string {
	return v.message
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

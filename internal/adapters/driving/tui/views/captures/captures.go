// Package captures provides the capture list view component for the TUI.
package captures

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

// reservedLines is the space taken by the title, query line and help.
const reservedLines = 6

// View is the capture list view.
type View struct {
	styles         *styles.Styles
	keymap         *keymap.KeyMap
	captureService driving.CaptureService

	list  *list.CaptureList
	query *input.QueryInput

	// filters cycles through "all" followed by each category.
	filters          []*domain.Category
	filterIndex      int
	includeSensitive bool

	searching     bool
	confirmDelete bool
	loading       bool
	message       string
	err           error
	width         int
	height        int
}

// NewView creates a new capture list view.
func NewView(s *styles.Styles, km *keymap.KeyMap, captureService driving.CaptureService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	filters := []*domain.Category{nil}
	for _, c := range domain.AllCategories() {
		filters = append(filters, &c)
	}

	query := input.NewQueryInput(s)

	return &View{
		styles:         s,
		keymap:         km,
		captureService: captureService,
		list:           list.NewCaptureList(s),
		query:          query,
		filters:        filters,
	}
}

// Init loads the captures.
func (v *View) Init() tea.Cmd {
	return v.Reload()
}

// Reload returns a command that lists captures with the current filter.
func (v *View) Reload() tea.Cmd {
	v.loading = true
	filter := v.Filter()
	return func() tea.Msg {
		if v.captureService == nil {
			return messages.CapturesLoaded{Err: fmt.Errorf("capture service not available")}
		}
		captures, err := v.captureService.List(context.Background(), filter)
		return messages.CapturesLoaded{Captures: captures, Err: err}
	}
}

// Filter returns the listing filter built from the view state.
func (v *View) Filter() domain.CaptureFilter {
	return domain.CaptureFilter{
		Category:         v.filters[v.filterIndex],
		Query:            v.query.Query(),
		IncludeSensitive: v.includeSensitive,
	}
}

// FilterLabel describes the active filter.
func (v *View) FilterLabel() string {
	parts := []string{"all"}
	if c := v.filters[v.filterIndex]; c != nil {
		parts[0] = c.String()
	}
	if v.includeSensitive {
		parts = append(parts, "+sensitive")
	}
	if q := v.query.Query(); q != "" {
		parts = append(parts, fmt.Sprintf("%q", q))
	}
	return strings.Join(parts, " ")
}

// Update handles messages for the capture list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.searching {
			return v.handleSearchKeyMsg(msg)
		}
		if v.confirmDelete {
			return v.handleConfirmKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.CapturesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.list.SetCaptures(msg.Captures)
		return v, nil

	case messages.CaptureDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.message = "Deleted " + shortID(msg.ID)
		return v, v.Reload()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	v.message = ""

	switch {
	case keymap.Matches(k, v.keymap.Up), keymap.Matches(k, v.keymap.Down),
		k == "g", k == "G", k == "home", k == "end":
		v.list, _ = v.list.Update(msg)
	case keymap.Matches(k, v.keymap.Select):
		if c := v.list.SelectedCapture(); c != nil {
			capture := *c
			return v, func() tea.Msg {
				return messages.CaptureSelected{Capture: capture}
			}
		}
	case keymap.Matches(k, v.keymap.New):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewAnalyse}
		}
	case keymap.Matches(k, v.keymap.Delete):
		if v.list.SelectedCapture() != nil {
			v.confirmDelete = true
		}
	case keymap.Matches(k, v.keymap.Reload):
		return v, v.Reload()
	case keymap.Matches(k, v.keymap.Filter):
		v.filterIndex = (v.filterIndex + 1) % len(v.filters)
		return v, v.Reload()
	case keymap.Matches(k, v.keymap.Sensitive):
		v.includeSensitive = !v.includeSensitive
		return v, v.Reload()
	case keymap.Matches(k, v.keymap.Search):
		v.searching = true
		return v, v.query.Focus()
	case keymap.Matches(k, v.keymap.Help):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewHelp}
		}
	case keymap.Matches(k, v.keymap.Quit):
		return v, func() tea.Msg {
			return messages.Quit{}
		}
	}

	return v, nil
}

// handleSearchKeyMsg edits the query; enter applies it and esc clears it.
func (v *View) handleSearchKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only enter and esc leave search mode
	switch msg.Type {
	case tea.KeyEnter:
		v.searching = false
		v.query.Commit()
		return v, v.Reload()
	case tea.KeyEsc:
		v.searching = false
		v.query.Clear()
		return v, v.Reload()
	}

	return v, v.query.Update(msg)
}

// handleConfirmKeyMsg deletes the selected capture on "y".
func (v *View) handleConfirmKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.confirmDelete = false
	c := v.list.SelectedCapture()
	if c == nil || (msg.String() != "y" && msg.String() != "Y") {
		return v, nil
	}

	id := c.ID
	return v, func() tea.Msg {
		if v.captureService == nil {
			return messages.CaptureDeleted{ID: id, Err: fmt.Errorf("capture service not available")}
		}
		err := v.captureService.Delete(context.Background(), id)
		return messages.CaptureDeleted{ID: id, Err: err}
	}
}

// View renders the capture list view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Captures (%d)", v.list.Count())))
	b.WriteString("  ")
	b.WriteString(v.styles.Muted.Render(v.FilterLabel()))
	b.WriteString("\n\n")

	if line := v.query.View(); line != "" {
		b.WriteString(line)
		b.WriteString("\n\n")
	}

	switch {
	case v.loading && v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("Loading captures..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	case v.list.IsEmpty():
		b.WriteString(v.styles.Muted.Render("No captures yet. Press n to analyse some text."))
	default:
		b.WriteString(v.list.View())
	}

	if v.confirmDelete {
		if c := v.list.SelectedCapture(); c != nil {
			b.WriteString("\n\n")
			b.WriteString(v.styles.Warning.Render(
				fmt.Sprintf("Delete %q? [y] yes  [any] cancel", list.Truncate(c.Title, 40))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help text.
func (v *View) renderHelp() string {
	if v.searching {
		return v.styles.Help.Render("[enter] apply  [esc] clear")
	}
	return v.styles.Help.Render(
		"[↑/↓] navigate  [enter] open  [n] analyse  [/] search  [f] filter  [s] sensitive  [d] delete  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, max(height-reservedLines, 2))
	v.query.SetWidth(width)
}

// Captures returns the listed captures.
func (v *View) Captures() []domain.Capture {
	return v.list.Captures()
}

// Selected returns the index of the selected capture.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Loading returns whether a listing is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Searching returns whether the query field has focus.
func (v *View) Searching() bool {
	return v.searching
}

// ConfirmingDelete returns whether a delete awaits confirmation.
func (v *View) ConfirmingDelete() bool {
	return v.confirmDelete
}

// Message returns the last informational message.
func (v *View) Message() string {
	return v.message
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/views/analyse"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/views/captures"
	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/views/detail"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// statusBar is rendered below every view.
	statusBar *status.Bar

	capturesView *captures.View
	detailView   *detail.View
	analyseView  *analyse.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where the help view returns to.
	previousView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		statusBar:    status.NewBar(s, km),
		capturesView: captures.NewView(s, km, ports.Capture),
		detailView:   detail.NewView(s, km, ports.Actions),
		analyseView:  analyse.NewView(s, km, ports.Analysis),
		currentView:  messages.ViewCaptures,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("shotbrain"),
		a.capturesView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewCaptures:
			a.capturesView, cmd = a.capturesView.Update(msg)
		case messages.ViewCaptureDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewAnalyse:
			a.analyseView, cmd = a.analyseView.Update(msg)
		case messages.ViewHelp:
			k := msg.String()
			if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) || k == "q" {
				a.currentView = a.previousView
			}
		}

	case messages.CapturesLoaded, messages.CaptureDeleted:
		a.capturesView, cmd = a.capturesView.Update(msg)

	case messages.CaptureSelected:
		c := msg.Capture
		a.detailView.SetCapture(&c)
		a.currentView = messages.ViewCaptureDetail

	case messages.CaptureAnalysed:
		a.analyseView, cmd = a.analyseView.Update(msg)
		if msg.Err == nil && msg.Capture != nil {
			a.detailView.SetCapture(msg.Capture)
			a.currentView = messages.ViewCaptureDetail
			cmd = tea.Batch(cmd, a.capturesView.Reload())
		}

	case messages.ActionPerformed:
		a.detailView, cmd = a.detailView.Update(msg)

	case messages.ViewChanged:
		cmd = a.changeView(msg.View)

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewCaptures:
			a.capturesView, cmd = a.capturesView.Update(msg)
		case messages.ViewCaptureDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewAnalyse:
			a.analyseView, cmd = a.analyseView.Update(msg)
		case messages.ViewHelp:
			// Help view doesn't handle error messages
		}

	case messages.Quit:
		return a, tea.Quit

	default:
		// Cursor blinks and other component messages
		if a.currentView == messages.ViewAnalyse {
			a.analyseView, cmd = a.analyseView.Update(msg)
		}
	}

	a.syncStatus()
	return a, cmd
}

// changeView switches the active view and runs its initialisation.
func (a *App) changeView(view messages.ViewType) tea.Cmd {
	if view == messages.ViewHelp && a.currentView != messages.ViewHelp {
		a.previousView = a.currentView
	}
	a.currentView = view

	switch view {
	case messages.ViewCaptures:
		return a.capturesView.Reload()
	case messages.ViewAnalyse:
		a.analyseView.Reset()
		return a.analyseView.Init()
	case messages.ViewCaptureDetail, messages.ViewHelp:
		// No initialisation needed
	}
	return nil
}

// syncStatus reflects the active view's state in the status bar.
func (a *App) syncStatus() {
	a.statusBar.Show(a.currentStatus())
}

func (a *App) currentStatus() status.Status {
	switch a.currentView {
	case messages.ViewCaptures:
		v := a.capturesView
		st := status.Status{State: status.StateList, Count: len(v.Captures()), Filter: v.FilterLabel()}
		switch {
		case v.Err() != nil:
			st.State, st.Message = status.StateError, v.Err().Error()
		case v.Loading():
			st.State = status.StateLoading
		default:
			st.Message = v.Message()
		}
		return st
	case messages.ViewCaptureDetail:
		if err := a.detailView.Err(); err != nil {
			return status.Status{State: status.StateError, Message: err.Error()}
		}
		return status.Status{State: status.StateDetail, Message: a.detailView.Message()}
	case messages.ViewAnalyse:
		v := a.analyseView
		switch {
		case v.Analysing():
			return status.Status{State: status.StateAnalysing}
		case v.Err() != nil:
			return status.Status{State: status.StateError, Message: v.Err().Error()}
		}
	case messages.ViewHelp:
		return status.Status{State: status.StateHelp}
	}
	return status.Status{State: status.StateReady}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewCaptureDetail:
		body = a.detailView.View()
	case messages.ViewAnalyse:
		body = a.analyseView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.capturesView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view from the keymap.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	// The status bar takes the last line.
	viewHeight := max(height-1, 1)
	a.statusBar.SetWidth(width)
	a.capturesView.SetDimensions(width, viewHeight)
	a.detailView.SetDimensions(width, viewHeight)
	a.analyseView.SetDimensions(width, viewHeight)
}

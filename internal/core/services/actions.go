package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
	"unicode"

	"github.com/atotto/clipboard"

	"github.com/custodia-labs/shotbrain/internal/core/domain"
	"github.com/custodia-labs/shotbrain/internal/core/ports/driving"
)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

const (
	mapsSearchURL    = "https://www.google.com/maps/search/?api=1&query="
	calendarURL      = "https://calendar.google.com/calendar/render?action=TEMPLATE"
	calendarTimeForm = "20060102T150405Z"
	eventDuration    = time.Hour
)

// Ensure ActionService implements the interface.
var _ driving.ActionService = (*ActionService)(nil)

// ActionService maps capture blocks to actions and performs them.
type ActionService struct {
	open func(target string) error
	copy func(text string) error
}

// NewActionService creates an action service using the OS opener and clipboard.
func NewActionService() *ActionService {
	return &ActionService{
		open: openURL,
		copy: clipboard.WriteAll,
	}
}

// For returns the actions of every block of a capture, in block order.
func (s *ActionService) For(capture *domain.Capture) []domain.Action {
	if capture == nil {
		return nil
	}
	actions := make([]domain.Action, 0, len(capture.Blocks))
	for _, b := range capture.Blocks {
		actions = append(actions, s.ForBlock(capture, b))
	}
	return actions
}

// ForBlock returns the action of a single block.
func (s *ActionService) ForBlock(capture *domain.Capture, block domain.TextBlock) domain.Action {
	content := strings.TrimSpace(block.Content)

	switch block.Kind {
	case domain.BlockURLLink:
		return domain.Action{Kind: domain.ActionOpen, Label: "Open link", Target: openableURL(content), Text: content}
	case domain.BlockPhoneNumber:
		return domain.Action{Kind: domain.ActionDial, Label: "Call", Target: "tel:" + digits(content), Text: content}
	case domain.BlockMapLocation:
		return domain.Action{Kind: domain.ActionNavigate, Label: "Directions", Target: mapsSearchURL + url.QueryEscape(content), Text: content}
	case domain.BlockText:
		if a, ok := eventAction(capture, content); ok {
			return a
		}
	}
	return domain.Action{Kind: domain.ActionCopy, Label: "Copy", Text: content}
}

// Perform opens the action's target or copies its text to the clipboard.
func (s *ActionService) Perform(_ context.Context, action domain.Action) error {
	switch {
	case action.Opens():
		if err := s.open(action.Target); err != nil {
			return fmt.Errorf("opening %s: %w", action.Target, err)
		}
		return nil
	case action.Kind == domain.ActionCopy && action.Text != "":
		if err := s.copy(action.Text); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%s action: %w", action.Kind, domain.ErrNoAction)
	}
}

// eventAction returns a calendar action for the block carrying an Event
// capture's extracted content.
func eventAction(capture *domain.Capture, content string) (domain.Action, bool) {
	if capture == nil || capture.Category != domain.CategoryEvent || capture.EventTime == nil {
		return domain.Action{}, false
	}
	if capture.ExtractedContent == "" || !strings.Contains(content, capture.ExtractedContent) {
		return domain.Action{}, false
	}

	start := *capture.EventTime
	end := start.Add(eventDuration)
	q := url.Values{}
	q.Set("text", capture.Title)
	q.Set("dates", start.UTC().Format(calendarTimeForm)+"/"+end.UTC().Format(calendarTimeForm))
	q.Set("details", capture.RawText)

	return domain.Action{
		Kind:   domain.ActionAddEvent,
		Label:  "Add to calendar",
		Target: calendarURL + "&" + q.Encode(),
		Text:   content,
		Start:  &start,
		End:    &end,
	}, true
}

// openableURL adds a scheme to bare links.
func openableURL(s string) string {
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return s
	}
	return "https://" + s
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// openURL opens a URL with the platform's default handler.
func openURL(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case osDarwin:
		cmd = exec.Command("open", target)
	case osLinux:
		cmd = exec.Command("xdg-open", target)
	case osWindows:
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

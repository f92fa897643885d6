package domain

import "time"

// ActionKind identifies what performing an action does.
type ActionKind string

// Available action kinds.
const (
	// ActionOpen opens a URL in the browser.
	ActionOpen ActionKind = "open"

	// ActionDial opens a tel: URI.
	ActionDial ActionKind = "dial"

	// ActionNavigate opens a maps search for an address.
	ActionNavigate ActionKind = "navigate"

	// ActionAddEvent opens a calendar template for an event.
	ActionAddEvent ActionKind = "add_event"

	// ActionCopy copies text to the clipboard.
	ActionCopy ActionKind = "copy"
)

// Action is the user-facing operation attached to a block.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`

	// Target is the URI to open. Empty for copy actions.
	Target string `json:"target,omitempty"`

	// Text is the clipboard content, or the block content for reference.
	Text string `json:"text"`

	// Start and End bound an event. Set only for add_event.
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Opens returns true if the action launches an external handler.
func (a Action) Opens() bool {
	return a.Kind != ActionCopy && a.Target != ""
}

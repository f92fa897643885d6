// Package keymap defines the TUI key bindings and their help groupings.
package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the views react to.
type KeyMap struct {
	Quit, Help, Back key.Binding

	// List navigation. Select opens a capture, or performs the selected
	// block's action in the detail view.
	Up, Down, Select key.Binding

	// Capture list.
	New, Delete, Reload, Search, Filter, Sensitive key.Binding

	// Copy copies the selected block; Submit analyses pasted text.
	Copy, Submit key.Binding
}

func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// DefaultKeyMap returns vim-style bindings with arrow key fallbacks.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: bind("q", "quit", "q", "ctrl+c"),
		Help: bind("?", "help", "?"),
		Back: bind("esc", "back", "esc"),

		Up:     bind("↑/k", "up", "up", "k"),
		Down:   bind("↓/j", "down", "down", "j"),
		Select: bind("enter", "open", "enter"),

		New:       bind("n", "analyse", "n"),
		Delete:    bind("d", "delete", "d"),
		Reload:    bind("r", "reload", "r"),
		Search:    bind("/", "search", "/"),
		Filter:    bind("f", "filter", "f", "tab"),
		Sensitive: bind("s", "sensitive", "s"),

		Copy:   bind("c", "copy", "c"),
		Submit: bind("ctrl+s", "analyse", "ctrl+s"),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// ListHelp returns keybindings for the capture list.
func (k *KeyMap) ListHelp() []key.Binding {
	return []key.Binding{k.Select, k.New, k.Filter, k.Delete}
}

// DetailHelp returns keybindings for the capture detail view.
func (k *KeyMap) DetailHelp() []key.Binding {
	return []key.Binding{k.Select, k.Copy, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.New, k.Submit, k.Copy},
		{k.Search, k.Filter, k.Sensitive, k.Reload, k.Delete},
		{k.Help, k.Quit},
	}
}

// Matches reports whether keyStr, as produced by tea.KeyMsg.String, is one
// of the binding's keys. Disabled bindings never match.
func Matches(keyStr string, binding key.Binding) bool {
	return binding.Enabled() && slices.Contains(binding.Keys(), keyStr)
}

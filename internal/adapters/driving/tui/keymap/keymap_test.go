package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Help", km.Help, []string{"?"}},
		{"Back", km.Back, []string{"esc"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"Select", km.Select, []string{"enter"}},
		{"New", km.New, []string{"n"}},
		{"Delete", km.Delete, []string{"d"}},
		{"Reload", km.Reload, []string{"r"}},
		{"Search", km.Search, []string{"/"}},
		{"Filter", km.Filter, []string{"f", "tab"}},
		{"Sensitive", km.Sensitive, []string{"s"}},
		{"Copy", km.Copy, []string{"c"}},
		{"Submit", km.Submit, []string{"ctrl+s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key, "binding should have help key")
			assert.NotEmpty(t, tt.binding.Help().Desc, "binding should have help text")
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestListHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ListHelp()

	require.Len(t, bindings, 4)
	assert.Equal(t, km.Select, bindings[0])
	assert.Equal(t, km.Delete, bindings[3])
}

func TestDetailHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.DetailHelp(), 3)
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 4)
	assert.Len(t, bindings[0], 4) // Up, Down, Select, Back
	assert.Len(t, bindings[3], 2) // Help, Quit
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("tab", km.Filter))
	assert.True(t, Matches("k", km.Up))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
	assert.False(t, Matches("enter", km.Submit))
}

func TestMatches_DisabledBinding(t *testing.T) {
	km := DefaultKeyMap()
	km.Delete.SetEnabled(false)

	assert.False(t, Matches("d", km.Delete))
}

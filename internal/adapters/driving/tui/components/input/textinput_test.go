package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shotbrain/internal/adapters/driving/tui/styles"
)

func typeRunes(q *QueryInput, text string) {
	for _, r := range text {
		q.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewQueryInput(t *testing.T) {
	q := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, q)
	assert.Equal(t, "", q.Value())
	assert.False(t, q.Focused())
	assert.Empty(t, q.View())
	assert.NotNil(t, NewQueryInput(nil).styles)
}

func TestQueryInput_IgnoresKeysWhenBlurred(t *testing.T) {
	q := NewQueryInput(nil)

	typeRunes(q, "abc")
	assert.Equal(t, "", q.Value())
}

func TestQueryInput_EditAndCommit(t *testing.T) {
	q := NewQueryInput(nil)

	assert.NotNil(t, q.Focus())
	assert.True(t, q.Focused())
	assert.Contains(t, q.View(), "Find")

	typeRunes(q, " phở ")
	q.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, " phở", q.Value())

	assert.Equal(t, "phở", q.Commit())
	assert.False(t, q.Focused())
	assert.Contains(t, q.View(), `"phở"`)
}

func TestQueryInput_RefocusKeepsQuery(t *testing.T) {
	q := NewQueryInput(nil)
	q.Focus()
	typeRunes(q, "vcb")
	q.Commit()

	q.Focus()
	typeRunes(q, "!")
	assert.Equal(t, "vcb!", q.Value())
}

func TestQueryInput_Clear(t *testing.T) {
	q := NewQueryInput(nil)
	q.Focus()
	typeRunes(q, "vietcombank")

	q.Clear()
	assert.False(t, q.Focused())
	assert.Equal(t, "", q.Query())
	assert.Empty(t, q.View())
}

func TestQueryInput_SetWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{100, 90},
		{40, 30},
		{10, minQueryWidth},
	}
	for _, tt := range tests {
		q := NewQueryInput(nil)
		q.SetWidth(tt.width)
		assert.Equal(t, tt.want, q.field.Width, "width %d", tt.width)
	}
}

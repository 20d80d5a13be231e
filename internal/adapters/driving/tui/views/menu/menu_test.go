package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewView(t *testing.T) {
	v := NewView(nil)

	require.NotNil(t, v.styles)
	assert.Len(t, v.items, 6)
	assert.Zero(t, v.Selected())
	assert.Nil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Movement(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		expected int
	}{
		{"down", []tea.KeyMsg{{Type: tea.KeyDown}, runes("j")}, 2},
		{"up stops at top", []tea.KeyMsg{{Type: tea.KeyUp}, runes("k")}, 0},
		{"down stops at bottom", []tea.KeyMsg{
			{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown},
			{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown},
		}, 5},
		{"end then up", []tea.KeyMsg{{Type: tea.KeyEnd}, runes("k")}, 4},
		{"bottom then top", []tea.KeyMsg{runes("G"), runes("g")}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(nil)
			for _, k := range tt.keys {
				_, cmd := v.Update(k)
				assert.Nil(t, cmd)
			}
			assert.Equal(t, tt.expected, v.Selected())
		})
	}
}

func TestView_Open(t *testing.T) {
	for i, want := range []messages.ViewType{
		messages.ViewSearch, messages.ViewChat, messages.ViewHistory,
		messages.ViewSettings, messages.ViewHelp,
	} {
		t.Run(want.String(), func(t *testing.T) {
			v := NewView(nil)
			v.cursor = i

			_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.Equal(t, messages.ViewChanged{View: want}, cmd())
		})
	}
}

func TestView_Quit(t *testing.T) {
	tests := []struct {
		name   string
		cursor int
		key    tea.KeyMsg
	}{
		{"q", 0, runes("q")},
		{"quit entry", 5, tea.KeyMsg{Type: tea.KeyEnter}},
		{"quit digit", 0, runes("6")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(nil)
			v.cursor = tt.cursor

			_, cmd := v.Update(tt.key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestView_Digits(t *testing.T) {
	v := NewView(nil)

	_, cmd := v.Update(runes("3"))
	assert.Equal(t, 2, v.Selected())
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHistory}, cmd())

	_, cmd = v.Update(runes("9"))
	assert.Nil(t, cmd, "no ninth entry")
	assert.Equal(t, 2, v.Selected())

	_, cmd = v.Update(runes("0"))
	assert.Nil(t, cmd)
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	require.True(t, v.ready)
	assert.Equal(t, 100, v.width)

	out := v.View()
	for _, want := range []string{
		"Mashruteh", "قانون اساسی مشروطه", "> ", "1. Search",
		"6. Quit", "Articles, documents, actions and analyses", "[1-6/enter]",
	} {
		assert.Contains(t, out, want)
	}

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, v.View(), "Questions answered from the constitution")
}

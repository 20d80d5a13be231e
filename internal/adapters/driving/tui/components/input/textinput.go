// Package input is the single line text field used by the search and chat
// views.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
)

const (
	charLimit  = 1024
	minWidth   = 20
	maxHistory = 50
)

// TextInput is a labelled, always focused text field with a recall list of
// earlier entries.
type TextInput struct {
	field  textinput.Model
	styles *styles.Styles
	label  string
	width  int

	history []string
	// recall indexes history while browsing; len(history) means the draft.
	recall int
	draft  string
}

// NewTextInput returns a focused field showing label before it.
func NewTextInput(s *styles.Styles, label, placeholder string) *TextInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	field := textinput.New()
	field.Placeholder = placeholder
	field.CharLimit = charLimit
	field.Focus()

	t := &TextInput{field: field, styles: s, label: label}
	t.SetWidth(60)
	return t
}

// NewSearchInput returns the live search field.
func NewSearchInput(s *styles.Styles) *TextInput {
	return NewTextInput(s, "Search: ", "جستجو در قانون اساسی و اسناد...")
}

// NewChatInput returns the assistant message field.
func NewChatInput(s *styles.Styles) *TextInput {
	return NewTextInput(s, "You: ", "پرسش خود را بنویسید...")
}

// Init starts the cursor blinking.
func (t *TextInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards msg to the field.
func (t *TextInput) Update(msg tea.Msg) (*TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.field, cmd = t.field.Update(msg)
	return t, cmd
}

// View renders the label and the bordered field on one line.
func (t *TextInput) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		t.styles.Title.Render(t.label),
		t.styles.InputField.Render(t.field.View()),
	)
}

func (t *TextInput) Value() string { return t.field.Value() }

// SetValue replaces the text and moves the cursor to its end.
func (t *TextInput) SetValue(value string) {
	t.field.SetValue(value)
	t.field.CursorEnd()
}

// Reset clears the text and leaves history browsing.
func (t *TextInput) Reset() {
	t.field.Reset()
	t.recall = len(t.history)
	t.draft = ""
}

func (t *TextInput) Focus() tea.Cmd { return t.field.Focus() }
func (t *TextInput) Focused() bool  { return t.field.Focused() }

// SetWidth fits the field, label and border into width columns.
func (t *TextInput) SetWidth(width int) {
	t.width = width
	t.field.Width = max(width-lipgloss.Width(t.label)-6, minWidth)
}

func (t *TextInput) Width() int { return t.width }

// Remember appends an entry to the recall list, skipping an immediate
// repeat, and leaves history browsing.
func (t *TextInput) Remember(entry string) {
	if entry == "" {
		return
	}
	if n := len(t.history); n == 0 || t.history[n-1] != entry {
		t.history = append(t.history, entry)
		if len(t.history) > maxHistory {
			t.history = t.history[len(t.history)-maxHistory:]
		}
	}
	t.recall = len(t.history)
	t.draft = ""
}

// Recall steps through remembered entries: -1 is older, +1 is newer.
// Stepping past the newest entry restores the text typed before browsing.
func (t *TextInput) Recall(step int) {
	if len(t.history) == 0 {
		return
	}
	if t.recall == len(t.history) {
		t.draft = t.field.Value()
	}

	next := min(max(t.recall+step, 0), len(t.history))
	if next == t.recall {
		return
	}
	t.recall = next
	if next == len(t.history) {
		t.SetValue(t.draft)
		return
	}
	t.SetValue(t.history[next])
}

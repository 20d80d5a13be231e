// Package menu is the start screen.
package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. An item with Quit set ends the program.
type Item struct {
	Label string
	Hint  string
	View  messages.ViewType
	Quit  bool
}

var entries = []Item{
	{Label: "Search", Hint: "Articles, documents, actions and analyses", View: messages.ViewSearch},
	{Label: "Ask the assistant", Hint: "Questions answered from the constitution", View: messages.ViewChat},
	{Label: "Saved chats", Hint: "Continue or delete earlier conversations", View: messages.ViewHistory},
	{Label: "Settings", Hint: "Theme, narration voice and AI provider", View: messages.ViewSettings},
	{Label: "Help", Hint: "Keyboard shortcuts", View: messages.ViewHelp},
	{Label: "Quit", Quit: true},
}

var keys = struct {
	up, down, top, bottom, open, quit key.Binding
}{
	up:     key.NewBinding(key.WithKeys("up", "k")),
	down:   key.NewBinding(key.WithKeys("down", "j")),
	top:    key.NewBinding(key.WithKeys("home", "g")),
	bottom: key.NewBinding(key.WithKeys("end", "G")),
	open:   key.NewBinding(key.WithKeys("enter")),
	quit:   key.NewBinding(key.WithKeys("q")),
}

// View lists the entries with a cursor. Digits open an entry directly.
type View struct {
	styles *styles.Styles
	items  []Item
	cursor int
	width  int
	height int
	ready  bool
}

// NewView returns the menu with the cursor on the first entry.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, items: entries, width: 80, height: 24}
}

// Init implements tea.Model.
func (v *View) Init() tea.Cmd { return nil }

// Update moves the cursor or opens an entry.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) tea.Cmd {
	last := len(v.items) - 1

	switch {
	case key.Matches(msg, keys.up):
		v.cursor = max(v.cursor-1, 0)
	case key.Matches(msg, keys.down):
		v.cursor = min(v.cursor+1, last)
	case key.Matches(msg, keys.top):
		v.cursor = 0
	case key.Matches(msg, keys.bottom):
		v.cursor = last
	case key.Matches(msg, keys.open):
		return v.open(v.cursor)
	case key.Matches(msg, keys.quit):
		return tea.Quit
	default:
		if n, ok := digit(msg); ok && n <= len(v.items) {
			v.cursor = n - 1
			return v.open(v.cursor)
		}
	}
	return nil
}

// digit reads a single 1-9 key press.
func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

func (v *View) open(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg { return messages.ViewChanged{View: item.View} }
}

// View renders the title, the entries and the hint for the cursor.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := []string{
		v.styles.Title.Render("Mashruteh"),
		v.styles.Subtitle.Render("قانون اساسی مشروطه | The 1906 Persian Constitution"),
		"",
	}
	for i, item := range v.items {
		label := fmt.Sprintf("%d. %s", i+1, item.Label)
		if i == v.cursor {
			lines = append(lines, "> "+v.styles.Selected.Render(label))
			continue
		}
		lines = append(lines, "  "+v.styles.Normal.Render(label))
	}
	if hint := v.items[v.cursor].Hint; hint != "" {
		lines = append(lines, "", v.styles.Muted.Render(hint))
	}
	lines = append(lines, "", v.styles.Help.Render(
		fmt.Sprintf("[j/k] move  [1-%d/enter] open  [q] quit", len(v.items))))

	return strings.Join(lines, "\n")
}

// SetDimensions records the terminal size and marks the view ready.
func (v *View) SetDimensions(width, height int) {
	v.width, v.height = width, height
	v.ready = true
}

// Selected returns the cursor position.
func (v *View) Selected() int { return v.cursor }

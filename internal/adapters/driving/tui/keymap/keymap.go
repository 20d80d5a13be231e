// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings shared by views that take text input.
// Letter keys are left to the input there, so navigation uses arrows
// and control keys only.
type KeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Send     key.Binding
	NewChat  key.Binding
	Suggest  key.Binding
	Analyze  key.Binding
	Delete   key.Binding
	Filter   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "older")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "newer")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		NewChat:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new chat")),
		Suggest: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "ask suggestion"),
		),
		Analyze: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analyse")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Filter:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "collection")),
	}
}

// ShortHelp is shown when a view has nothing more specific to offer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ResultsHelp is shown while search results are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Filter, k.Back}
}

// ChatHelp is shown in the chat view.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Send, k.Suggest, k.NewChat, k.Back}
}

// HistoryHelp is shown in the saved chats view.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Select, k.Delete, k.Back}
}

// FullHelp groups every binding by the view that uses it.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ResultsHelp(),
		{k.Analyze, k.PageUp, k.PageDown},
		k.ChatHelp(),
		k.HistoryHelp(),
		{k.Help, k.Quit},
	}
}

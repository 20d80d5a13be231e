// Package history provides the saved chats view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// ErrNoChatService indicates that no chat service was provided.
var ErrNoChatService = errors.New("chat service is required")

// View lists saved chats, newest first.
type View struct {
	styles      *styles.Styles
	chatService driving.ChatService

	chats    []domain.SavedChat
	selected int
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new history view.
func NewView(s *styles.Styles, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:      s,
		chatService: chatService,
		width:       80,
		height:      24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Refresh returns a command that reloads the saved chats.
func (v *View) Refresh() tea.Cmd {
	chat := v.chatService
	return func() tea.Msg {
		if chat == nil {
			return messages.ErrorOccurred{Err: ErrNoChatService}
		}
		return messages.HistoryLoaded{Chats: chat.History(context.Background())}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.HistoryLoaded:
		v.chats = msg.Chats
		v.err = nil
		if v.selected >= len(v.chats) {
			v.selected = max(len(v.chats)-1, 0)
		}
		return v, nil

	case messages.ChatDeleted:
		return v, v.Refresh()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.chats)-1 {
			v.selected++
		}
	case "enter":
		return v, v.open()
	case "d":
		return v, v.deleteSelected()
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}
	return v, nil
}

// open returns a command that makes the selected chat the active session.
func (v *View) open() tea.Cmd {
	chat := v.SelectedChat()
	if chat == nil || v.chatService == nil {
		return nil
	}
	id := chat.ID
	svc := v.chatService
	return func() tea.Msg {
		return messages.ChatOpened{ID: id, Err: svc.Load(context.Background(), id)}
	}
}

// deleteSelected returns a command that removes the selected chat.
func (v *View) deleteSelected() tea.Cmd {
	chat := v.SelectedChat()
	if chat == nil || v.chatService == nil {
		return nil
	}
	id := chat.ID
	svc := v.chatService
	return func() tea.Msg {
		svc.Delete(context.Background(), id)
		return messages.ChatDeleted{ID: id}
	}
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Saved chats"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if len(v.chats) == 0 {
		b.WriteString(v.styles.Muted.Render("No saved chats yet."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Keep the selection in the window
	visible := max(v.height-6, 1)
	start := 0
	if v.selected >= visible {
		start = v.selected - visible + 1
	}
	end := min(start+visible, len(v.chats))

	titleWidth := max(v.width-30, 10)
	for i := start; i < end; i++ {
		c := v.chats[i]
		line := fmt.Sprintf("%s  %s  (%d messages)",
			list.Truncate(c.Title, titleWidth), c.Date, len(c.Messages))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] navigate  [enter] open  [d] delete  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Chats returns the listed chats.
func (v *View) Chats() []domain.SavedChat {
	return v.chats
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// SelectedChat returns the selected chat, or nil when the list is empty.
func (v *View) SelectedChat() *domain.SavedChat {
	if v.selected < 0 || v.selected >= len(v.chats) {
		return nil
	}
	return &v.chats[v.selected]
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

package history

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	chats   []domain.SavedChat
	loadErr error
	loaded  []string
	deleted []string
}

func (m *MockChatService) NewSession() string { return "1" }
func (m *MockChatService) Send(context.Context, string) (domain.ChatMessage, error) {
	return domain.ChatMessage{}, nil
}
func (m *MockChatService) Transcript() []domain.ChatMessage { return nil }
func (m *MockChatService) SessionID() string                { return "1" }
func (m *MockChatService) Busy() bool                       { return false }
func (m *MockChatService) Snapshot() (string, string)       { return "", "" }

func (m *MockChatService) History(context.Context) []domain.SavedChat {
	return m.chats
}

func (m *MockChatService) Load(_ context.Context, id string) error {
	m.loaded = append(m.loaded, id)
	return m.loadErr
}

func (m *MockChatService) Delete(_ context.Context, id string) {
	m.deleted = append(m.deleted, id)
	kept := make([]domain.SavedChat, 0, len(m.chats))
	for _, c := range m.chats {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	m.chats = kept
}

func testChats() []domain.SavedChat {
	return []domain.SavedChat{
		{
			ID:    "1700000002000",
			Title: "اصل دوم چیست؟",
			Date:  "2026-10-16",
			Messages: []domain.ChatMessage{
				{Role: domain.RoleUser, Text: "اصل دوم چیست؟"},
				{Role: domain.RoleModel, Text: "پاسخ"},
			},
		},
		{
			ID:    "1700000001000",
			Title: "مجلس",
			Date:  "2026-10-15",
		},
	}
}

func loadedView(t *testing.T, svc *MockChatService) *View {
	t.Helper()
	view := NewView(nil, svc)
	view.SetDimensions(100, 30)
	msg, ok := view.Refresh()().(messages.HistoryLoaded)
	require.True(t, ok)
	view, _ = view.Update(msg)
	return view
}

func TestNewView(t *testing.T) {
	view := NewView(nil, &MockChatService{})

	require.NotNil(t, view)
	assert.Empty(t, view.Chats())
	assert.Nil(t, view.SelectedChat())
	assert.Nil(t, view.Init())
}

func TestView_Refresh(t *testing.T) {
	view := loadedView(t, &MockChatService{chats: testChats()})

	require.Len(t, view.Chats(), 2)
	out := view.View()
	assert.Contains(t, out, "Saved chats")
	assert.Contains(t, out, "اصل دوم چیست؟")
	assert.Contains(t, out, "2026-10-16")
	assert.Contains(t, out, "(2 messages)")
}

func TestView_Refresh_NoChatService(t *testing.T) {
	view := NewView(nil, nil)

	msg, ok := view.Refresh()().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, ErrNoChatService)

	view, _ = view.Update(msg)
	assert.Contains(t, view.View(), "chat service is required")
}

func TestView_Empty(t *testing.T) {
	view := loadedView(t, &MockChatService{})

	assert.Contains(t, view.View(), "No saved chats yet.")

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	_, cmd = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.Nil(t, cmd)
}

func TestView_Navigation(t *testing.T) {
	view := loadedView(t, &MockChatService{chats: testChats()})

	tests := []struct {
		key  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, 0},
		{tea.KeyMsg{Type: tea.KeyUp}, 0},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, 1},
	}
	for _, tt := range tests {
		view, _ = view.Update(tt.key)
		assert.Equal(t, tt.want, view.Selected())
	}
}

func TestView_EnterOpensChat(t *testing.T) {
	svc := &MockChatService{chats: testChats()}
	view := loadedView(t, svc)
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ChatOpened)
	require.True(t, ok)
	assert.Equal(t, "1700000001000", msg.ID)
	assert.NoError(t, msg.Err)
	assert.Equal(t, []string{"1700000001000"}, svc.loaded)
}

func TestView_EnterOpenError(t *testing.T) {
	svc := &MockChatService{chats: testChats(), loadErr: domain.ErrNotFound}
	view := loadedView(t, svc)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(messages.ChatOpened)
	require.True(t, ok)
	assert.ErrorIs(t, msg.Err, domain.ErrNotFound)
}

func TestView_DeleteRefreshes(t *testing.T) {
	svc := &MockChatService{chats: testChats()}
	view := loadedView(t, svc)
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)

	deleted, ok := cmd().(messages.ChatDeleted)
	require.True(t, ok)
	assert.Equal(t, "1700000001000", deleted.ID)

	view, cmd = view.Update(deleted)
	require.NotNil(t, cmd)
	view, _ = view.Update(cmd())

	require.Len(t, view.Chats(), 1)
	assert.Equal(t, 0, view.Selected())
	assert.Equal(t, "1700000002000", view.SelectedChat().ID)
}

func TestView_Esc_ReturnsToMenu(t *testing.T) {
	view := NewView(nil, &MockChatService{})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(nil, nil)

	view, _ = view.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.True(t, view.ready)
	assert.Equal(t, 120, view.width)
}

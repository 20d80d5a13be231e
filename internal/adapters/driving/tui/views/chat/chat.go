// Package chat provides the assistant chat view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
)

// ErrNoChatService indicates that no chat service was provided.
var ErrNoChatService = errors.New("chat service is required")

// View is the assistant conversation: the transcript above a message input.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.TextInput
	statusbar *status.Bar

	chatService driving.ChatService

	// pending is the user text of the turn in flight.
	pending string
	// scroll counts lines hidden below the bottom of the transcript.
	scroll int

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetHints(km.ChatHelp())

	return &View{
		styles:      s,
		keymap:      km,
		input:       input.NewChatInput(s),
		statusbar:   bar,
		chatService: chatService,
		width:       80,
		height:      24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ChatReplied:
		v.pending = ""
		v.scroll = 0
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.statusbar.Clear()
		return v, nil

	case messages.ChatOpened:
		v.pending = ""
		v.scroll = 0
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.err = nil
		v.statusbar.Clear()
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case key.Matches(msg, v.keymap.NewChat):
		v.NewSession()
		return v, nil

	case key.Matches(msg, v.keymap.PageUp):
		v.scroll = min(v.scroll+v.transcriptHeight(), v.maxScroll())
		return v, nil

	case key.Matches(msg, v.keymap.PageDown):
		v.scroll = max(v.scroll-v.transcriptHeight(), 0)
		return v, nil

	case key.Matches(msg, v.keymap.Send):
		text := strings.TrimSpace(v.input.Value())
		if text == "" {
			return v, nil
		}
		cmd := v.send(text)
		if cmd != nil {
			v.input.Remember(text)
			v.input.Reset()
		}
		return v, cmd

	case key.Matches(msg, v.keymap.Up):
		v.input.Recall(-1)
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.input.Recall(1)
		return v, nil

	case key.Matches(msg, v.keymap.Suggest) && v.input.Value() == "":
		// With an empty input, a digit picks a suggested follow-up question.
		if suggestion, ok := v.suggestion(int(msg.Runes[0] - '1')); ok {
			return v, v.send(suggestion)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// send starts a turn. It returns nil when a turn is already in flight.
func (v *View) send(text string) tea.Cmd {
	if v.chatService == nil {
		v.setError(ErrNoChatService)
		return nil
	}
	if v.pending != "" || v.chatService.Busy() {
		v.setError(domain.ErrTurnInProgress)
		return nil
	}

	v.pending = text
	v.scroll = 0
	v.err = nil
	v.statusbar.ShowBusy("Waiting for the assistant")

	chat := v.chatService
	return func() tea.Msg {
		reply, err := chat.Send(context.Background(), text)
		return messages.ChatReplied{Message: reply, Err: err}
	}
}

// suggestion returns the i-th follow-up question of the last model reply.
func (v *View) suggestion(i int) (string, bool) {
	if v.chatService == nil {
		return "", false
	}
	transcript := v.chatService.Transcript()
	for j := len(transcript) - 1; j >= 0; j-- {
		if transcript[j].Role != domain.RoleModel {
			continue
		}
		if i < len(transcript[j].Suggestions) {
			return transcript[j].Suggestions[i], true
		}
		return "", false
	}
	return "", false
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.ShowError(err)
}

// NewSession starts a fresh conversation.
func (v *View) NewSession() {
	if v.chatService != nil {
		v.chatService.NewSession()
	}
	v.pending = ""
	v.scroll = 0
	v.err = nil
	v.input.Reset()
	v.statusbar.Clear()
}

// transcriptLines renders the conversation as wrapped lines.
func (v *View) transcriptLines() []string {
	if v.chatService == nil {
		return nil
	}

	transcript := v.chatService.Transcript()
	width := max(v.width-4, 20)
	lines := make([]string, 0, len(transcript)*3)

	for i, m := range transcript {
		if m.Role == domain.RoleUser {
			lines = append(lines, wrap(v.styles.User, "You: "+m.Text, width)...)
		} else {
			lines = append(lines, wrap(v.styles.Model, "AI: "+m.Text, width)...)
			// Only the latest reply offers selectable follow-ups.
			if isLastModel(transcript, i) {
				for n, s := range m.Suggestions {
					lines = append(lines, wrap(v.styles.Muted, fmt.Sprintf("  [%d] %s", n+1, s), width)...)
				}
			}
		}
		lines = append(lines, "")
	}

	// The user's message is already in the transcript once Send has begun.
	if v.pending != "" && !endsWithUser(transcript, v.pending) {
		lines = append(lines, wrap(v.styles.User, "You: "+v.pending, width)...)
		lines = append(lines, "")
	}
	if v.pending != "" {
		lines = append(lines, v.styles.Warning.Render("..."))
	}
	return lines
}

func isLastModel(transcript []domain.ChatMessage, i int) bool {
	for j := i + 1; j < len(transcript); j++ {
		if transcript[j].Role == domain.RoleModel {
			return false
		}
	}
	return true
}

func endsWithUser(transcript []domain.ChatMessage, text string) bool {
	n := len(transcript)
	return n > 0 && transcript[n-1].Role == domain.RoleUser && transcript[n-1].Text == text
}

// wrap splits text into styled lines of at most width runes.
func wrap(style lipgloss.Style, text string, width int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > width {
			out = append(out, style.Render(string(runes[:width])))
			runes = runes[width:]
		}
		out = append(out, style.Render(string(runes)))
	}
	return out
}

// transcriptHeight is the number of transcript lines that fit.
func (v *View) transcriptHeight() int {
	// Reserve lines for the header, input and status bar
	return max(v.height-8, 1)
}

func (v *View) maxScroll() int {
	return max(len(v.transcriptLines())-v.transcriptHeight(), 0)
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Ask the assistant")
	if v.chatService != nil {
		header += v.styles.Muted.Render("  #" + v.chatService.SessionID())
	}
	sections = append(sections, header, "")

	lines := v.transcriptLines()
	height := v.transcriptHeight()
	end := len(lines) - v.scroll
	start := max(end-height, 0)
	if end > start {
		sections = append(sections, strings.Join(lines[start:end], "\n"))
	} else {
		sections = append(sections, v.styles.Muted.Render("Ask anything about the constitution."))
	}

	sections = append(sections, "", v.input.View(), v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Pending returns the text of the turn in flight, if any.
func (v *View) Pending() string {
	return v.pending
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput sets the input text.
func (v *View) SetInput(text string) {
	v.input.SetValue(text)
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

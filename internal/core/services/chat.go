package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// untitledChat is the snapshot title of a session without user messages.
const untitledChat = "گفتگوی جدید"

// ChatConfig is the slice of settings the session manager reads.
type ChatConfig struct {
	// HistoryWindow is how many prior messages accompany each question.
	HistoryWindow int

	// Greeting seeds every new session.
	Greeting string

	// DateLayout formats SavedChat.Date.
	DateLayout string

	// Narrate synthesises audio for every answer.
	Narrate bool

	// Audio configures narration.
	Audio domain.AudioSettings
}

// ChatConfigFrom extracts the chat configuration from application settings.
func ChatConfigFrom(s domain.AppSettings) ChatConfig {
	return ChatConfig{
		HistoryWindow: s.Chat.HistoryWindow,
		Greeting:      s.Chat.Greeting,
		DateLayout:    s.Chat.DateLayout,
		Narrate:       s.Speech.Narrate,
		Audio:         s.Audio,
	}
}

func (c ChatConfig) withDefaults() ChatConfig {
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = domain.DefaultHistoryWindow
	}
	if c.Greeting == "" {
		c.Greeting = domain.DefaultGreeting
	}
	if c.DateLayout == "" {
		c.DateLayout = "2006-01-02"
	}
	return c
}

// ChatService owns the active chat session.
//
// A session starts with a single greeting from the model. Each Send appends
// the user message, asks the assistant with a bounded window of prior
// messages, appends exactly one model message and saves the whole
// transcript. At most one turn per session is in flight; sends arriving
// meanwhile are rejected rather than queued. The assistant is called without
// holding the lock so readers are never blocked by a slow reply.
type ChatService struct {
	assistant Assistant
	history   driven.ChatHistoryStore
	speech    driven.SpeechSynthesizer
	now       func() time.Time

	mu        sync.Mutex
	cfg       ChatConfig
	sessionID string
	lastID    int64
	messages  []domain.ChatMessage
	inflight  map[string]bool
	deleted   map[string]bool
}

// NewChatService creates a session manager and seeds its first session.
// assistant may be nil; turns then settle with the missing-key message.
func NewChatService(assistant Assistant, history driven.ChatHistoryStore, cfg ChatConfig) *ChatService {
	s := &ChatService{
		assistant: assistant,
		history:   history,
		now:       time.Now,
		cfg:       cfg.withDefaults(),
		inflight:  make(map[string]bool),
		deleted:   make(map[string]bool),
	}
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return s
}

// SetSpeech sets the synthesiser used when narration is enabled.
func (s *ChatService) SetSpeech(speech driven.SpeechSynthesizer) {
	s.speech = speech
}

// SetConfig replaces the chat configuration. It applies from the next turn.
func (s *ChatService) SetConfig(cfg ChatConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg.withDefaults()
}

// NewSession discards the active transcript and seeds a fresh session.
func (s *ChatService) NewSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return s.sessionID
}

// resetLocked installs the greeting and mints a session id from the clock.
// Ids are unix milliseconds, bumped when needed so they strictly increase.
func (s *ChatService) resetLocked() {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	s.sessionID = strconv.FormatInt(id, 10)
	s.messages = []domain.ChatMessage{{
		ID:   newMessageID(),
		Role: domain.RoleModel,
		Text: s.cfg.Greeting,
	}}
	logger.Debug("chat: new session %s", s.sessionID)
}

// Send runs one turn and returns the model message that settled it.
func (s *ChatService) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ChatMessage{}, fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	sessionID := s.sessionID
	if s.inflight[sessionID] {
		s.mu.Unlock()
		return domain.ChatMessage{}, domain.ErrTurnInProgress
	}
	s.inflight[sessionID] = true
	cfg := s.cfg
	window := lastMessages(s.messages, cfg.HistoryWindow)
	userMsg := domain.ChatMessage{ID: newMessageID(), Role: domain.RoleUser, Text: text}
	s.messages = append(s.messages, userMsg)
	turn := cloneMessages(s.messages)
	s.mu.Unlock()

	logger.Section("Chat Turn")
	logger.Debug("session %s, %d messages in window", sessionID, len(window))

	modelMsg := s.answer(ctx, window, text, cfg)
	final := append(turn, modelMsg)

	s.mu.Lock()
	delete(s.inflight, sessionID)
	if s.sessionID == sessionID {
		s.messages = cloneMessages(final)
	}
	skip := s.deleted[sessionID]
	delete(s.deleted, sessionID)
	s.mu.Unlock()

	if skip {
		logger.Debug("chat: session %s deleted mid-turn, not saving", sessionID)
		return modelMsg, nil
	}

	s.history.Save(ctx, domain.SavedChat{
		ID:       sessionID,
		Title:    domain.ChatTitle(final),
		Date:     s.now().Format(cfg.DateLayout),
		Messages: final,
	})

	return modelMsg, nil
}

// answer asks the assistant and builds the settling model message.
// Failures become the apology text; they never escape the turn.
func (s *ChatService) answer(
	ctx context.Context, window []domain.ChatMessage, text string, cfg ChatConfig,
) domain.ChatMessage {
	msg := domain.ChatMessage{ID: newMessageID(), Role: domain.RoleModel}

	if s.assistant == nil {
		msg.Text = domain.MissingKeyText
		return msg
	}

	raw, err := s.assistant.Ask(ctx, window, text)
	if err != nil {
		logger.Warn("chat: assistant failed: %v", err)
		if errors.Is(err, domain.ErrLLMUnavailable) {
			msg.Text = domain.MissingKeyText
		} else {
			msg.Text = domain.ApologyText
		}
		return msg
	}

	reply := CoerceReply(raw)
	msg.Text = reply.Text
	msg.Suggestions = reply.Suggestions

	if cfg.Narrate && s.speech != nil {
		if audio, ok := s.speech.Synthesize(ctx, reply.Text, cfg.Audio); ok {
			msg.Audio = audio
		}
	}
	return msg
}

// Transcript returns a copy of the active transcript.
func (s *ChatService) Transcript() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMessages(s.messages)
}

// SessionID returns the active session id.
func (s *ChatService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Busy reports whether the active session has a turn in flight.
func (s *ChatService) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[s.sessionID]
}

// History lists saved chats, newest first.
func (s *ChatService) History(ctx context.Context) []domain.SavedChat {
	return s.history.ListAll(ctx)
}

// Load makes a saved chat the active session.
func (s *ChatService) Load(ctx context.Context, id string) error {
	for _, chat := range s.history.ListAll(ctx) {
		if chat.ID != id {
			continue
		}
		s.mu.Lock()
		s.sessionID = chat.ID
		s.messages = cloneMessages(chat.Messages)
		delete(s.deleted, chat.ID)
		s.mu.Unlock()
		logger.Debug("chat: loaded session %s (%d messages)", id, len(chat.Messages))
		return nil
	}
	return fmt.Errorf("load chat %s: %w", id, domain.ErrNotFound)
}

// Delete removes a saved chat. Deleting the active session starts a new one.
func (s *ChatService) Delete(ctx context.Context, id string) {
	s.history.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		s.deleted[id] = true
	}
	if id == s.sessionID {
		s.resetLocked()
	}
}

// Snapshot renders the active session for export.
func (s *ChatService) Snapshot() (title, text string) {
	s.mu.Lock()
	messages := cloneMessages(s.messages)
	s.mu.Unlock()

	title = domain.ChatTitle(messages)
	if title == "" {
		title = untitledChat
	}
	return title, domain.RenderTranscript(title, messages)
}

// lastMessages returns a copy of at most n trailing messages.
func lastMessages(messages []domain.ChatMessage, n int) []domain.ChatMessage {
	if n > 0 && len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	return cloneMessages(messages)
}

func cloneMessages(messages []domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(messages))
	copy(out, messages)
	return out
}

// newMessageID returns a time-ordered UUIDv7.
func newMessageID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM records prompts and answers with canned responses.
type mockLLM struct {
	mu sync.Mutex

	generate func(prompt string, opts driven.GenerateOptions) (string, error)
	chat     func(messages []driven.ChatMessage) (string, error)

	generatePrompts []string
	generateOpts    []driven.GenerateOptions
	chatCalls       [][]driven.ChatMessage
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.generatePrompts = append(m.generatePrompts, prompt)
	m.generateOpts = append(m.generateOpts, opts)
	m.mu.Unlock()
	if m.generate == nil {
		return "", errors.New("generate not configured")
	}
	return m.generate(prompt, opts)
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, messages)
	m.mu.Unlock()
	if m.chat == nil {
		return "", errors.New("chat not configured")
	}
	return m.chat(messages)
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) generateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.generatePrompts)
}

// mockPromptStore serves fixed templates.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("prompt not found")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockSynth returns a fixed base64 payload.
type mockSynth struct {
	mu     sync.Mutex
	audio  string
	ok     bool
	calls  []string
	voices []domain.AudioSettings
}

func (m *mockSynth) Synthesize(_ context.Context, text string, settings domain.AudioSettings) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	m.voices = append(m.voices, settings)
	return m.audio, m.ok
}

// mockAssistant answers with a canned reply, optionally blocking until released.
type mockAssistant struct {
	mu        sync.Mutex
	reply     domain.RawReply
	err       error
	block     chan struct{}
	histories [][]domain.ChatMessage
	questions []string
}

func (m *mockAssistant) Ask(
	ctx context.Context, history []domain.ChatMessage, question string,
) (domain.RawReply, error) {
	m.mu.Lock()
	m.histories = append(m.histories, history)
	m.questions = append(m.questions, question)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return domain.RawReply{}, ctx.Err()
		}
	}
	return m.reply, m.err
}

func (m *mockAssistant) lastHistory() []domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.histories) == 0 {
		return nil
	}
	return m.histories[len(m.histories)-1]
}

// mockProber returns a fixed error and records the settings it saw.
type mockProber struct {
	err error
	got *domain.LLMSettings
}

func (m *mockProber) Probe(_ context.Context, llm domain.LLMSettings) error {
	m.got = &llm
	return m.err
}

package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Assistant answers a chat question. Its reply is unvalidated; callers pass
// it through CoerceReply before it reaches a transcript.
type Assistant interface {
	Ask(ctx context.Context, history []domain.ChatMessage, question string) (domain.RawReply, error)
}

// Ensure AssistantService implements the interface.
var _ Assistant = (*AssistantService)(nil)

// suggestionContextRunes bounds how much of an answer is quoted when asking for follow-ups.
const suggestionContextRunes = 500

// AssistantService asks the LLM about the constitution, grounding every
// question in the knowledge context built from the content snapshot.
type AssistantService struct {
	llm       driven.LLMService
	prompts   driven.PromptStore
	knowledge string
}

// NewAssistantService creates an assistant. llm may be nil, in which case
// every question fails with domain.ErrLLMUnavailable.
func NewAssistantService(llm driven.LLMService, content *domain.ContentStore) *AssistantService {
	return &AssistantService{
		llm:       llm,
		knowledge: content.KnowledgeContext(),
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (a *AssistantService) SetPromptStore(store driven.PromptStore) {
	a.prompts = store
}

// Ask sends the question with the given history and asks for follow-ups.
// A failed follow-up request leaves the answer intact with no suggestions.
func (a *AssistantService) Ask(
	ctx context.Context, history []domain.ChatMessage, question string,
) (domain.RawReply, error) {
	if a.llm == nil {
		return domain.RawReply{}, domain.ErrLLMUnavailable
	}

	logger.Section("Assistant")
	logger.Debug("Model: %s, history: %d messages", a.llm.ModelName(), len(history))

	prompt := fmt.Sprintf(
		loadPrompt(a.prompts, driven.PromptChatSystem),
		a.knowledge, renderHistory(history), question,
	)

	answer, err := a.llm.Chat(ctx, []driven.ChatMessage{
		{Role: driven.ChatRoleUser, Content: prompt},
	}, driven.ChatOptions{})
	if err != nil {
		return domain.RawReply{}, fmt.Errorf("ask assistant: %w", err)
	}

	return domain.RawReply{
		Text:        answer,
		Suggestions: a.suggest(ctx, answer),
	}, nil
}

// suggest asks for follow-up questions. Errors are logged and yield nil.
func (a *AssistantService) suggest(ctx context.Context, answer string) any {
	quoted := answer
	if utf8.RuneCountInString(quoted) > suggestionContextRunes {
		quoted = string([]rune(quoted)[:suggestionContextRunes])
	}

	prompt := fmt.Sprintf(loadPrompt(a.prompts, driven.PromptSuggestions), quoted)
	raw, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{JSON: true})
	if err != nil {
		logger.Warn("suggestions failed: %v", err)
		return nil
	}

	v, err := decodeSuggestions(raw)
	if err != nil {
		logger.Warn("suggestions unreadable: %v", err)
		return nil
	}
	return v
}

// renderHistory formats messages as "User: ..." / "Model: ..." lines.
func renderHistory(history []domain.ChatMessage) string {
	lines := make([]string, len(history))
	for i, m := range history {
		role := "Model"
		if m.Role == domain.RoleUser {
			role = "User"
		}
		lines[i] = role + ": " + m.Text
	}
	return strings.Join(lines, "\n")
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name string) string {
	if store != nil {
		if prompt, err := store.Load(name); err == nil && prompt != "" {
			return prompt
		}
	}
	return driven.DefaultPrompts[name]
}

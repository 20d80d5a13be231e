package driven

import "context"

// LLMService is a language model behind one provider. It may be nil: chat
// turns then settle with the missing-key reply and analysis is unavailable.
// Adapters exist for Gemini, OpenAI compatible servers, Anthropic and Ollama.
type LLMService interface {
	// Generate completes a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat answers the last turn of a conversation. System turns carry
	// instructions and grounding text.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	ModelName() string

	// Ping makes the cheapest request the provider offers.
	Ping(ctx context.Context) error

	Close() error
}

// GenerateOptions tune a single completion. Zero values leave the
// provider default in place.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float64

	// JSON asks for a JSON document instead of prose.
	JSON bool
}

// ChatOptions tune a chat completion. Zero values leave the provider
// default in place.
type ChatOptions struct {
	MaxTokens   int
	Temperature float64
}

// ChatMessage is one turn sent to a provider.
type ChatMessage struct {
	Role    string // ChatRoleSystem, ChatRoleUser or ChatRoleAssistant
	Content string
}

// Roles every adapter maps onto its provider.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

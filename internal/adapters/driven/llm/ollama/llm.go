// Package ollama talks to a local Ollama server.
package ollama

import (
	"context"
	"time"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/httpapi"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

// Defaults applied by NewLLMService.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultLLMModel   = "llama3.2"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig configures the adapter. Every field is optional.
type LLMConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService implements driven.LLMService over /api/generate and /api/chat.
// Responses are requested unstreamed.
type LLMService struct {
	api   *httpapi.Client
	model string
}

type modelOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format,omitempty"`
	Options *modelOptions `json:"options,omitempty"`
}

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatTurn    `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *modelOptions `json:"options,omitempty"`
}

// NewLLMService fills in defaults. It does not contact the server.
func NewLLMService(cfg LLMConfig) *LLMService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}
	return &LLMService{
		api:   httpapi.New("ollama", cfg.BaseURL, cfg.Timeout, nil),
		model: cfg.Model,
	}
}

// tuning returns nil when both values are unset so the model defaults apply.
func tuning(maxTokens int, temperature float64) *modelOptions {
	if maxTokens == 0 && temperature == 0 {
		return nil
	}
	return &modelOptions{NumPredict: maxTokens, Temperature: temperature}
}

// Generate runs a single prompt. JSON mode sets format=json.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := generateRequest{
		Model:   s.model,
		Prompt:  prompt,
		Options: tuning(opts.MaxTokens, opts.Temperature),
	}
	if opts.JSON {
		req.Format = "json"
	}

	var resp struct {
		Response string `json:"response"`
	}
	if err := s.api.Post(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// Chat sends the whole conversation, system turns included.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := chatRequest{
		Model:    s.model,
		Messages: make([]chatTurn, 0, len(messages)),
		Options:  tuning(opts.MaxTokens, opts.Temperature),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, chatTurn{Role: m.Role, Content: m.Content})
	}

	var resp struct {
		Message chatTurn `json:"message"`
	}
	if err := s.api.Post(ctx, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string { return s.model }

// Ping lists local models to check the server is up.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/api/tags")
}

// Close is a no-op.
func (s *LLMService) Close() error { return nil }

// Package openai talks to the OpenAI chat completions API, or to any server
// that implements it.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/httpapi"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

// Defaults applied by NewLLMService.
const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 120 * time.Second
)

// LLMConfig configures the adapter. Only APIKey is required.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService implements driven.LLMService over /chat/completions.
type LLMService struct {
	api   *httpapi.Client
	model string
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
}

// NewLLMService validates cfg and fills in defaults.
func NewLLMService(cfg LLMConfig) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultLLMModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultLLMTimeout
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+cfg.APIKey)
	return &LLMService{
		api:   httpapi.New("openai", cfg.BaseURL, cfg.Timeout, header),
		model: cfg.Model,
	}, nil
}

// Generate sends prompt as a single user turn. JSON mode maps onto the
// json_object response format.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := s.request([]driven.ChatMessage{{Role: driven.ChatRoleUser, Content: prompt}}, opts.MaxTokens, opts.Temperature)
	if opts.JSON {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return s.complete(ctx, req)
}

// Chat sends the whole conversation, system turns included.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	return s.complete(ctx, s.request(messages, opts.MaxTokens, opts.Temperature))
}

func (s *LLMService) request(messages []driven.ChatMessage, maxTokens int, temperature float64) completionRequest {
	req := completionRequest{
		Model:       s.model,
		Messages:    make([]message, 0, len(messages)),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, message{Role: m.Role, Content: m.Content})
	}
	return req
}

func (s *LLMService) complete(ctx context.Context, req completionRequest) (string, error) {
	var resp completionResponse
	if err := s.api.Post(ctx, "/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string { return s.model }

// Ping lists models, which checks the key without spending tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/models")
}

// Close is a no-op.
func (s *LLMService) Close() error { return nil }

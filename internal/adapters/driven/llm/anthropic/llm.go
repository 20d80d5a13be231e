// Package anthropic talks to the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/httpapi"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

var _ driven.LLMService = (*LLMService)(nil)

// Defaults applied by NewLLMService.
const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-3-5-sonnet-latest"
	DefaultTimeout   = 120 * time.Second
	DefaultMaxTokens = 2048

	apiVersion = "2023-06-01"

	// jsonInstruction stands in for a response format switch, which the
	// Messages API lacks.
	jsonInstruction = "Respond with a single valid JSON document and nothing else."
)

// Config configures the adapter. Only APIKey is required.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// LLMService implements driven.LLMService over /v1/messages.
type LLMService struct {
	api   *httpapi.Client
	model string
}

type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string  `json:"model"`
	System      string  `json:"system,omitempty"`
	Messages    []turn  `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature,omitempty"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

// NewLLMService validates cfg and fills in defaults.
func NewLLMService(cfg Config) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	header := http.Header{}
	header.Set("x-api-key", cfg.APIKey)
	header.Set("anthropic-version", apiVersion)
	return &LLMService{
		api:   httpapi.New("anthropic", cfg.BaseURL, cfg.Timeout, header),
		model: cfg.Model,
	}, nil
}

// Generate sends prompt as a single user turn.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	req := s.request(opts.MaxTokens, opts.Temperature)
	req.Messages = []turn{{Role: driven.ChatRoleUser, Content: prompt}}
	if opts.JSON {
		req.System = jsonInstruction
	}
	return s.send(ctx, req)
}

// Chat sends the conversation. System turns move into the system field,
// joined by blank lines, since the API only accepts user and assistant turns.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	req := s.request(opts.MaxTokens, opts.Temperature)

	var system []string
	for _, m := range messages {
		if m.Role == driven.ChatRoleSystem {
			system = append(system, m.Content)
			continue
		}
		req.Messages = append(req.Messages, turn{Role: m.Role, Content: m.Content})
	}
	req.System = strings.Join(system, "\n\n")
	return s.send(ctx, req)
}

func (s *LLMService) request(maxTokens int, temperature float64) messagesRequest {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return messagesRequest{Model: s.model, MaxTokens: maxTokens, Temperature: temperature}
}

// send returns the concatenated text blocks of the reply.
func (s *LLMService) send(ctx context.Context, req messagesRequest) (string, error) {
	var resp messagesResponse
	if err := s.api.Post(ctx, "/v1/messages", req, &resp); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("anthropic: response has no text")
	}
	return b.String(), nil
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string { return s.model }

// Ping lists models, which checks the key without spending tokens.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.api.Get(ctx, "/v1/models")
}

// Close is a no-op.
func (s *LLMService) Close() error { return nil }

// Package gemini provides chat, analysis and speech adapters backed by the
// Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// Default configuration values.
const (
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Gemini services.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the text model (default: domain.DefaultLLMModels()[gemini]).
	Model string

	// SpeechModel is the text-to-speech model (default: domain.DefaultSpeechModel).
	SpeechModel string

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Timeout bounds each request (default: 120s).
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = domain.DefaultLLMModels()[domain.AIProviderGemini]
	}
	if c.SpeechModel == "" {
		c.SpeechModel = domain.DefaultSpeechModel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// newClient builds a genai client for the Gemini developer API.
func newClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return client, nil
}

// LLMService provides text generation using Gemini.
type LLMService struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewLLMService creates a Gemini text service.
func NewLLMService(ctx context.Context, cfg Config) (*LLMService, error) {
	cfg = cfg.withDefaults()
	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &LLMService{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Generate produces text completion from a prompt.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	config := generationConfig(opts.MaxTokens, opts.Temperature)
	if opts.JSON {
		config.ResponseMIMEType = "application/json"
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	return s.generate(ctx, contents, config)
}

// Chat conducts a multi-turn conversation. System messages become the
// system instruction; assistant turns are sent with the model role.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	config := generationConfig(opts.MaxTokens, opts.Temperature)

	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case driven.ChatRoleSystem:
			system = append(system, msg.Content)
		case driven.ChatRoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	return s.generate(ctx, contents, config)
}

func (s *LLMService) generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

func generationConfig(maxTokens int, temperature float64) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	if temperature > 0 {
		config.Temperature = genai.Ptr(float32(temperature))
	}
	return config
}

// ModelName returns the name of the LLM model being used.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping makes a minimal generation request to validate the key and model.
func (s *LLMService) Ping(ctx context.Context) error {
	_, err := s.Generate(ctx, "ping", driven.GenerateOptions{MaxTokens: 1})
	return err
}

// Close releases resources.
func (s *LLMService) Close() error {
	return nil
}

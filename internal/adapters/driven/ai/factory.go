// Package ai builds the AI collaborators (LLM and speech) from settings.
package ai

import (
	"context"
	"fmt"

	anthropicllm "github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/mashruteh/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

// InitResult contains the AI collaborators built from settings.
type InitResult struct {
	LLMService driven.LLMService
	Speech     driven.SpeechSynthesizer
	Warnings   []string // Non-fatal issues; the app runs without the missing piece.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init builds guarded LLM and speech collaborators. It never fails: a
// missing or broken provider is reported as a warning and left nil.
func Init(ctx context.Context, settings domain.AppSettings, guard GuardConfig) *InitResult {
	result := &InitResult{}

	if !settings.LLM.IsConfigured() {
		result.Warnings = append(result.Warnings,
			"no AI provider configured; run 'mashruteh settings set llm.api_key <key>' or set GEMINI_API_KEY")
	} else {
		llm, err := CreateLLMService(&settings.LLM)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("AI provider unavailable: %v", err))
		} else if llm != nil {
			result.LLMService = NewGuardedLLM(llm, guard)
		}
	}

	synth, err := CreateSpeechSynthesizer(ctx, &settings.LLM, &settings.Speech)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("speech unavailable: %v", err))
	} else if synth != nil {
		result.Speech = NewGuardedSynthesizer(synth, guard)
	}

	return result
}

// CreateLLMService creates the LLM service for the configured provider.
// Returns nil if the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewLLMService(context.Background(), geminillm.Config{
			APIKey:  settings.APIKey,
			Model:   settings.Model,
			BaseURL: settings.BaseURL,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// CreateSpeechSynthesizer creates a synthesiser when the provider supports
// speech. Returns nil otherwise.
func CreateSpeechSynthesizer(
	ctx context.Context,
	llm *domain.LLMSettings,
	speech *domain.SpeechSettings,
) (driven.SpeechSynthesizer, error) {
	if llm == nil || !llm.IsConfigured() || !llm.Provider.SupportsSpeech() {
		return nil, nil
	}

	model := ""
	if speech != nil {
		model = speech.Model
	}
	return geminillm.NewSynthesizer(ctx, geminillm.Config{
		APIKey:      llm.APIKey,
		SpeechModel: model,
		BaseURL:     llm.BaseURL,
	})
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/kvcache"
	"github.com/custodia-labs/mashruteh/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
)

const analysisJSON = `{
  "modernText": "متن امروزی",
  "example": "مثال",
  "historicalContext": "زمینه",
  "proponentView": "موافق",
  "opponentView": "مخالف",
  "prevailingView": "غالب",
  "legalTruth": "حقیقت حقوقی"
}`

func wantAnalysis() domain.ArticleAnalysis {
	return domain.ArticleAnalysis{
		ModernText:        "متن امروزی",
		Example:           "مثال",
		HistoricalContext: "زمینه",
		ProponentView:     "موافق",
		OpponentView:      "مخالف",
		PrevailingView:    "غالب",
		LegalTruth:        "حقیقت حقوقی",
	}
}

func TestAnalysisService_GeneratesAndCaches(t *testing.T) {
	llm := &mockLLM{generate: func(string, driven.GenerateOptions) (string, error) { return analysisJSON, nil }}
	cache := kvcache.New(memory.NewKVStore())
	service := NewAnalysisService(llm, cache)
	ctx := context.Background()

	got, err := service.Analyze(ctx, "اصل اول", "مجلس شورای ملی")

	require.NoError(t, err)
	assert.Equal(t, wantAnalysis(), got)
	require.Len(t, llm.generatePrompts, 1)
	assert.Contains(t, llm.generatePrompts[0], "اصل اول")
	assert.Contains(t, llm.generatePrompts[0], "مجلس شورای ملی")
	assert.True(t, llm.generateOpts[0].JSON)

	cached, ok := service.Cached(ctx, "اصل اول")
	require.True(t, ok)
	assert.Equal(t, wantAnalysis(), cached)

	again, err := service.Analyze(ctx, "اصل اول", "مجلس شورای ملی")
	require.NoError(t, err)
	assert.Equal(t, wantAnalysis(), again)
	assert.Equal(t, 1, llm.generateCount())
}

func TestAnalysisService_CacheHitWithoutLLM(t *testing.T) {
	cache := kvcache.New(memory.NewKVStore())
	cache.Put(context.Background(), "اصل اول", wantAnalysis())
	service := NewAnalysisService(nil, cache)

	got, err := service.Analyze(context.Background(), "اصل اول", "")

	require.NoError(t, err)
	assert.Equal(t, wantAnalysis(), got)
}

func TestAnalysisService_MissWithoutLLM(t *testing.T) {
	service := NewAnalysisService(nil, kvcache.New(memory.NewKVStore()))

	_, err := service.Analyze(context.Background(), "اصل اول", "")

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestAnalysisService_FailuresFallBackUncached(t *testing.T) {
	tests := []struct {
		name     string
		generate func(string, driven.GenerateOptions) (string, error)
	}{
		{"provider error", func(string, driven.GenerateOptions) (string, error) { return "", errors.New("503") }},
		{"not json", func(string, driven.GenerateOptions) (string, error) { return "تحلیل", nil }},
		{"empty object", func(string, driven.GenerateOptions) (string, error) { return "{}", nil }},
		{"unknown fields", func(string, driven.GenerateOptions) (string, error) { return `{"summary": "x"}`, nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := kvcache.New(memory.NewKVStore())
			service := NewAnalysisService(&mockLLM{generate: tt.generate}, cache)
			ctx := context.Background()

			got, err := service.Analyze(ctx, "اصل اول", "متن")

			require.NoError(t, err)
			assert.Equal(t, domain.FallbackAnalysis(), got)
			_, ok := service.Cached(ctx, "اصل اول")
			assert.False(t, ok)
		})
	}
}

func TestAnalysisService_CustomPrompt(t *testing.T) {
	llm := &mockLLM{generate: func(string, driven.GenerateOptions) (string, error) { return analysisJSON, nil }}
	service := NewAnalysisService(llm, kvcache.New(memory.NewKVStore()))
	service.SetPromptStore(&mockPromptStore{prompts: map[string]string{
		driven.PromptAnalysis: "T=%s C=%s",
	}})

	_, err := service.Analyze(context.Background(), "عنوان", "متن")

	require.NoError(t, err)
	assert.Equal(t, "T=عنوان C=متن", llm.generatePrompts[0])
}

func TestDecodeAnalysis(t *testing.T) {
	t.Run("fenced", func(t *testing.T) {
		got, err := decodeAnalysis("```json\n" + analysisJSON + "\n```")
		require.NoError(t, err)
		assert.Equal(t, wantAnalysis(), got)
	})

	t.Run("coerces values", func(t *testing.T) {
		got, err := decodeAnalysis(`{"modernText": " متن ", "example": 42, "legalTruth": ["الف", "ب"], "opponentView": null}`)
		require.NoError(t, err)
		assert.Equal(t, "متن", got.ModernText)
		assert.Equal(t, "42", got.Example)
		assert.Equal(t, "الف ب", got.LegalTruth)
		assert.Empty(t, got.OpponentView)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := decodeAnalysis(`["x"]`)
		assert.Error(t, err)
	})

	t.Run("no known fields", func(t *testing.T) {
		_, err := decodeAnalysis(`{"other": "x"}`)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

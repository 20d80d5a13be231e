package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driven"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService explains records with the LLM and caches the result by title.
type AnalysisService struct {
	llm     driven.LLMService
	cache   driven.AnalysisCache
	prompts driven.PromptStore
}

// NewAnalysisService creates an analysis service. llm may be nil; cached
// analyses are still served.
func NewAnalysisService(llm driven.LLMService, cache driven.AnalysisCache) *AnalysisService {
	return &AnalysisService{llm: llm, cache: cache}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (a *AnalysisService) SetPromptStore(store driven.PromptStore) {
	a.prompts = store
}

// Cached returns a stored analysis without calling the AI.
func (a *AnalysisService) Cached(ctx context.Context, title string) (domain.ArticleAnalysis, bool) {
	return a.cache.Get(ctx, title)
}

// Analyze returns the cached analysis for title or generates and caches one.
// A failed generation returns the fallback analysis, which is not cached.
func (a *AnalysisService) Analyze(ctx context.Context, title, content string) (domain.ArticleAnalysis, error) {
	logger.Section("Analysis")

	if cached, ok := a.cache.Get(ctx, title); ok {
		logger.Debug("cache hit for %q", title)
		return cached, nil
	}
	if a.llm == nil {
		return domain.ArticleAnalysis{}, domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(loadPrompt(a.prompts, driven.PromptAnalysis), title, content)
	raw, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{JSON: true})
	if err != nil {
		logger.Warn("analysis of %q failed: %v", title, err)
		return domain.FallbackAnalysis(), nil
	}

	analysis, err := decodeAnalysis(raw)
	if err != nil {
		logger.Warn("analysis of %q unreadable: %v", title, err)
		return domain.FallbackAnalysis(), nil
	}

	a.cache.Put(ctx, title, analysis)
	return analysis, nil
}

// decodeAnalysis reads the seven analysis fields from a JSON object.
// Non-string field values are coerced the same way chat replies are.
func decodeAnalysis(raw string) (domain.ArticleAnalysis, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return domain.ArticleAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	field := func(name string) string {
		return strings.TrimSpace(coerceScalar(fields[name]))
	}
	analysis := domain.ArticleAnalysis{
		ModernText:        field("modernText"),
		Example:           field("example"),
		HistoricalContext: field("historicalContext"),
		ProponentView:     field("proponentView"),
		OpponentView:      field("opponentView"),
		PrevailingView:    field("prevailingView"),
		LegalTruth:        field("legalTruth"),
	}
	if analysis.IsEmpty() {
		return domain.ArticleAnalysis{}, fmt.Errorf("decode analysis: %w: no known fields", domain.ErrInvalidInput)
	}
	return analysis, nil
}

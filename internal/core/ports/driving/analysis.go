package driving

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// AnalysisService explains content records with the AI assistant.
type AnalysisService interface {
	// Analyze returns the cached analysis for title, generating it on a miss.
	// Generation failures yield domain.FallbackAnalysis and no error.
	Analyze(ctx context.Context, title, content string) (domain.ArticleAnalysis, error)

	// Cached returns a stored analysis without calling the AI.
	Cached(ctx context.Context, title string) (domain.ArticleAnalysis, bool)
}

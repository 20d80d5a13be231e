package driven

import (
	"context"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// AnalysisCache maps a record title to its analysis.
// Entries never expire; the last write for a title wins.
// Implementations absorb storage failures: a failed read is a miss and a
// failed write is logged and dropped.
type AnalysisCache interface {
	// Get looks up an analysis by exact title.
	Get(ctx context.Context, title string) (domain.ArticleAnalysis, bool)

	// Put inserts or overwrites the analysis for title.
	Put(ctx context.Context, title string, analysis domain.ArticleAnalysis)
}

// ChatHistoryStore persists saved chats, newest first.
// Like AnalysisCache it never surfaces storage errors to the caller.
type ChatHistoryStore interface {
	// ListAll returns every saved chat in stored order.
	ListAll(ctx context.Context) []domain.SavedChat

	// Save replaces the chat with the same id in place, or prepends it.
	Save(ctx context.Context, chat domain.SavedChat)

	// Delete removes the chat with id. Absent ids are ignored.
	Delete(ctx context.Context, id string)
}

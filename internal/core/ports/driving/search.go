package driving

import "github.com/custodia-labs/mashruteh/internal/core/domain"

// SearchService provides search capabilities to external actors.
// Searching never fails: no match is an empty result.
type SearchService interface {
	// Search scans every collection for the query.
	Search(query string, opts domain.SearchOptions) []domain.SearchResult

	// Highlight splits text into runs, marking occurrences of query.
	Highlight(text, query string) []domain.HighlightSegment

	// Lookup resolves a navigation target back to its full record.
	Lookup(resultType domain.ResultType, id string) (domain.Record, error)
}

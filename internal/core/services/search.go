package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
	"github.com/custodia-labs/mashruteh/internal/core/ports/driving"
	"github.com/custodia-labs/mashruteh/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService scans the content snapshot for a query.
//
// Matching is a case-sensitive substring test of the raw query against the
// searched fields of each record. Results keep collection scan order (laws,
// documents, actions, legal analyses, comprehensive analyses) and declaration
// order within a collection; there is no other ranking.
type SearchService struct {
	content *domain.ContentStore
}

// NewSearchService creates a search service over an immutable content snapshot.
func NewSearchService(content *domain.ContentStore) *SearchService {
	if content == nil {
		content = &domain.ContentStore{}
	}
	return &SearchService{content: content}
}

// Search returns every record containing query, in scan order.
// A blank query returns an empty, non-nil slice.
func (s *SearchService) Search(query string, opts domain.SearchOptions) []domain.SearchResult {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	if strings.TrimSpace(query) == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}
	}

	want := typeFilter(opts.Types)
	results := make([]domain.SearchResult, 0)

	if want(domain.ResultTypeLaw) {
		for _, sec := range s.content.Sections {
			if contains(query, sec.Content, sec.Title) {
				results = append(results, domain.SearchResult{
					ID:          sec.ID,
					Title:       sec.Title,
					Content:     sec.Content,
					Type:        domain.ResultTypeLaw,
					SourceLabel: sec.Category.Label(),
				})
			}
		}
	}

	if want(domain.ResultTypeDoc) {
		for _, doc := range s.content.Documents {
			if contains(query, doc.Content, doc.Title) {
				results = append(results, domain.SearchResult{
					ID:          doc.ID,
					Title:       doc.Title,
					Content:     doc.Content,
					Type:        domain.ResultTypeDoc,
					SourceLabel: domain.LabelHistoricalDoc,
				})
			}
		}
	}

	if want(domain.ResultTypeAction) {
		for _, act := range s.content.Actions {
			if contains(query, act.Description, act.Title) {
				results = append(results, domain.SearchResult{
					ID:          act.ID,
					Title:       act.Title,
					Content:     act.Description,
					Type:        domain.ResultTypeAction,
					SourceLabel: domain.LabelAction,
				})
			}
		}
	}

	if want(domain.ResultTypeAnalysis) {
		for _, lc := range s.content.LegalChecks {
			if contains(query, lc.LegalExplanation, lc.ActionTitle) || contains(query, lc.ViolatedArticles...) {
				results = append(results, domain.SearchResult{
					ID:          lc.ID,
					Title:       domain.TitlePrefixLegalAnalysis + lc.ActionTitle,
					Content:     lc.LegalExplanation,
					Type:        domain.ResultTypeAnalysis,
					SourceLabel: domain.LabelLegalAnalysis,
				})
			}
		}
	}

	if want(domain.ResultTypeComprehensive) {
		for _, ci := range s.content.Comprehensive {
			if contains(query, ci.NeutralVerdict, ci.Title, ci.Description) {
				results = append(results, domain.SearchResult{
					ID:          ci.ID,
					Title:       domain.TitlePrefixComprehensive + ci.Title,
					Content:     ci.NeutralVerdict,
					Type:        domain.ResultTypeComprehensive,
					SourceLabel: domain.LabelComprehensive,
				})
			}
		}
	}

	logger.Debug("Matched %d records", len(results))

	return s.applyPagination(results, opts.Offset, opts.Limit)
}

// contains reports whether any field holds query verbatim.
func contains(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(f, query) {
			return true
		}
	}
	return false
}

// typeFilter returns a predicate accepting the given types, or all types when none are given.
func typeFilter(types []domain.ResultType) func(domain.ResultType) bool {
	if len(types) == 0 {
		return func(domain.ResultType) bool { return true }
	}
	set := make(map[domain.ResultType]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return func(t domain.ResultType) bool { return set[t] }
}

// applyPagination applies offset and limit to results. A zero limit keeps the rest.
func (s *SearchService) applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return []domain.SearchResult{}
	}

	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return results[offset:end]
}

// Highlight splits text into runs, marking every case-insensitive
// occurrence of query. Unlike matching, highlighting ignores case.
func (s *SearchService) Highlight(text, query string) []domain.HighlightSegment {
	return Highlight(text, query)
}

// Highlight is the stateless form of SearchService.Highlight.
func Highlight(text, query string) []domain.HighlightSegment {
	if query == "" || text == "" {
		return []domain.HighlightSegment{{Text: text}}
	}

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []domain.HighlightSegment{{Text: text}}
	}

	segments := make([]domain.HighlightSegment, 0, 2*len(locs)+1)
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			segments = append(segments, domain.HighlightSegment{Text: text[prev:loc[0]]})
		}
		segments = append(segments, domain.HighlightSegment{Text: text[loc[0]:loc[1]], Match: true})
		prev = loc[1]
	}
	if prev < len(text) {
		segments = append(segments, domain.HighlightSegment{Text: text[prev:]})
	}
	return segments
}

// Lookup resolves a result type and id to the full record.
func (s *SearchService) Lookup(resultType domain.ResultType, id string) (domain.Record, error) {
	switch resultType {
	case domain.ResultTypeLaw:
		for _, sec := range s.content.Sections {
			if sec.ID == id {
				return domain.Record{
					Type: resultType, ID: id, Title: sec.Title,
					SourceLabel: sec.Category.Label(),
					Body:        sec.Content,
				}, nil
			}
		}
	case domain.ResultTypeDoc:
		for _, doc := range s.content.Documents {
			if doc.ID == id {
				return domain.Record{
					Type: resultType, ID: id, Title: doc.Title,
					SourceLabel: domain.LabelHistoricalDoc,
					Body:        docBody(doc),
				}, nil
			}
		}
	case domain.ResultTypeAction:
		for _, act := range s.content.Actions {
			if act.ID == id {
				return domain.Record{
					Type: resultType, ID: id, Title: act.Title,
					SourceLabel: domain.LabelAction,
					Body:        actionBody(act),
				}, nil
			}
		}
	case domain.ResultTypeAnalysis:
		for _, lc := range s.content.LegalChecks {
			if lc.ID == id {
				return domain.Record{
					Type: resultType, ID: id,
					Title:       domain.TitlePrefixLegalAnalysis + lc.ActionTitle,
					SourceLabel: domain.LabelLegalAnalysis,
					Body:        legalBody(lc),
				}, nil
			}
		}
	case domain.ResultTypeComprehensive:
		for _, ci := range s.content.Comprehensive {
			if ci.ID == id {
				return domain.Record{
					Type: resultType, ID: id,
					Title:       domain.TitlePrefixComprehensive + ci.Title,
					SourceLabel: domain.LabelComprehensive,
					Body:        comprehensiveBody(ci),
				}, nil
			}
		}
	default:
		return domain.Record{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedType, resultType)
	}
	return domain.Record{}, fmt.Errorf("%s %q: %w", resultType, id, domain.ErrNotFound)
}

func docBody(doc domain.HistoricalDoc) string {
	var b strings.Builder
	if doc.Author != "" {
		b.WriteString("*" + doc.Author + "*\n\n")
	}
	b.WriteString(doc.Content)
	if len(doc.References) > 0 {
		b.WriteString("\n\n### منابع\n")
		writeList(&b, doc.References)
	}
	return b.String()
}

func actionBody(act domain.ActionItem) string {
	var b strings.Builder
	if act.Date != "" {
		b.WriteString("**" + act.Date + "**\n\n")
	}
	b.WriteString(act.Description)
	if len(act.Sources) > 0 {
		b.WriteString("\n\n### منابع\n")
		for _, src := range act.Sources {
			if src.URL != "" {
				b.WriteString("- [" + src.Title + "](" + src.URL + ")\n")
			} else {
				b.WriteString("- " + src.Title + "\n")
			}
		}
	}
	return b.String()
}

func legalBody(lc domain.LegalCheck) string {
	var b strings.Builder
	if lc.ActionDescription != "" {
		b.WriteString(lc.ActionDescription + "\n\n")
	}
	if len(lc.ViolatedArticles) > 0 {
		b.WriteString("### اصول نقض شده\n")
		writeList(&b, lc.ViolatedArticles)
		b.WriteString("\n")
	}
	b.WriteString("### توضیح حقوقی\n" + lc.LegalExplanation)
	if lc.DefenseView != "" {
		b.WriteString("\n\n### دیدگاه دفاعی\n" + lc.DefenseView)
	}
	return b.String()
}

func comprehensiveBody(ci domain.ComprehensiveItem) string {
	var b strings.Builder
	if ci.Date != "" {
		b.WriteString("**" + ci.Date + "**\n\n")
	}
	if ci.Description != "" {
		b.WriteString(ci.Description + "\n\n")
	}
	if len(ci.Actions) > 0 {
		b.WriteString("### اقدامات\n")
		writeList(&b, ci.Actions)
		b.WriteString("\n")
	}
	if len(ci.ConstitutionalReference) > 0 {
		b.WriteString("### مستندات قانونی\n")
		writeList(&b, ci.ConstitutionalReference)
		b.WriteString("\n")
	}
	b.WriteString("### حکم بی‌طرفانه\n" + ci.NeutralVerdict)
	b.WriteString("\n\nنمره قانونی: " + strconv.Itoa(ci.LegalityScore) + "/100")
	if len(ci.Sources) > 0 {
		b.WriteString("\n\n### منابع\n")
		writeList(&b, ci.Sources)
	}
	return b.String()
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

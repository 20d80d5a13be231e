// Package list renders search hits for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/mashruteh/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// Highlighter splits text into matching and non-matching runs.
type Highlighter func(text, query string) []domain.HighlightSegment

// rowHeight is the number of terminal lines one hit occupies.
const rowHeight = 3

// ResultList is a scrollable list of search hits with a cursor.
// The window follows the cursor so the selected hit is always visible.
type ResultList struct {
	styles    *styles.Styles
	highlight Highlighter

	hits   []domain.SearchResult
	query  string
	cursor int
	offset int

	width  int
	height int
}

// NewResultList returns an empty list.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ResultList{styles: s, width: 80, height: 10}
}

// SetHighlighter sets the function used to emphasise matches.
func (r *ResultList) SetHighlighter(h Highlighter) { r.highlight = h }

// SetQuery sets the query whose occurrences are emphasised.
func (r *ResultList) SetQuery(query string) { r.query = query }

// SetResults replaces the hits and moves the cursor to the top.
func (r *ResultList) SetResults(hits []domain.SearchResult) {
	r.hits = hits
	r.cursor = 0
	r.offset = 0
}

// Results returns the current hits.
func (r *ResultList) Results() []domain.SearchResult { return r.hits }

// Count returns the number of hits.
func (r *ResultList) Count() int { return len(r.hits) }

// Selected returns the cursor position.
func (r *ResultList) Selected() int { return r.cursor }

// SelectedResult returns the hit under the cursor, or nil for an empty list.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.cursor >= len(r.hits) {
		return nil
	}
	return &r.hits[r.cursor]
}

// Select moves the cursor to index. Out of range indexes are ignored.
func (r *ResultList) Select(index int) {
	if index < 0 || index >= len(r.hits) {
		return
	}
	r.cursor = index
	r.follow()
}

// MoveUp moves the cursor one hit up.
func (r *ResultList) MoveUp() { r.Select(r.cursor - 1) }

// MoveDown moves the cursor one hit down.
func (r *ResultList) MoveDown() { r.Select(r.cursor + 1) }

// SetDimensions sets the area available to the list.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
	r.follow()
}

// rows is the number of hits that fit below the header.
func (r *ResultList) rows() int {
	return max((r.height-2)/rowHeight, 1)
}

// follow scrolls the window so the cursor stays inside it.
func (r *ResultList) follow() {
	rows := r.rows()
	switch {
	case r.cursor < r.offset:
		r.offset = r.cursor
	case r.cursor >= r.offset+rows:
		r.offset = r.cursor - rows + 1
	}
}

// View renders the visible window of hits.
func (r *ResultList) View() string {
	if len(r.hits) == 0 {
		return r.styles.Muted.Render("No results")
	}

	end := min(r.offset+r.rows(), len(r.hits))

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(r.header(end)))
	b.WriteString("\n")
	for i := r.offset; i < end; i++ {
		b.WriteString("\n")
		b.WriteString(r.row(i))
	}
	return b.String()
}

func (r *ResultList) header(end int) string {
	if r.offset == 0 && end == len(r.hits) {
		return fmt.Sprintf("%d results", len(r.hits))
	}
	return fmt.Sprintf("%d results (showing %d-%d)", len(r.hits), r.offset+1, end)
}

// row renders one hit as a title line and a snippet line.
func (r *ResultList) row(i int) string {
	hit := &r.hits[i]

	title := hit.Title
	if title == "" {
		title = hit.ID
	}
	title = Truncate(title, max(r.width-len(hit.SourceLabel)-6, 10))

	marker, titleStyle := "  ", r.styles.Normal
	if i == r.cursor {
		marker, titleStyle = "> ", r.styles.Selected
	}

	snippet := Truncate(strings.Join(strings.Fields(hit.Content), " "), max(r.width-4, 20))

	return titleStyle.Render(marker+title) + "  " +
		r.styles.Muted.Render("["+hit.SourceLabel+"]") + "\n    " +
		r.snippet(snippet) + "\n"
}

// snippet emphasises occurrences of the current query.
func (r *ResultList) snippet(text string) string {
	if r.highlight == nil || r.query == "" {
		return r.styles.Muted.Render(text)
	}

	var b strings.Builder
	for _, seg := range r.highlight(text, r.query) {
		style := r.styles.Muted
		if seg.Match {
			style = r.styles.Match
		}
		b.WriteString(style.Render(seg.Text))
	}
	return b.String()
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

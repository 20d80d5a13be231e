package domain

import (
	"fmt"
	"strings"
)

// ResultType tags the collection a search result came from.
type ResultType string

// Result types, one per collection.
const (
	ResultTypeLaw           ResultType = "law"
	ResultTypeDoc           ResultType = "doc"
	ResultTypeAction        ResultType = "action"
	ResultTypeAnalysis      ResultType = "analysis"
	ResultTypeComprehensive ResultType = "comprehensive"
)

// Source labels and title prefixes shown alongside results.
const (
	LabelConstitution  = "قانون اساسی"
	LabelSupplement    = "متمم"
	LabelIntro         = "مقدمه"
	LabelHistoricalDoc = "سند تاریخی"
	LabelAction        = "اقدامات مصدق"
	LabelLegalAnalysis = "تحلیل حقوقی"
	LabelComprehensive = "تحلیل بی‌طرفانه"

	TitlePrefixLegalAnalysis = "تحلیل حقوقی: "
	TitlePrefixComprehensive = "تحلیل جامع: "
)

// AllResultTypes returns the result types in collection scan order.
func AllResultTypes() []ResultType {
	return []ResultType{
		ResultTypeLaw,
		ResultTypeDoc,
		ResultTypeAction,
		ResultTypeAnalysis,
		ResultTypeComprehensive,
	}
}

// IsValid returns true if the result type is recognised.
func (t ResultType) IsValid() bool {
	_, ok := viewTargets[t]
	return ok
}

// String returns the string representation.
func (t ResultType) String() string {
	return string(t)
}

// View returns the view a result of this type navigates to.
// Unknown types map to the empty view.
func (t ResultType) View() ViewMode {
	return viewTargets[t]
}

// ParseResultTypes parses a comma separated list such as "law,doc".
// Blank input yields nil (no filter).
func ParseResultTypes(s string) ([]ResultType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var types []ResultType
	for _, part := range strings.Split(s, ",") {
		t := ResultType(strings.TrimSpace(part))
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: result type %q", ErrUnsupportedType, part)
		}
		types = append(types, t)
	}
	return types, nil
}

// ViewMode identifies a top-level content view.
type ViewMode string

// Available views.
const (
	ViewLaws          ViewMode = "laws"
	ViewHistorical    ViewMode = "historical"
	ViewMossadegh     ViewMode = "mossadegh"
	ViewAnalysis      ViewMode = "analysis"
	ViewComprehensive ViewMode = "comprehensive"
)

// viewTargets is total over the result types.
var viewTargets = map[ResultType]ViewMode{
	ResultTypeLaw:           ViewLaws,
	ResultTypeDoc:           ViewHistorical,
	ResultTypeAction:        ViewMossadegh,
	ResultTypeAnalysis:      ViewAnalysis,
	ResultTypeComprehensive: ViewComprehensive,
}

// NavigationTarget is where selecting a result leads.
type NavigationTarget struct {
	View ViewMode
	ID   string
}

// SearchOptions configures a search query.
type SearchOptions struct {
	// Types restricts results to these collections. Empty means all.
	Types []ResultType

	// Limit is the maximum number of results. Zero means unlimited.
	Limit int

	// Offset is the number of results to skip.
	Offset int
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// ID is the record identifier within its collection.
	ID string `json:"id"`

	// Title is the display title, prefixed for analysis results.
	Title string `json:"title"`

	// Content is the snippet field copied from the record.
	Content string `json:"content"`

	// Type is the originating collection.
	Type ResultType `json:"type"`

	// SourceLabel is the display label of the collection.
	SourceLabel string `json:"sourceLabel"`
}

// Target returns the navigation target for this result.
func (r SearchResult) Target() NavigationTarget {
	return NavigationTarget{View: r.Type.View(), ID: r.ID}
}

// HighlightSegment is one run of a highlighted snippet.
type HighlightSegment struct {
	Text  string
	Match bool
}

// Record is the full, display-ready form of one content record.
type Record struct {
	Type        ResultType
	ID          string
	Title       string
	SourceLabel string

	// Body is Markdown assembled from the record's fields.
	Body string
}

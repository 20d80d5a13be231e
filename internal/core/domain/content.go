package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// LawCategory groups constitution sections.
type LawCategory string

// Known law categories.
const (
	LawCategoryIntro        LawCategory = "intro"
	LawCategoryConstitution LawCategory = "constitution"
	LawCategorySupplement   LawCategory = "supplement"
	LawCategoryAmendment    LawCategory = "amendment"
)

// IsValid returns true if the category is recognised.
func (c LawCategory) IsValid() bool {
	switch c {
	case LawCategoryIntro, LawCategoryConstitution, LawCategorySupplement, LawCategoryAmendment:
		return true
	default:
		return false
	}
}

// Label returns the source label shown for sections of this category.
// Anything that is neither constitution nor supplement is shown as the preamble.
func (c LawCategory) Label() string {
	switch c {
	case LawCategoryConstitution:
		return LabelConstitution
	case LawCategorySupplement:
		return LabelSupplement
	default:
		return LabelIntro
	}
}

// Section is one article (or the preamble) of the constitution.
type Section struct {
	ID       string      `yaml:"id" validate:"required"`
	Title    string      `yaml:"title" validate:"required"`
	Content  string      `yaml:"content" validate:"required"`
	Category LawCategory `yaml:"category" validate:"required,oneof=intro constitution supplement amendment"`
}

// HistoricalDoc is a historical text such as a decree or a letter.
type HistoricalDoc struct {
	ID         string            `yaml:"id" validate:"required"`
	Title      string            `yaml:"title" validate:"required"`
	Author     string            `yaml:"author,omitempty"`
	Content    string            `yaml:"content" validate:"required"`
	Footnotes  map[string]string `yaml:"footnotes,omitempty"`
	References []string          `yaml:"references,omitempty"`
}

// SourceLink is a titled external reference.
type SourceLink struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url" validate:"omitempty,url"`
}

// ActionItem is one recorded action of the Mossadegh government.
type ActionItem struct {
	ID          string       `yaml:"id" validate:"required"`
	Title       string       `yaml:"title" validate:"required"`
	Description string       `yaml:"description" validate:"required"`
	Category    string       `yaml:"category" validate:"omitempty,oneof=legal political military"`
	Date        string       `yaml:"date,omitempty"`
	Sources     []SourceLink `yaml:"sources,omitempty" validate:"dive"`
}

// LegalCheck is the legal analysis of one action against the constitution.
type LegalCheck struct {
	ID                string   `yaml:"id" validate:"required"`
	ActionTitle       string   `yaml:"action_title" validate:"required"`
	ActionDescription string   `yaml:"action_description"`
	ViolatedArticles  []string `yaml:"violated_articles"`
	LegalExplanation  string   `yaml:"legal_explanation" validate:"required"`
	DefenseView       string   `yaml:"defense_view"`
}

// ComprehensiveItem is a neutral, scored analysis of an episode.
type ComprehensiveItem struct {
	ID                      string   `yaml:"id" validate:"required"`
	Title                   string   `yaml:"title" validate:"required"`
	Description             string   `yaml:"description"`
	Date                    string   `yaml:"date"`
	Actions                 []string `yaml:"actions,omitempty"`
	ConstitutionalReference []string `yaml:"constitutional_reference,omitempty"`
	NeutralVerdict          string   `yaml:"neutral_verdict" validate:"required"`
	LegalityScore           int      `yaml:"legality_score" validate:"gte=0,lte=100"`
	Sources                 []string `yaml:"sources,omitempty"`
}

// ContentStore is the immutable snapshot of every searchable collection.
// It is built once at startup and shared read-only afterwards.
type ContentStore struct {
	Sections      []Section           `yaml:"sections" validate:"dive"`
	Documents     []HistoricalDoc     `yaml:"documents" validate:"dive"`
	Actions       []ActionItem        `yaml:"actions" validate:"dive"`
	LegalChecks   []LegalCheck        `yaml:"legal_checks" validate:"dive"`
	Comprehensive []ComprehensiveItem `yaml:"comprehensive" validate:"dive"`
}

// Size returns the total number of records across all collections.
func (s *ContentStore) Size() int {
	if s == nil {
		return 0
	}
	return len(s.Sections) + len(s.Documents) + len(s.Actions) + len(s.LegalChecks) + len(s.Comprehensive)
}

// CheckIDs verifies identifiers are unique within each collection.
// The same identifier may appear in two different collections.
func (s *ContentStore) CheckIDs() error {
	collections := []struct {
		name string
		ids  []string
	}{
		{"section", collectIDs(s.Sections, func(v Section) string { return v.ID })},
		{"document", collectIDs(s.Documents, func(v HistoricalDoc) string { return v.ID })},
		{"action", collectIDs(s.Actions, func(v ActionItem) string { return v.ID })},
		{"legal check", collectIDs(s.LegalChecks, func(v LegalCheck) string { return v.ID })},
		{"comprehensive", collectIDs(s.Comprehensive, func(v ComprehensiveItem) string { return v.ID })},
	}

	for _, c := range collections {
		seen := make(map[string]struct{}, len(c.ids))
		for _, id := range c.ids {
			if id == "" {
				return fmt.Errorf("%w: empty %s id", ErrInvalidInput, c.name)
			}
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%w: duplicate %s id %q", ErrInvalidInput, c.name, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

func collectIDs[T any](items []T, id func(T) string) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = id(item)
	}
	return ids
}

// KnowledgeContext assembles the static reference text handed to the AI
// assistant: all sections, then actions and their analyses, then documents.
func (s *ContentStore) KnowledgeContext() string {
	if s == nil {
		return ""
	}

	parts := make([]string, 0, len(s.Sections)+5)
	for _, sec := range s.Sections {
		parts = append(parts, "=== "+sec.Title+" ===\n"+sec.Content)
	}

	parts = append(parts, "=== اقدامات مصدق و تحلیل حقوقی ===")

	actions := make([]string, len(s.Actions))
	for i, a := range s.Actions {
		actions[i] = "اقدام مصدق: " + a.Title + " - " + a.Description
	}
	parts = append(parts, strings.Join(actions, "\n"))

	legal := make([]string, len(s.LegalChecks))
	for i, l := range s.LegalChecks {
		legal[i] = "تحلیل حقوقی اقدام " + l.ActionTitle +
			": اصول نقض شده: " + strings.Join(l.ViolatedArticles, ", ") +
			". توضیح: " + l.LegalExplanation
	}
	parts = append(parts, strings.Join(legal, "\n"))

	comp := make([]string, len(s.Comprehensive))
	for i, c := range s.Comprehensive {
		comp[i] = "تحلیل جامع " + c.Title + ": حکم بی‌طرفانه: " + c.NeutralVerdict +
			" (نمره قانونی: " + strconv.Itoa(c.LegalityScore) + "/100)"
	}
	parts = append(parts, strings.Join(comp, "\n"))

	parts = append(parts, "=== اسناد تاریخی ===")

	docs := make([]string, len(s.Documents))
	for i, d := range s.Documents {
		docs[i] = "سند تاریخی: " + d.Title + "\n" + d.Content
	}
	parts = append(parts, strings.Join(docs, "\n"))

	return strings.Join(parts, "\n\n")
}

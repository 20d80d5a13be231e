package yamlfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

func writeContent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoad_BundledDataset(t *testing.T) {
	store, err := New("").Load(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, store.Sections)
	assert.NotEmpty(t, store.Documents)
	assert.NotEmpty(t, store.Actions)
	assert.NotEmpty(t, store.LegalChecks)
	assert.NotEmpty(t, store.Comprehensive)

	matches := 0
	for _, sec := range store.Sections {
		assert.True(t, sec.Category.IsValid(), "section %s", sec.ID)
		if strings.Contains(sec.Content, "مشروطیت") || strings.Contains(sec.Title, "مشروطیت") {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestLoad_File(t *testing.T) {
	path := writeContent(t, `
sections:
  - id: const_1
    title: اصل اول
    content: متن
    category: constitution
legal_checks:
  - id: l1
    action_title: اقدام
    violated_articles: [اصل ۲۷]
    legal_explanation: توضیح
`)
	src := New(path)

	store, err := src.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, path, src.Path())
	assert.Equal(t, 2, store.Size())
	assert.Equal(t, []string{"اصل ۲۷"}, store.LegalChecks[0].ViolatedArticles)
}

func TestLoad_EmptyFile(t *testing.T) {
	store, err := New(writeContent(t, "")).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, store.Size())
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "duplicate id in one collection",
			body: `
actions:
  - {id: a, title: t, description: d}
  - {id: a, title: t2, description: d2}
`,
		},
		{
			name: "missing required field",
			body: `
sections:
  - {id: s, title: t, category: constitution}
`,
		},
		{
			name: "unknown category",
			body: `
sections:
  - {id: s, title: t, content: c, category: preamble}
`,
		},
		{
			name: "score out of range",
			body: `
comprehensive:
  - {id: c, title: t, neutral_verdict: v, legality_score: 140}
`,
		},
		{
			name: "unknown field",
			body: `
documents:
  - {id: d, title: t, content: c, summary: x}
`,
		},
		{
			name: "malformed yaml",
			body: "sections: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(writeContent(t, tt.body)).Load(context.Background())
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLoad_SameIDAcrossCollections(t *testing.T) {
	path := writeContent(t, `
sections:
  - {id: shared, title: t, content: c, category: intro}
documents:
  - {id: shared, title: t, content: c}
`)

	store, err := New(path).Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, store.Size())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml")).Load(context.Background())

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("").Load(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

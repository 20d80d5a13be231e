package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t, nil, nil)

	_, err := execute(t, "", "search")
	assert.Error(t, err)

	_, err = execute(t, "", "search", "a", "b")
	assert.Error(t, err)
}

func TestSearchCmd_Flags(t *testing.T) {
	for _, name := range []string{"type", "limit", "offset", "json"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "n", searchCmd.Flags().Lookup("limit").Shorthand)
}

func TestSearchCmd_Table(t *testing.T) {
	setupTestServices(t, nil, nil)

	out, err := execute(t, "", "search", "مجلس")
	require.NoError(t, err)

	assert.Contains(t, out, "[1] اصل اول (قانون اساسی)")
	assert.Contains(t, out, "[3] فرمان مشروطیت (سند تاریخی)")
	assert.Contains(t, out, "mashruteh show law const_1")
	assert.Contains(t, out, "mashruteh show doc doc_1")
}

func TestSearchCmd_JSON(t *testing.T) {
	setupTestServices(t, nil, nil)

	out, err := execute(t, "", "search", "مجلس", "--json")
	require.NoError(t, err)

	var results []domain.SearchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "const_1", results[0].ID)
	assert.Equal(t, "doc_1", results[2].ID)
}

func TestSearchCmd_TypeAndPaging(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		count int
	}{
		{"type filter", []string{"--type", "doc"}, 1},
		{"limit", []string{"-n", "1"}, 1},
		{"offset", []string{"--offset", "2"}, 1},
		{"offset past end", []string{"--offset", "5"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t, nil, nil)

			args := append([]string{"search", "مجلس", "--json"}, tt.args...)
			out, err := execute(t, "", args...)
			require.NoError(t, err)

			var results []domain.SearchResult
			require.NoError(t, json.Unmarshal([]byte(out), &results))
			assert.Len(t, results, tt.count)
		})
	}
}

func TestSearchCmd_InvalidType(t *testing.T) {
	setupTestServices(t, nil, nil)

	_, err := execute(t, "", "search", "مجلس", "--type", "law,bogus")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t, nil, nil)

	out, err := execute(t, "", "search", "ناموجود")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	t.Cleanup(resetFlags)
	SetServices(nil)

	_, err := execute(t, "", "search", "مجلس")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search service not configured")
}

func TestRenderSnippet(t *testing.T) {
	setupTestServices(t, nil, nil)

	long := strings.Repeat("ب", snippetRunes+20)
	snippet := renderSnippet(long, "")
	assert.Equal(t, snippetRunes+1, len([]rune(snippet)))
	assert.True(t, strings.HasSuffix(snippet, "…"))

	assert.Equal(t, "a b c", renderSnippet("a\n  b\tc", ""))
}

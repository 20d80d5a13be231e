package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultType_ViewTableIsTotal(t *testing.T) {
	seen := make(map[ViewMode]ResultType)
	for _, rt := range AllResultTypes() {
		view := rt.View()
		require.NotEmpty(t, view, "type %s has no view", rt)
		prev, dup := seen[view]
		assert.False(t, dup, "types %s and %s share view %s", prev, rt, view)
		seen[view] = rt
	}
	assert.Len(t, viewTargets, len(AllResultTypes()))
}

func TestResultType_View(t *testing.T) {
	tests := []struct {
		rt   ResultType
		want ViewMode
	}{
		{ResultTypeLaw, ViewLaws},
		{ResultTypeDoc, ViewHistorical},
		{ResultTypeAction, ViewMossadegh},
		{ResultTypeAnalysis, ViewAnalysis},
		{ResultTypeComprehensive, ViewComprehensive},
		{ResultType("timeline"), ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.rt), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rt.View())
		})
	}
}

func TestResultType_IsValid(t *testing.T) {
	assert.True(t, ResultTypeLaw.IsValid())
	assert.True(t, ResultTypeComprehensive.IsValid())
	assert.False(t, ResultType("").IsValid())
	assert.False(t, ResultType("LAW").IsValid())
}

func TestParseResultTypes(t *testing.T) {
	types, err := ParseResultTypes(" law, analysis ")
	require.NoError(t, err)
	assert.Equal(t, []ResultType{ResultTypeLaw, ResultTypeAnalysis}, types)

	types, err = ParseResultTypes("  ")
	require.NoError(t, err)
	assert.Nil(t, types)

	_, err = ParseResultTypes("law,debate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestSearchResult_Target(t *testing.T) {
	r := SearchResult{ID: "amend_5", Type: ResultTypeLaw}

	assert.Equal(t, NavigationTarget{View: ViewLaws, ID: "amend_5"}, r.Target())
}

func TestLawCategory_Label(t *testing.T) {
	assert.Equal(t, LabelConstitution, LawCategoryConstitution.Label())
	assert.Equal(t, LabelSupplement, LawCategorySupplement.Label())
	assert.Equal(t, LabelIntro, LawCategoryIntro.Label())
	// Amendments fall through to the preamble label.
	assert.Equal(t, LabelIntro, LawCategoryAmendment.Label())
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

func TestCoerceReply_Text(t *testing.T) {
	tests := []struct {
		name string
		text any
		want string
	}{
		{"string", "پاسخ", "پاسخ"},
		{"bytes", []byte("پاسخ"), "پاسخ"},
		{"nil", nil, domain.EmptyAnswerText},
		{"empty", "", domain.EmptyAnswerText},
		{"whitespace", "  ", domain.EmptyAnswerText},
		{"object placeholder", "[object Object]", domain.EmptyAnswerText},
		{"undefined", "undefined", domain.EmptyAnswerText},
		{"object", map[string]any{"answer": "x"}, `{"answer":"x"}`},
		{"number", 42.0, "42"},
		{"list", []any{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := CoerceReply(domain.RawReply{Text: tt.text})
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestCoerceReply_Suggestions(t *testing.T) {
	tests := []struct {
		name        string
		suggestions any
		want        []string
	}{
		{"nil", nil, nil},
		{"string is not a list", "پرسش", nil},
		{"object is not a list", map[string]any{"q": "x"}, nil},
		{"strings", []string{" پرسش ۱ ", "", "پرسش ۲"}, []string{"پرسش ۱", "پرسش ۲"}},
		{"mixed", []any{"a", map[string]any{"question": "b"}, nil, 3.0, true, "null"}, []string{"a", "b", "3", "true"}},
		{"object values in key order", []any{map[string]any{"b": "دوم", "a": "اول"}}, []string{"اول دوم"}},
		{"nested list", []any{[]any{"x", nil, "y"}}, []string{"x y"}},
		{"only placeholders", []any{"", "[object Object]", nil}, nil},
		{"empty list", []any{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := CoerceReply(domain.RawReply{Text: "x", Suggestions: tt.suggestions})
			assert.Equal(t, tt.want, reply.Suggestions)
		})
	}
}

func TestDecodeSuggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"array", `["a", "b"]`, []any{"a", "b"}},
		{"fenced", "```json\n[\"a\"]\n```", []any{"a"}},
		{"wrapped", `{"questions": ["x", "y"]}`, []any{"x", "y"}},
		{"object without list", `{"q": "x"}`, map[string]any{"q": "x"}},
		{"string", `"x"`, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSuggestions(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSuggestions_Invalid(t *testing.T) {
	_, err := decodeSuggestions("not json")

	assert.Error(t, err)
}

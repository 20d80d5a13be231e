package services

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/mashruteh/internal/core/domain"
)

// placeholders are stringified values that carry no content and are never shown.
var placeholders = map[string]bool{
	"":                true,
	"[object Object]": true,
	"null":            true,
	"undefined":       true,
	"<nil>":           true,
}

// CoerceReply turns an assistant payload of any shape into a Reply.
// Text is always a non-empty string and every suggestion is a displayable string.
func CoerceReply(raw domain.RawReply) domain.Reply {
	text := coerceText(raw.Text)
	if placeholders[strings.TrimSpace(text)] {
		text = domain.EmptyAnswerText
	}
	return domain.Reply{
		Text:        text,
		Suggestions: coerceSuggestions(raw.Suggestions),
	}
}

// coerceText keeps strings and encodes anything else as JSON.
func coerceText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// coerceSuggestions accepts only list shapes; anything else yields no suggestions.
func coerceSuggestions(v any) []string {
	var items []any
	switch t := v.(type) {
	case []string:
		items = make([]any, len(t))
		for i, s := range t {
			items[i] = s
		}
	case []any:
		items = t
	default:
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(coerceScalar(item))
		if placeholders[s] {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// coerceScalar flattens one suggestion entry. Objects such as
// {"question": "..."} contribute their values joined by a space, in key order.
func coerceScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := strings.TrimSpace(coerceScalar(t[k])); !placeholders[s] {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := strings.TrimSpace(coerceScalar(e)); !placeholders[s] {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(t)
	}
}

// decodeSuggestions parses a provider's JSON answer into an untyped value.
// Some models wrap the list in an object such as {"questions": [...]}; the
// first list-valued field is used in that case.
func decodeSuggestions(raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if list, ok := obj[k].([]any); ok {
				return list, nil
			}
		}
	}
	return v, nil
}

package normalizer

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Accessors over decoded JSON (map[string]any / []any). Each returns the
// zero value instead of failing when the shape is not what was asked for.

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func field(v any, key string) any {
	return asMap(v)[key]
}

func index(v any, i int) any {
	s := asSlice(v)
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// asString renders scalars; campaign ids in particular arrive as numbers
// from some platforms.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

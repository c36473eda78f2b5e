package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// InputTaskID reads task_id from an input map, defaulting to "unknown".
func InputTaskID(input map[string]any) string {
	if id := String(input, "task_id", ""); id != "" {
		return id
	}
	return "unknown"
}

// String reads a string-ish value.
func String(input map[string]any, key, def string) string {
	raw, ok := input[key]
	if !ok || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int reads a numeric value that may have arrived as a JSON number or string.
func Int(input map[string]any, key string, def int) int {
	switch v := input[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// Map reads a nested object, returning an empty map when absent.
func Map(input map[string]any, key string) map[string]any {
	if v, ok := input[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

// Value reads an arbitrary value, substituting def when missing.
func Value(input map[string]any, key string, def any) any {
	if v, ok := input[key]; ok && v != nil {
		return v
	}
	return def
}

// Describe renders a value for interpolation into a prompt.
func Describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "{}"
	case string:
		return t
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func cloneInput(in map[string]any) map[string]any {
	out := make(map[string]any, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}

const priorWorkLimit = 1500

// PriorWork renders the similar items found by the context loader for inclusion
// in a prompt. It returns "" when there are none.
func PriorWork(input map[string]any) string {
	bundle, ok := input["context"].(map[string]any)
	if !ok {
		return ""
	}
	items, ok := bundle["similar_items"].([]any)
	if !ok || len(items) == 0 {
		return ""
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	text := string(b)
	if len(text) > priorWorkLimit {
		cut := priorWorkLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return fmt.Sprintf("\n\nRelated prior work (%d items):\n%s", len(items), text)
}

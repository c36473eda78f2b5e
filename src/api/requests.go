package api

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// ScriptGenerationRequest is the body of POST /content/script.
type ScriptGenerationRequest struct {
	TaskID         string `json:"task_id"`
	Topic          string `json:"topic" binding:"required"`
	Niche          string `json:"niche" binding:"required"`
	TargetDuration int    `json:"target_duration" binding:"required,min=1"`
	Style          string `json:"style"`
	Tone           string `json:"tone"`
	TargetAudience string `json:"target_audience"`
}

func (r ScriptGenerationRequest) input() map[string]any {
	return map[string]any{
		"topic":           r.Topic,
		"niche":           r.Niche,
		"target_duration": r.TargetDuration,
		"style":           orDefault(r.Style, "educational"),
		"tone":            orDefault(r.Tone, "professional"),
		"target_audience": orDefault(r.TargetAudience, "general"),
	}
}

// ResearchRequest is the body of POST /research/comprehensive.
type ResearchRequest struct {
	TaskID  string   `json:"task_id"`
	Topic   string   `json:"topic" binding:"required"`
	Niche   string   `json:"niche" binding:"required"`
	Depth   string   `json:"depth"`
	Sources []string `json:"sources"`
}

func (r ResearchRequest) input() map[string]any {
	sources := r.Sources
	if len(sources) == 0 {
		sources = []string{"youtube", "google_trends", "reddit"}
	}
	list := make([]any, 0, len(sources))
	for _, s := range sources {
		list = append(list, s)
	}
	return map[string]any{
		"topic":   r.Topic,
		"niche":   r.Niche,
		"depth":   orDefault(r.Depth, "comprehensive"),
		"sources": list,
	}
}

// TaskRequest is the body of POST /agents/:agent/tasks.
type TaskRequest struct {
	TaskID    string         `json:"task_id"`
	TaskType  string         `json:"task_type" binding:"required"`
	InputData map[string]any `json:"input_data"`
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// sanitizer strips markup from free-text fields before they reach prompts.
type sanitizer struct {
	policy *bluemonday.Policy
}

func newSanitizer() sanitizer {
	return sanitizer{policy: bluemonday.StrictPolicy()}
}

func (s sanitizer) text(v string) string {
	if !utf8.ValidString(v) {
		v = strings.ToValidUTF8(v, "")
	}
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

// value walks decoded JSON and cleans every string it finds.
func (s sanitizer) value(v any) any {
	switch t := v.(type) {
	case string:
		return s.text(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = s.value(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = s.value(item)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = s.text(item)
		}
		return out
	}
	return v
}

func (s sanitizer) input(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	return s.value(in).(map[string]any)
}

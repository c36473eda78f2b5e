package core

import (
	"strings"
)

const (
	ClaudeOpus   = "claude-3-opus-20240229"
	ClaudeSonnet = "claude-3-sonnet-20240229"

	DefaultEmbeddingModel = "text-embedding-ada-002"
)

var providerDefaultModels = map[string]string{
	"openai":    "gpt-4",
	"anthropic": ClaudeSonnet,
	"claude":    ClaudeSonnet,
}

// DefaultModelForProvider returns the baked-in default model for a provider key.
func DefaultModelForProvider(provider string) string {
	key := strings.ToLower(strings.TrimSpace(provider))
	if val, ok := providerDefaultModels[key]; ok {
		return val
	}
	return ""
}

// ResolveModelName picks the configured model if provided, otherwise the provider's default.
func ResolveModelName(provider, configuredModel string) string {
	model := strings.TrimSpace(configuredModel)
	if model != "" {
		return model
	}
	if def := DefaultModelForProvider(provider); def != "" {
		return def
	}
	return "unknown"
}

// ClaudeModelFor maps a requested model onto an Anthropic model. Claude names pass
// through; GPT-4 class names map to Opus and everything else to Sonnet.
func ClaudeModelFor(model string) string {
	lower := strings.ToLower(strings.TrimSpace(model))
	switch {
	case strings.HasPrefix(lower, "claude"):
		return model
	case strings.Contains(lower, "gpt-4"):
		return ClaudeOpus
	default:
		return ClaudeSonnet
	}
}

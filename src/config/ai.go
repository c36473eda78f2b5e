package config

import "strings"

// AIConfig holds language-model settings.
type AIConfig struct {
	Provider         string
	OpenAIKey        string
	ClaudeKey        string
	Model            string
	MaxTokens        int
	Temperature      float64
	EmbeddingModel   string
	OpenAIBaseURL    string
	AnthropicBaseURL string
}

// LoadAIConfig loads AI configuration.
func LoadAIConfig() AIConfig {
	claudeKey := GetSetting("anthropic_api_key", "ANTHROPIC_API_KEY", "")
	if claudeKey == "" {
		claudeKey = GetSetting("claude_api_key", "CLAUDE_API_KEY", "")
	}

	return AIConfig{
		Provider:         strings.ToLower(GetSetting("ai_provider", "AI_PROVIDER", "openai")),
		OpenAIKey:        GetSetting("openai_api_key", "OPENAI_API_KEY", ""),
		ClaudeKey:        claudeKey,
		Model:            GetSetting("default_model", "DEFAULT_MODEL", "gpt-4"),
		MaxTokens:        getIntSetting("max_tokens", "MAX_TOKENS", 2000),
		Temperature:      getFloatSetting("temperature", "TEMPERATURE", 0.7),
		EmbeddingModel:   GetSetting("embedding_model", "EMBEDDING_MODEL", "text-embedding-ada-002"),
		OpenAIBaseURL:    GetSetting("openai_base_url", "OPENAI_BASE_URL", ""),
		AnthropicBaseURL: GetSetting("anthropic_base_url", "ANTHROPIC_BASE_URL", ""),
	}
}

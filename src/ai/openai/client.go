package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/EfeDurmaz16/assos/src/ai/core"
	"github.com/EfeDurmaz16/assos/src/webclient"
)

const (
	defaultBaseURL   = "https://api.openai.com/v1"
	defaultMaxTokens = 2000
)

func init() {
	core.RegisterProvider("openai", newClient, "gpt", "gpt4")
}

// Client talks to the OpenAI chat completions and embeddings endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	defaults   core.Options
	attempts   int
}

var (
	_ core.Client   = (*Client)(nil)
	_ core.Embedder = (*Client)(nil)
)

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	return NewClient(cfg)
}

// NewClient builds a Client from factory settings.
func NewClient(cfg core.FactoryConfig) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}
	base := strings.TrimRight(valueOrDefault(cfg.BaseURL, defaultBaseURL), "/")

	return &Client{
		apiKey:     cfg.OpenAIKey,
		baseURL:    base,
		httpClient: webclient.NewDefault(120 * time.Second),
		attempts:   3,
		defaults: core.Options{
			Model:               core.ResolveModelName("openai", cfg.Model),
			Temperature:         orFloat(cfg.Temperature, 0.7),
			MaxCompletionTokens: orInt(cfg.MaxCompletionTokens, defaultMaxTokens),
			SystemPrompt:        cfg.SystemPrompt,
		},
	}, nil
}

func (c *Client) Complete(ctx context.Context, prompt string, opts core.Options) (string, error) {
	merged := c.merge(opts)
	messages := make([]map[string]string, 0, 2)
	if merged.SystemPrompt != "" {
		messages = append(messages, map[string]string{"role": "system", "content": merged.SystemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body, err := c.post(ctx, "/chat/completions", map[string]any{
		"model":       merged.Model,
		"messages":    messages,
		"max_tokens":  merged.MaxCompletionTokens,
		"temperature": merged.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}
	return result.Choices[0].Message.Content, nil
}

func (c *Client) Embed(ctx context.Context, text string, model string) ([]float32, error) {
	body, err := c.post(ctx, "/embeddings", map[string]any{
		"model": valueOrDefault(model, core.DefaultEmbeddingModel),
		"input": text,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings error: %w", err)
	}
	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai: empty embedding")
	}
	return result.Data[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]any) ([]byte, error) {
	return webclient.DoJSON(ctx, c.httpClient, webclient.JSONRequest{
		Method:       http.MethodPost,
		URL:          c.baseURL + path,
		Headers:      map[string]string{"Authorization": "Bearer " + c.apiKey},
		Body:         payload,
		Attempts:     c.attempts,
		InitialDelay: 2 * time.Second,
	})
}

func (c *Client) merge(opts core.Options) core.Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxCompletionTokens != 0 {
		out.MaxCompletionTokens = opts.MaxCompletionTokens
	}
	if opts.SystemPrompt != "" {
		out.SystemPrompt = opts.SystemPrompt
	}
	return out
}

func valueOrDefault(val, def string) string {
	if strings.TrimSpace(val) != "" {
		return val
	}
	return def
}

func orInt(v, d int) int {
	if v > 0 {
		return v
	}
	return d
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}

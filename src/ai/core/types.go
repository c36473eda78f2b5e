package core

import "context"

// Options controls model behavior; zero fields fall back to client defaults.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Client is a provider-agnostic completion interface.
type Client interface {
	// Complete sends a single user prompt (plus optional system prompt) and returns the reply text.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// Embedder produces dense vectors for text.
type Embedder interface {
	Embed(ctx context.Context, text string, model string) ([]float32, error)
}

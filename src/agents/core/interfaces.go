package core

import (
	"context"

	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

// Agent is a specialist that turns a typed task into a draft Response.
type Agent interface {
	Key() string
	Capabilities() Capabilities
	// Execute dispatches on taskType. Unknown types produce a failed draft, not an error.
	Execute(ctx context.Context, taskType TaskType, input map[string]any) (*Response, error)
}

// Embedder turns text into a vector. Implementations must not fail.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// LLM is the language-model surface agents use.
type LLM interface {
	Embedder
	Complete(ctx context.Context, req llm.Request) string
	AnalyzeSentiment(ctx context.Context, text string) map[string]any
}

// HistorySink records finished outcomes for later inspection.
type HistorySink interface {
	Record(ctx context.Context, agentID, agentName string, task Task, resp *Response) error
}

// Observer is notified after every processed task, on both outcome paths.
type Observer interface {
	ObserveTask(agentKey string, taskType TaskType, resp *Response, metrics PerformanceMetrics)
}

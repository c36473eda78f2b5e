package core

import (
	"context"
	"sync"
	"time"

	"github.com/EfeDurmaz16/assos/src/ai/llm"
	"github.com/EfeDurmaz16/assos/src/cache"
	"github.com/EfeDurmaz16/assos/src/vector"
)

type stubAgent struct {
	Identity
	handlers Handlers
	execErr  error
	panicMsg string
	seen     []map[string]any
	mu       sync.Mutex
}

func newStubAgent() *stubAgent {
	a := &stubAgent{Identity: NewIdentity("stub", "Stub Agent", "stub_analysis")}
	a.handlers = Handlers{
		"script_generation": func(_ context.Context, input map[string]any) (*Response, error) {
			return a.Completed(input, map[string]any{"script": "hello"}, 0.85), nil
		},
		"no_confidence": func(_ context.Context, input map[string]any) (*Response, error) {
			resp := a.Completed(input, map[string]any{"ok": true}, 0)
			resp.ConfidenceScore = nil
			return resp, nil
		},
		"slow_research": func(ctx context.Context, _ map[string]any) (*Response, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
		"weird_status": func(_ context.Context, input map[string]any) (*Response, error) {
			return &Response{Status: "pending", Result: map[string]any{"x": 1}}, nil
		},
	}
	return a
}

func (a *stubAgent) Capabilities() Capabilities {
	return Capabilities{AgentID: a.ID(), Name: a.Name(), Type: a.Type(), SupportedTasks: []TaskType{"script_generation", "no_confidence", "slow_research", "weird_status"}}
}

func (a *stubAgent) Execute(ctx context.Context, taskType TaskType, input map[string]any) (*Response, error) {
	a.mu.Lock()
	a.seen = append(a.seen, input)
	a.mu.Unlock()
	if a.panicMsg != "" {
		panic(a.panicMsg)
	}
	if a.execErr != nil {
		return nil, a.execErr
	}
	return a.handlers.Dispatch(ctx, a.ID(), taskType, input)
}

type stubLLM struct{}

func (stubLLM) Embed(_ context.Context, text string) []float32 {
	v := make([]float32, vector.Dimension)
	for i := range v {
		v[i] = 0.01
	}
	v[len(text)%vector.Dimension] = 1
	return v
}

func (stubLLM) Complete(context.Context, llm.Request) string { return "stub completion" }

func (stubLLM) AnalyzeSentiment(context.Context, string) map[string]any {
	return map[string]any{"sentiment": "neutral"}
}

// recordingIndex counts writes and can be told to fail.
type recordingIndex struct {
	mu        sync.Mutex
	upserts   map[string][]vector.Point
	searches  int
	searchErr error
	upsertErr error
	hits      []vector.Hit
}

func newRecordingIndex() *recordingIndex {
	return &recordingIndex{upserts: map[string][]vector.Point{}}
}

func (r *recordingIndex) EnsureCollection(context.Context, string, int) error { return nil }

func (r *recordingIndex) Search(context.Context, string, []float32, int) ([]vector.Hit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++
	return r.hits, r.searchErr
}

func (r *recordingIndex) Upsert(_ context.Context, collection string, points []vector.Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts[collection] = append(r.upserts[collection], points...)
	return nil
}

func (r *recordingIndex) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, pts := range r.upserts {
		n += len(pts)
	}
	return n
}

// failingCache rejects every call.
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrUnavailable
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrUnavailable
}

func (failingCache) Ping(context.Context) error { return cache.ErrUnavailable }

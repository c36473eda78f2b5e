package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfeDurmaz16/assos/src/cache"
	"github.com/EfeDurmaz16/assos/src/vector"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []*Response
	types []TaskType
}

func (o *recordingObserver) ObserveTask(_ string, taskType TaskType, resp *Response, _ PerformanceMetrics) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, resp)
	o.types = append(o.types, taskType)
}

type fixture struct {
	agent    *stubAgent
	cache    *cache.MemoryStore
	index    *recordingIndex
	observer *recordingObserver
	ctrl     *Controller
}

func newFixture(t *testing.T, opts ...ControllerOption) *fixture {
	t.Helper()
	f := &fixture{
		agent:    newStubAgent(),
		cache:    cache.NewMemory(time.Minute),
		index:    newRecordingIndex(),
		observer: &recordingObserver{},
	}
	deps := RuntimeDeps{Cache: f.cache, Index: f.index, LLM: stubLLM{}, Observer: f.observer}
	f.ctrl = deps.NewController(f.agent)
	for _, opt := range opts {
		opt(f.ctrl)
	}
	return f
}

func TestProcessTaskCompleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := f.ctrl.ProcessTask(ctx, Task{ID: "t1", Type: "script_generation", Input: map[string]any{"topic": "espresso"}})

	require.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, f.agent.ID(), resp.AgentID)
	assert.Equal(t, "t1", resp.TaskID)
	require.NotNil(t, resp.ExecutionTime)
	assert.GreaterOrEqual(t, *resp.ExecutionTime, 0.0)
	require.NotNil(t, resp.ConfidenceScore)
	assert.Equal(t, 0.85, *resp.ConfidenceScore)
	assert.Empty(t, resp.Error)

	raw, ok, err := f.cache.Get(ctx, "agent_result:"+f.agent.ID()+":t1")
	require.NoError(t, err)
	require.True(t, ok)
	var cached Response
	require.NoError(t, json.Unmarshal(raw, &cached))
	assert.Equal(t, "hello", cached.Result["script"])

	points := f.index.upserts[vector.CollectionVideoScripts]
	require.Len(t, points, 1)
	assert.Equal(t, "t1", points[0].Payload["task_id"])
	assert.Equal(t, f.agent.ID(), points[0].Payload["agent_id"])
	assert.Equal(t, "Stub Agent", points[0].Payload["agent_name"])
	assert.Equal(t, "script_generation", points[0].Payload["task_type"])
	assert.Equal(t, map[string]any{"topic": "espresso"}, points[0].Payload["input"])
	assert.NotEmpty(t, points[0].Payload["timestamp"])

	m := f.ctrl.Metrics()
	assert.Equal(t, 1, m.TasksCompleted)
	assert.Equal(t, []float64{0.85}, m.ConfidenceScores)
	assert.Len(t, f.observer.calls, 1)
}

func TestProcessTaskUnknownType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp := f.ctrl.ProcessTask(ctx, Task{ID: "t2", Type: "bogus_task", Input: map[string]any{}})

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Error, "bogus_task")
	assert.Nil(t, resp.Result)
	require.NotNil(t, resp.ExecutionTime)

	// The clean path still counts it, with the default confidence.
	m := f.ctrl.Metrics()
	assert.Equal(t, 1, m.TasksCompleted)
	assert.Equal(t, []float64{DefaultConfidence}, m.ConfidenceScores)

	_, ok, err := f.cache.Get(ctx, cache.ResultKey(f.agent.ID(), "t2"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, f.index.total())
}

func TestProcessTaskExecutionErrorSkipsMetricsAndStorage(t *testing.T) {
	f := newFixture(t)
	f.agent.execErr = errors.New("model exploded")

	resp := f.ctrl.ProcessTask(context.Background(), Task{ID: "t3", Type: "script_generation"})

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Equal(t, "model exploded", resp.Error)
	assert.Nil(t, resp.Result)
	assert.Nil(t, resp.ConfidenceScore)
	require.NotNil(t, resp.ExecutionTime)
	assert.Equal(t, f.agent.ID(), resp.AgentID)
	assert.Equal(t, "t3", resp.TaskID)

	assert.Zero(t, f.ctrl.Metrics().TasksCompleted)
	assert.Zero(t, f.cache.Len())
	assert.Zero(t, f.index.total())
	assert.Len(t, f.observer.calls, 1)
}

func TestProcessTaskRecoversPanics(t *testing.T) {
	f := newFixture(t)
	f.agent.panicMsg = "nil map"

	resp := f.ctrl.ProcessTask(context.Background(), Task{ID: "t4", Type: "script_generation"})

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Error, "nil map")
	assert.Zero(t, f.ctrl.Metrics().TasksCompleted)
}

func TestProcessTaskDefaultsMissingConfidence(t *testing.T) {
	f := newFixture(t)

	resp := f.ctrl.ProcessTask(context.Background(), Task{ID: "t5", Type: "no_confidence"})

	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Nil(t, resp.ConfidenceScore)
	assert.Equal(t, []float64{DefaultConfidence}, f.ctrl.Metrics().ConfidenceScores)
}

func TestProcessTaskNormalizesUnexpectedStatus(t *testing.T) {
	f := newFixture(t)

	resp := f.ctrl.ProcessTask(context.Background(), Task{ID: "t6", Type: "weird_status"})

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Nil(t, resp.Result)
	assert.NotEmpty(t, resp.Error)
}

func TestProcessTaskPersistenceFailureIsLogged(t *testing.T) {
	agent := newStubAgent()
	index := newRecordingIndex()
	index.upsertErr = errors.New("index down")
	index.searchErr = errors.New("index down")
	deps := RuntimeDeps{Cache: failingCache{}, Index: index, LLM: stubLLM{}}
	ctrl := deps.NewController(agent)

	resp := ctrl.ProcessTask(context.Background(), Task{ID: "t7", Type: "script_generation"})

	assert.Equal(t, StatusCompleted, resp.Status)
	assert.Equal(t, "hello", resp.Result["script"])
	assert.Equal(t, 1, ctrl.Metrics().TasksCompleted)
}

func TestProcessTaskAssignsMissingID(t *testing.T) {
	f := newFixture(t)

	resp := f.ctrl.ProcessTask(context.Background(), Task{Type: "script_generation"})

	assert.NotEmpty(t, resp.TaskID)
	assert.NotEqual(t, "unknown", resp.TaskID)
}

func TestProcessTaskMergesContextWithoutMutatingInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cache.Set(ctx, cache.ContextKey(f.agent.ID(), "t8"), []byte(`{"previous":"draft"}`), time.Minute))

	input := map[string]any{"topic": "espresso"}
	f.ctrl.ProcessTask(ctx, Task{ID: "t8", Type: "script_generation", Input: input})

	_, mutated := input["context"]
	assert.False(t, mutated)
	require.Len(t, f.agent.seen, 1)
	bundle, ok := f.agent.seen[0]["context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"previous": "draft"}, bundle["cache_hit"])
}

func TestProcessTaskTimeout(t *testing.T) {
	f := newFixture(t, WithTimeout(20*time.Millisecond))

	resp := f.ctrl.ProcessTask(context.Background(), Task{ID: "t9", Type: "slow_research"})

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Error, "deadline exceeded")
	assert.Zero(t, f.ctrl.Metrics().TasksCompleted)
}

func TestProcessTaskUsesClock(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 1500 * time.Millisecond)
	}
	f := newFixture(t, WithClock(clock))

	resp := f.ctrl.ProcessTask(context.Background(), Task{ID: "t10", Type: "script_generation"})

	require.NotNil(t, resp.ExecutionTime)
	assert.InDelta(t, 1.5, *resp.ExecutionTime, 1e-9)
	assert.InDelta(t, 1.5, f.ctrl.Metrics().AvgExecutionTime, 1e-9)
}

func TestAgentMetricsCarriesIdentity(t *testing.T) {
	f := newFixture(t)
	m := f.ctrl.AgentMetrics()
	assert.Equal(t, f.agent.ID(), m.AgentID)
	assert.Equal(t, "Stub Agent", m.Name)
	assert.Equal(t, "stub_analysis", m.Type)
}

func TestObserverSeesUnsupportedTypesAsUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ctrl.ProcessTask(ctx, Task{ID: "a", Type: "script_generation"})
	for i := 0; i < 50; i++ {
		f.ctrl.ProcessTask(ctx, Task{ID: fmt.Sprintf("b%d", i), Type: TaskType(fmt.Sprintf("bogus_%d", i))})
	}

	require.Len(t, f.observer.types, 51)
	assert.Equal(t, TaskType("script_generation"), f.observer.types[0])
	for _, got := range f.observer.types[1:] {
		assert.Equal(t, UnknownTaskType, got)
	}
}

func TestConcurrentTasksSerializeTrackerUpdates(t *testing.T) {
	const n = 200
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f.ctrl.ProcessTask(ctx, Task{ID: fmt.Sprintf("c%d", i), Type: "script_generation"})
		}(i)
	}
	wg.Wait()

	m := f.ctrl.Metrics()
	assert.Equal(t, n, m.TasksCompleted)
	assert.Len(t, m.ConfidenceScores, MetricsWindow)
	assert.InDelta(t, 1.0, m.SuccessRate, 1e-12)
	assert.Len(t, f.observer.calls, n)
}

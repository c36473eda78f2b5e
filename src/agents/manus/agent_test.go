package manus

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

type recordingLLM struct {
	mu       sync.Mutex
	requests []llm.Request
}

func (r *recordingLLM) Complete(_ context.Context, req llm.Request) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return "reply"
}

func (r *recordingLLM) Embed(context.Context, string) []float32 { return []float32{1} }

func (r *recordingLLM) AnalyzeSentiment(context.Context, string) map[string]any { return nil }

func TestOrchestrateVideoCreation(t *testing.T) {
	rec := &recordingLLM{}
	agent := NewAgent(agentcore.RuntimeDeps{LLM: rec})

	resp, err := agent.Execute(context.Background(), TaskOrchestrateVideo, map[string]any{
		"task_id":        "video_42",
		"channel_config": map[string]any{"niche": "coffee"},
	})
	require.NoError(t, err)

	assert.Equal(t, agentcore.StatusCompleted, resp.Status)
	assert.Equal(t, "video_42", resp.TaskID)
	assert.Equal(t, 0.85, *resp.ConfidenceScore)
	assert.Equal(t, "reply", resp.Result["research_insights"])
	assert.Equal(t, "reply", resp.Result["content_strategy"])
	assert.Len(t, resp.Result["next_actions"], 3)

	plan, ok := resp.Result["orchestration_plan"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, plan, "phases")

	require.Len(t, rec.requests, 2)
	assert.Contains(t, rec.requests[0].Prompt, "coffee")
	assert.Contains(t, rec.requests[0].SystemPrompt, "Manus")
	assert.Contains(t, rec.requests[1].Prompt, "Based on this research: reply")
}

func TestManusConfidences(t *testing.T) {
	agent := NewAgent(agentcore.RuntimeDeps{LLM: &recordingLLM{}})
	want := map[agentcore.TaskType]float64{
		TaskOrchestrateVideo:        0.85,
		TaskStrategicPlanning:       0.9,
		TaskPerformanceOptimization: 0.88,
		TaskContentIdeation:         0.87,
	}
	for taskType, conf := range want {
		resp, err := agent.Execute(context.Background(), taskType, map[string]any{})
		require.NoError(t, err, taskType)
		assert.Equal(t, agentcore.StatusCompleted, resp.Status, taskType)
		assert.Equal(t, conf, *resp.ConfidenceScore, taskType)
	}
}

func TestStrategicPlanningTimeline(t *testing.T) {
	agent := NewAgent(agentcore.RuntimeDeps{LLM: &recordingLLM{}})

	resp, err := agent.Execute(context.Background(), TaskStrategicPlanning, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "90_days", resp.Result["implementation_timeline"])
	assert.Contains(t, resp.Result, "success_metrics")
}

func TestManusUnknownTask(t *testing.T) {
	agent := NewAgent(agentcore.RuntimeDeps{LLM: &recordingLLM{}})

	resp, err := agent.Execute(context.Background(), "render_video", map[string]any{"task_id": "x"})
	require.NoError(t, err)
	assert.Equal(t, agentcore.StatusFailed, resp.Status)
	assert.Equal(t, "Unknown task type: render_video", resp.Error)
}

func TestManusCapabilities(t *testing.T) {
	caps := NewAgent(agentcore.RuntimeDeps{}).Capabilities()
	assert.Equal(t, Key, "manus")
	assert.Len(t, caps.SupportedTasks, 4)
	assert.NotEmpty(t, caps.DecisionFrameworks)
	assert.NotEmpty(t, caps.Capabilities)
}

package metrics

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/EfeDurmaz16/assos/src/agents/contentstrategist"
	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

func TestObserveTask(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := MustNewMetrics(reg)

	resp := &agentcore.Response{Status: agentcore.StatusCompleted, ExecutionTime: agentcore.Float(1.5)}
	snap := agentcore.PerformanceMetrics{TasksCompleted: 3, SuccessRate: 0.66, AvgExecutionTime: 1.2}
	m.ObserveTask("manus", "strategic_planning", resp, snap)
	m.ObserveTask("manus", "strategic_planning", &agentcore.Response{Status: agentcore.StatusFailed}, snap)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks.WithLabelValues("manus", "strategic_planning", "completed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.tasks.WithLabelValues("manus", "strategic_planning", "failed")))
	assert.Equal(t, 0.66, testutil.ToFloat64(m.successRate.WithLabelValues("manus")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.tasksCompleted.WithLabelValues("manus")))
	assert.Equal(t, 1.2, testutil.ToFloat64(m.avgExecution.WithLabelValues("manus")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMustNewMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewMetrics(reg)
	second := MustNewMetrics(reg)

	second.ObserveTask("research_agent", "competitor_analysis", &agentcore.Response{Status: agentcore.StatusCompleted}, agentcore.PerformanceMetrics{})
	assert.Equal(t, 1.0, testutil.ToFloat64(first.tasks.WithLabelValues("research_agent", "competitor_analysis", "completed")))
}

func TestObserveTaskNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveTask("x", "y", &agentcore.Response{}, agentcore.PerformanceMetrics{}) })
	assert.NotPanics(t, func() { MustNewMetrics(prometheus.NewRegistry()).ObserveTask("x", "y", nil, agentcore.PerformanceMetrics{}) })
}

func TestArbitraryTaskTypesShareOneSeries(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())
	deps := agentcore.RuntimeDeps{LLM: llm.NewWithClients(llm.Config{}, nil, nil, nil), Observer: m}
	ctrl := deps.NewController(contentstrategist.NewAgent(deps))

	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		ctrl.ProcessTask(ctx, agentcore.Task{ID: fmt.Sprintf("t%d", i), Type: agentcore.TaskType(fmt.Sprintf("bogus_%d", i))})
	}
	ctrl.ProcessTask(ctx, agentcore.Task{ID: "ok", Type: contentstrategist.TaskHookGeneration})

	assert.Equal(t, 2, testutil.CollectAndCount(m.tasks))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
	assert.Equal(t, 1000.0, testutil.ToFloat64(m.tasks.WithLabelValues(contentstrategist.Key, "unknown", "failed")))
}

func TestSuccessRateExposition(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())
	m.ObserveTask("manus", "strategic_planning", &agentcore.Response{Status: agentcore.StatusCompleted}, agentcore.PerformanceMetrics{SuccessRate: 0.5})

	want := `
# HELP assos_agents_success_rate Share of recent confidence scores strictly above the success threshold.
# TYPE assos_agents_success_rate gauge
assos_agents_success_rate{agent="manus"} 0.5
`
	assert.NoError(t, testutil.CollectAndCompare(m.successRate, strings.NewReader(want)))
}

package performanceanalyst

import (
	"context"
	"fmt"
	"sort"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
)

const Key = "performance_analyst"

const (
	TaskPerformanceAnalysis agentcore.TaskType = "performance_analysis"
	TaskABTestAnalysis      agentcore.TaskType = "ab_test_analysis"
	TaskAudienceSentiment   agentcore.TaskType = "audience_sentiment"
)

// Agent reads channel analytics, A/B results and audience sentiment.
type Agent struct {
	agentcore.Identity
	llm      agentcore.LLM
	handlers agentcore.Handlers
}

func NewAgent(deps agentcore.RuntimeDeps) *Agent {
	a := &Agent{
		Identity: agentcore.NewIdentity(Key, "Performance Analyst", "performance_analysis"),
		llm:      deps.LLM,
	}
	a.handlers = agentcore.Handlers{
		TaskPerformanceAnalysis: a.analyzePerformance,
		TaskABTestAnalysis:      a.abTestAnalysis,
		TaskAudienceSentiment:   a.audienceSentiment,
	}
	return a
}

func (a *Agent) Capabilities() agentcore.Capabilities {
	return agentcore.Capabilities{
		AgentID:        a.ID(),
		Name:           a.Name(),
		Type:           a.Type(),
		SupportedTasks: []agentcore.TaskType{TaskPerformanceAnalysis, TaskABTestAnalysis, TaskAudienceSentiment},
		Specialties:    []string{"performance optimization", "A/B testing", "analytics insights"},
	}
}

func (a *Agent) Execute(ctx context.Context, taskType agentcore.TaskType, input map[string]any) (*agentcore.Response, error) {
	return a.handlers.Dispatch(ctx, a.ID(), taskType, input)
}

func (a *Agent) analyzePerformance(_ context.Context, input map[string]any) (*agentcore.Response, error) {
	metrics := agentcore.Map(input, "metrics")
	recommendations := []any{}
	if ctr, ok := number(metrics["ctr"]); ok && ctr < 0.05 {
		recommendations = append(recommendations, "Test new thumbnails and titles to lift click-through rate")
	}
	if retention, ok := number(metrics["retention"]); ok && retention < 0.5 {
		recommendations = append(recommendations, "Tighten the first 30 seconds to reduce early drop-off")
	}
	if engagement, ok := number(metrics["engagement_rate"]); ok && engagement < 0.03 {
		recommendations = append(recommendations, "Add explicit prompts for comments and likes mid-video")
	}

	return a.Completed(input, map[string]any{
		"analysis":        "Performance analysis completed",
		"recommendations": recommendations,
	}, 0.86), nil
}

// abTestAnalysis picks the variant with the best conversion rate when variant data
// is supplied.
func (a *Agent) abTestAnalysis(_ context.Context, input map[string]any) (*agentcore.Response, error) {
	variants := agentcore.Map(input, "variants")
	if len(variants) == 0 {
		return a.Completed(input, map[string]any{"winner": "variant_a", "confidence": 0.95}, 0.91), nil
	}

	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)

	winner, best := "", -1.0
	rates := map[string]any{}
	for _, name := range names {
		stats, _ := variants[name].(map[string]any)
		views, _ := number(stats["views"])
		conversions, _ := number(stats["clicks"])
		rate := 0.0
		if views > 0 {
			rate = conversions / views
		}
		rates[name] = rate
		if rate > best {
			winner, best = name, rate
		}
	}

	return a.Completed(input, map[string]any{
		"winner":           winner,
		"confidence":       0.95,
		"conversion_rates": rates,
	}, 0.91), nil
}

func (a *Agent) audienceSentiment(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	text := agentcore.String(input, "text", "")
	if text == "" {
		if comments := agentcore.Value(input, "comments", nil); comments != nil {
			text = agentcore.Describe(comments)
		}
	}
	if text == "" {
		return a.Failed(input, "audience_sentiment requires text or comments"), nil
	}
	sentiment := a.llm.AnalyzeSentiment(ctx, text)
	return a.Completed(input, map[string]any{
		"sentiment": sentiment,
		"summary":   fmt.Sprintf("overall %v", sentiment["sentiment"]),
	}, 0.85), nil
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

package trendpredictor

import (
	"context"
	"fmt"
	"math"
	"strings"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

const Key = "trend_predictor"

const (
	TaskTrendAnalysis   agentcore.TaskType = "trend_analysis"
	TaskViralPrediction agentcore.TaskType = "viral_prediction"
)

const baseViralScore = 0.75

// Agent forecasts trends and scores viral potential.
type Agent struct {
	agentcore.Identity
	llm      agentcore.LLM
	handlers agentcore.Handlers
}

func NewAgent(deps agentcore.RuntimeDeps) *Agent {
	a := &Agent{
		Identity: agentcore.NewIdentity(Key, "Trend Predictor", "trend_analysis"),
		llm:      deps.LLM,
	}
	a.handlers = agentcore.Handlers{
		TaskTrendAnalysis:   a.analyzeTrends,
		TaskViralPrediction: a.predictViral,
	}
	return a
}

func (a *Agent) Capabilities() agentcore.Capabilities {
	return agentcore.Capabilities{
		AgentID:        a.ID(),
		Name:           a.Name(),
		Type:           a.Type(),
		SupportedTasks: []agentcore.TaskType{TaskTrendAnalysis, TaskViralPrediction},
		Specialties:    []string{"trend forecasting", "viral content prediction", "market analysis"},
	}
}

func (a *Agent) Execute(ctx context.Context, taskType agentcore.TaskType, input map[string]any) (*agentcore.Response, error) {
	return a.handlers.Dispatch(ctx, a.ID(), taskType, input)
}

func (a *Agent) analyzeTrends(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	niche := agentcore.String(input, "niche", "general")
	prompt := fmt.Sprintf("Analyze current trends in the %s niche for YouTube content.", niche)
	if keywords := agentcore.Value(input, "keywords", nil); keywords != nil {
		prompt += "\nFocus keywords: " + agentcore.Describe(keywords)
	}

	analysis := a.llm.Complete(ctx, llm.Request{
		Prompt:       prompt + agentcore.PriorWork(input),
		SystemPrompt: a.SystemPrompt(TaskTrendAnalysis),
	})
	return a.Completed(input, map[string]any{"trend_analysis": analysis}, 0.87), nil
}

// predictViral scores a candidate with simple signal heuristics on top of a fixed base.
func (a *Agent) predictViral(_ context.Context, input map[string]any) (*agentcore.Response, error) {
	score := baseViralScore
	factors := []any{"trending topic", "good timing"}

	title := strings.TrimSpace(agentcore.String(input, "title", ""))
	if title != "" {
		if n := len(title); n >= 30 && n <= 70 {
			score += 0.05
			factors = append(factors, "title length in the 30-70 character range")
		}
		if strings.ContainsAny(title, "0123456789") {
			score += 0.03
			factors = append(factors, "numeric hook in title")
		}
		if strings.Contains(title, "?") {
			score += 0.02
			factors = append(factors, "curiosity question")
		}
	}
	score = math.Min(score, 0.99)

	return a.Completed(input, map[string]any{
		"viral_score": math.Round(score*100) / 100,
		"factors":     factors,
	}, 0.78), nil
}

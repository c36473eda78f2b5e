package manus

import (
	"context"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

const Key = "manus"

const (
	TaskOrchestrateVideo        agentcore.TaskType = "orchestrate_video_creation"
	TaskStrategicPlanning       agentcore.TaskType = "strategic_planning"
	TaskPerformanceOptimization agentcore.TaskType = "performance_optimization"
	TaskContentIdeation         agentcore.TaskType = "content_ideation"
)

var supported = []agentcore.TaskType{
	TaskOrchestrateVideo,
	TaskStrategicPlanning,
	TaskPerformanceOptimization,
	TaskContentIdeation,
}

// Agent is the top-level orchestrator. It plans video production and delegates
// follow-up work to the specialist agents.
type Agent struct {
	agentcore.Identity
	llm      agentcore.LLM
	handlers agentcore.Handlers
}

func NewAgent(deps agentcore.RuntimeDeps) *Agent {
	a := &Agent{
		Identity: agentcore.NewIdentity(Key, "Manus Orchestrator", "primary_orchestrator"),
		llm:      deps.LLM,
	}
	a.handlers = agentcore.Handlers{
		TaskOrchestrateVideo:        a.orchestrateVideo,
		TaskStrategicPlanning:       a.strategicPlanning,
		TaskPerformanceOptimization: a.performanceOptimization,
		TaskContentIdeation:         a.contentIdeation,
	}
	return a
}

func (a *Agent) Capabilities() agentcore.Capabilities {
	return agentcore.Capabilities{
		AgentID:        a.ID(),
		Name:           a.Name(),
		Type:           a.Type(),
		SupportedTasks: append([]agentcore.TaskType(nil), supported...),
		Capabilities: []string{
			"Multi-agent coordination",
			"Strategic decision making",
			"Content optimization",
			"Performance analysis",
			"Trend prediction",
			"Resource allocation",
		},
		DecisionFrameworks: []string{
			"ROI optimization",
			"Audience engagement maximization",
			"Algorithm compatibility",
			"Monetization potential",
		},
	}
}

func (a *Agent) Execute(ctx context.Context, taskType agentcore.TaskType, input map[string]any) (*agentcore.Response, error) {
	return a.handlers.Dispatch(ctx, a.ID(), taskType, input)
}

func (a *Agent) complete(ctx context.Context, taskType agentcore.TaskType, prompt string, maxTokens int) string {
	return a.llm.Complete(ctx, llm.Request{
		Prompt:       prompt,
		SystemPrompt: a.SystemPrompt(taskType),
		MaxTokens:    maxTokens,
	})
}

func (a *Agent) orchestrateVideo(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	channel := agentcore.Map(input, "channel_config")
	niche := agentcore.String(channel, "niche", agentcore.String(input, "niche", "general"))

	research := a.complete(ctx, TaskOrchestrateVideo, researchPrompt(niche)+agentcore.PriorWork(input), 2000)
	strategy := a.complete(ctx, TaskStrategicPlanning, strategyPrompt(research), 3000)

	return a.Completed(input, map[string]any{
		"orchestration_plan": executionPlan(),
		"research_insights":  research,
		"content_strategy":   strategy,
		"next_actions": []any{
			map[string]any{"agent": "research_agent", "task": "detailed_research"},
			map[string]any{"agent": "content_strategist", "task": "script_generation"},
			map[string]any{"agent": "trend_predictor", "task": "performance_prediction"},
		},
	}, 0.85), nil
}

func (a *Agent) strategicPlanning(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	prompt := planningPrompt(
		agentcore.Describe(agentcore.Value(input, "channel_data", map[string]any{})),
		agentcore.Describe(agentcore.Value(input, "performance_data", map[string]any{})),
		agentcore.Describe(agentcore.Value(input, "goals", map[string]any{})),
	)
	plan := a.complete(ctx, TaskStrategicPlanning, prompt+agentcore.PriorWork(input), 4000)

	return a.Completed(input, map[string]any{
		"strategic_plan":          plan,
		"implementation_timeline": "90_days",
		"success_metrics": map[string]any{
			"subscriber_growth_target": "25%",
			"view_count_improvement":   "40%",
			"engagement_rate_target":   "15%",
			"revenue_increase":         "60%",
		},
	}, 0.9), nil
}

func (a *Agent) performanceOptimization(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	prompt := optimizationPrompt(
		agentcore.Describe(agentcore.Value(input, "performance_data", map[string]any{})),
		agentcore.Describe(agentcore.Value(input, "video_analytics", []any{})),
	)
	analysis := a.complete(ctx, TaskPerformanceOptimization, prompt+agentcore.PriorWork(input), 3000)

	return a.Completed(input, map[string]any{
		"optimization_analysis": analysis,
		"priority_actions": []any{
			"Improve video hooks based on retention data",
			"Optimize thumbnail click-through rates",
			"Enhance audience engagement tactics",
			"Refine content posting schedule",
		},
		"expected_improvements": map[string]any{
			"ctr_improvement":       "15-25%",
			"retention_improvement": "10-20%",
			"engagement_boost":      "20-30%",
		},
	}, 0.88), nil
}

func (a *Agent) contentIdeation(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	prompt := ideationPrompt(
		agentcore.String(input, "niche", "general"),
		agentcore.Describe(agentcore.Value(input, "audience_data", map[string]any{})),
		agentcore.Describe(agentcore.Value(input, "trending_topics", []any{})),
	)
	ideas := a.complete(ctx, TaskContentIdeation, prompt+agentcore.PriorWork(input), 4000)

	return a.Completed(input, map[string]any{
		"content_ideas": ideas,
		"strategic_insights": map[string]any{
			"market_opportunities": "High demand for educational tech content",
			"competitive_gaps":     "Lack of beginner-friendly explanations",
			"trending_angles":      "AI automation, productivity hacks",
		},
		"implementation_priority": "High-impact, low-effort content first",
	}, 0.87), nil
}

func executionPlan() map[string]any {
	phase := func(name, duration string, tasks ...[2]string) map[string]any {
		list := make([]any, 0, len(tasks))
		for _, t := range tasks {
			list = append(list, map[string]any{"task": t[0], "agent": t[1]})
		}
		return map[string]any{"phase": name, "duration": duration, "tasks": list}
	}
	return map[string]any{
		"phases": []any{
			phase("research_and_validation", "2-4 hours",
				[2]string{"market_research", "research_agent"},
				[2]string{"trend_analysis", "trend_predictor"},
				[2]string{"competitive_analysis", "research_agent"}),
			phase("content_creation", "4-6 hours",
				[2]string{"script_generation", "content_strategist"},
				[2]string{"hook_optimization", "content_strategist"},
				[2]string{"seo_optimization", "content_strategist"}),
			phase("production_planning", "1-2 hours",
				[2]string{"scene_planning", "content_strategist"},
				[2]string{"visual_requirements", "content_strategist"},
				[2]string{"audio_specifications", "content_strategist"}),
			phase("optimization_and_deployment", "2-3 hours",
				[2]string{"thumbnail_generation", "content_strategist"},
				[2]string{"metadata_optimization", "content_strategist"},
				[2]string{"publishing_schedule", "performance_analyst"}),
		},
		"total_estimated_time": "9-15 hours",
		"success_criteria": map[string]any{
			"script_quality_score":   "> 0.8",
			"seo_optimization_score": "> 0.85",
			"retention_prediction":   "> 60%",
			"monetization_potential": "> 0.7",
		},
	}
}

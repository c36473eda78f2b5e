package research

import (
	"context"
	"fmt"
	"strings"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

const Key = "research_agent"

const (
	TaskComprehensiveResearch agentcore.TaskType = "comprehensive_research"
	TaskCompetitorAnalysis    agentcore.TaskType = "competitor_analysis"
)

// Agent performs market and competitor research.
type Agent struct {
	agentcore.Identity
	llm      agentcore.LLM
	handlers agentcore.Handlers
}

func NewAgent(deps agentcore.RuntimeDeps) *Agent {
	a := &Agent{
		Identity: agentcore.NewIdentity(Key, "Research Agent", "research_analysis"),
		llm:      deps.LLM,
	}
	a.handlers = agentcore.Handlers{
		TaskComprehensiveResearch: a.comprehensiveResearch,
		TaskCompetitorAnalysis:    a.competitorAnalysis,
	}
	return a
}

func (a *Agent) Capabilities() agentcore.Capabilities {
	return agentcore.Capabilities{
		AgentID:        a.ID(),
		Name:           a.Name(),
		Type:           a.Type(),
		SupportedTasks: []agentcore.TaskType{TaskComprehensiveResearch, TaskCompetitorAnalysis},
		Specialties:    []string{"market research", "competitor analysis", "content gap analysis"},
	}
}

func (a *Agent) Execute(ctx context.Context, taskType agentcore.TaskType, input map[string]any) (*agentcore.Response, error) {
	return a.handlers.Dispatch(ctx, a.ID(), taskType, input)
}

func (a *Agent) comprehensiveResearch(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	topic := agentcore.String(input, "topic", "")
	niche := agentcore.String(input, "niche", "general")
	depth := agentcore.String(input, "depth", "comprehensive")

	prompt := fmt.Sprintf("Conduct %s research on %s in the %s niche.", depth, topic, niche)
	if sources := agentcore.Value(input, "sources", nil); sources != nil {
		prompt += "\nPrioritize these sources: " + agentcore.Describe(sources)
	}

	research := a.llm.Complete(ctx, llm.Request{
		Prompt:       prompt + agentcore.PriorWork(input),
		SystemPrompt: a.SystemPrompt(TaskComprehensiveResearch),
	})
	return a.Completed(input, map[string]any{"research": research}, 0.88), nil
}

func (a *Agent) competitorAnalysis(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	competitors := stringList(agentcore.Value(input, "competitors", nil))
	if len(competitors) == 0 {
		return a.Completed(input, map[string]any{
			"competitors": []any{},
			"analysis":    "Competitor analysis completed",
		}, 0.83), nil
	}

	analysis := a.llm.Complete(ctx, llm.Request{
		Prompt: fmt.Sprintf("Compare these YouTube channels in the %s niche and identify content gaps: %s",
			agentcore.String(input, "niche", "general"), strings.Join(competitors, ", ")),
		SystemPrompt: a.SystemPrompt(TaskCompetitorAnalysis),
	})
	list := make([]any, 0, len(competitors))
	for _, c := range competitors {
		list = append(list, c)
	}
	return a.Completed(input, map[string]any{
		"competitors": list,
		"analysis":    analysis,
	}, 0.83), nil
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

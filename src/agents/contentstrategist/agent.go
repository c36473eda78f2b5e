package contentstrategist

import (
	"context"
	"fmt"
	"strings"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
)

const Key = "content_strategist"

const (
	TaskScriptGeneration    agentcore.TaskType = "script_generation"
	TaskContentOptimization agentcore.TaskType = "content_optimization"
	TaskHookGeneration      agentcore.TaskType = "hook_generation"
)

const defaultHookCount = 3

// Agent writes scripts and sharpens titles, descriptions and hooks.
type Agent struct {
	agentcore.Identity
	llm      agentcore.LLM
	handlers agentcore.Handlers
}

func NewAgent(deps agentcore.RuntimeDeps) *Agent {
	a := &Agent{
		Identity: agentcore.NewIdentity(Key, "Content Strategist", "content_creation"),
		llm:      deps.LLM,
	}
	a.handlers = agentcore.Handlers{
		TaskScriptGeneration:    a.generateScript,
		TaskContentOptimization: a.optimizeContent,
		TaskHookGeneration:      a.generateHooks,
	}
	return a
}

func (a *Agent) Capabilities() agentcore.Capabilities {
	return agentcore.Capabilities{
		AgentID:        a.ID(),
		Name:           a.Name(),
		Type:           a.Type(),
		SupportedTasks: []agentcore.TaskType{TaskScriptGeneration, TaskContentOptimization, TaskHookGeneration},
		Specialties:    []string{"YouTube scripts", "engagement optimization", "retention tactics"},
	}
}

func (a *Agent) Execute(ctx context.Context, taskType agentcore.TaskType, input map[string]any) (*agentcore.Response, error) {
	return a.handlers.Dispatch(ctx, a.ID(), taskType, input)
}

func (a *Agent) generateScript(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	topic := agentcore.String(input, "topic", "")
	niche := agentcore.String(input, "niche", "general")
	duration := agentcore.Int(input, "target_duration", 10)

	prompt := fmt.Sprintf("Generate a YouTube script for: %s in the %s niche, target duration %d minutes.", topic, niche, duration)
	if style := agentcore.String(input, "style", ""); style != "" {
		prompt += fmt.Sprintf("\nStyle: %s.", style)
	}
	if tone := agentcore.String(input, "tone", ""); tone != "" {
		prompt += fmt.Sprintf("\nTone: %s.", tone)
	}
	if audience := agentcore.String(input, "target_audience", ""); audience != "" {
		prompt += fmt.Sprintf("\nTarget audience: %s.", audience)
	}
	prompt += agentcore.PriorWork(input)

	script := a.llm.Complete(ctx, llm.Request{
		Prompt:       prompt,
		SystemPrompt: a.SystemPrompt(TaskScriptGeneration),
	})
	return a.Completed(input, map[string]any{"script": script}, 0.85), nil
}

func (a *Agent) optimizeContent(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	content := agentcore.String(input, "content", agentcore.String(input, "title", ""))
	if content == "" {
		return a.Completed(input, map[string]any{"optimization": "Content optimization completed"}, 0.8), nil
	}
	suggestions := a.llm.Complete(ctx, llm.Request{
		Prompt: fmt.Sprintf("Optimize this YouTube content for click-through, retention and search. "+
			"Suggest an improved title, description and tags.\n\nContent: %s", content),
		SystemPrompt: a.SystemPrompt(TaskContentOptimization),
		MaxTokens:    1000,
	})
	return a.Completed(input, map[string]any{"optimization": suggestions}, 0.8), nil
}

func (a *Agent) generateHooks(ctx context.Context, input map[string]any) (*agentcore.Response, error) {
	count := agentcore.Int(input, "count", defaultHookCount)
	if count <= 0 {
		count = defaultHookCount
	}
	topic := agentcore.String(input, "topic", "")
	if topic == "" {
		hooks := make([]any, 0, count)
		for i := 1; i <= count; i++ {
			hooks = append(hooks, fmt.Sprintf("Hook %d", i))
		}
		return a.Completed(input, map[string]any{"hooks": hooks}, 0.82), nil
	}

	reply := a.llm.Complete(ctx, llm.Request{
		Prompt: fmt.Sprintf("Write %d opening hooks (first 15 seconds) for a YouTube video about %s. "+
			"Return one hook per line with no numbering.", count, topic),
		SystemPrompt: a.SystemPrompt(TaskHookGeneration),
		MaxTokens:    500,
	})
	return a.Completed(input, map[string]any{"hooks": splitLines(reply, count)}, 0.82), nil
}

// splitLines keeps up to limit non-empty lines with list markers trimmed.
func splitLines(text string, limit int) []any {
	out := make([]any, 0, limit)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*0123456789.) "))
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

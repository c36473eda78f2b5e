package agents

import (
	"fmt"
	"log"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/agents/contentstrategist"
	"github.com/EfeDurmaz16/assos/src/agents/manus"
	"github.com/EfeDurmaz16/assos/src/agents/performanceanalyst"
	"github.com/EfeDurmaz16/assos/src/agents/research"
	"github.com/EfeDurmaz16/assos/src/agents/trendpredictor"
	sharedconfig "github.com/EfeDurmaz16/assos/src/config"
	"github.com/EfeDurmaz16/assos/src/logging"
)

type entry struct {
	enabled bool
	name    string
	build   func(agentcore.RuntimeDeps) agentcore.Agent
}

// StartAll wires up enabled agents behind controllers and returns the manager.
// When agents are globally disabled it returns (nil, nil).
func StartAll(cfg sharedconfig.AgentsConfig, deps agentcore.RuntimeDeps) (*Manager, error) {
	if !cfg.Enabled {
		log.Printf("agents: disabled via configuration")
		return nil, nil
	}

	if deps.Logger == nil {
		deps.Logger = logging.New("agents")
	}
	if deps.TaskTimeout == 0 {
		deps.TaskTimeout = cfg.TaskTimeout
	}
	logger := deps.Logger

	entries := []entry{
		{cfg.Manus, "manus", func(d agentcore.RuntimeDeps) agentcore.Agent { return manus.NewAgent(d) }},
		{cfg.ContentStrategist, "content strategist", func(d agentcore.RuntimeDeps) agentcore.Agent { return contentstrategist.NewAgent(d) }},
		{cfg.TrendPredictor, "trend predictor", func(d agentcore.RuntimeDeps) agentcore.Agent { return trendpredictor.NewAgent(d) }},
		{cfg.Research, "research", func(d agentcore.RuntimeDeps) agentcore.Agent { return research.NewAgent(d) }},
		{cfg.PerformanceAnalyst, "performance analyst", func(d agentcore.RuntimeDeps) agentcore.Agent { return performanceanalyst.NewAgent(d) }},
	}

	manager := agentcore.NewManager()
	for _, e := range entries {
		if !e.enabled {
			logger.Printf("agents: %s agent disabled", e.name)
			continue
		}
		if err := manager.Add(deps.NewController(e.build(deps))); err != nil {
			return nil, fmt.Errorf("agents: %s: %w", e.name, err)
		}
	}
	logger.Printf("agents: %d agents ready", len(manager.Keys()))
	return manager, nil
}

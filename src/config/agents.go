package config

import "time"

// AgentsConfig exposes feature gates and knobs for the agent runtime.
type AgentsConfig struct {
	Enabled     bool
	TaskTimeout time.Duration
	AIConfig    AIConfig

	Manus              bool
	ContentStrategist  bool
	TrendPredictor     bool
	Research           bool
	PerformanceAnalyst bool
}

// LoadAgentsConfig reads configuration values for the agent subsystem.
func LoadAgentsConfig() AgentsConfig {
	return AgentsConfig{
		Enabled:            getBoolSetting("enable_agents", "ENABLE_AGENTS", true),
		TaskTimeout:        time.Duration(getIntSetting("agent_task_timeout_seconds", "AGENT_TASK_TIMEOUT_SECONDS", 120)) * time.Second,
		AIConfig:           LoadAIConfig(),
		Manus:              getBoolSetting("enable_agent_manus", "ENABLE_AGENT_MANUS", true),
		ContentStrategist:  getBoolSetting("enable_agent_content_strategist", "ENABLE_AGENT_CONTENT_STRATEGIST", true),
		TrendPredictor:     getBoolSetting("enable_agent_trend_predictor", "ENABLE_AGENT_TREND_PREDICTOR", true),
		Research:           getBoolSetting("enable_agent_research", "ENABLE_AGENT_RESEARCH", true),
		PerformanceAnalyst: getBoolSetting("enable_agent_performance_analyst", "ENABLE_AGENT_PERFORMANCE_ANALYST", true),
	}
}

package agents

import (
	"github.com/EfeDurmaz16/assos/src/agents/core"
)

type (
	// Manager re-exports the core manager for convenience.
	Manager = core.Manager
	// Agent is a specialist behind a controller.
	Agent = core.Agent
	// Task is a unit of work.
	Task = core.Task
	// Response is the outcome of a processed task.
	Response = core.Response
	// TaskType selects the handler inside an agent.
	TaskType = core.TaskType
	// Capabilities advertises what an agent handles.
	Capabilities = core.Capabilities
	// RuntimeDeps bundles shared resources for agents.
	RuntimeDeps = core.RuntimeDeps
)

var (
	// ErrUnknownAgent indicates no agent was registered with the provided key.
	ErrUnknownAgent = core.ErrUnknownAgent
)

// NewManager forwards to core.NewManager.
func NewManager() *Manager {
	return core.NewManager()
}

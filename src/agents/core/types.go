package core

import (
	"encoding/json"
)

// TaskType names the operation an agent should perform.
type TaskType string

// Status is the terminal state of a task outcome.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Task is a unit of work submitted to an agent. Input is never mutated by the controller.
type Task struct {
	ID    string
	Type  TaskType
	Input map[string]any
}

// Response is the uniform outcome of a task.
type Response struct {
	AgentID         string
	TaskID          string
	Status          Status
	Result          map[string]any
	Error           string
	ExecutionTime   *float64
	ConfidenceScore *float64
}

type responseJSON struct {
	AgentID         string         `json:"agent_id"`
	TaskID          string         `json:"task_id"`
	Status          Status         `json:"status"`
	Result          map[string]any `json:"result"`
	Error           *string        `json:"error"`
	ExecutionTime   *float64       `json:"execution_time"`
	ConfidenceScore *float64       `json:"confidence_score"`
}

// MarshalJSON emits null for an empty error so the wire shape stays stable.
func (r Response) MarshalJSON() ([]byte, error) {
	out := responseJSON{
		AgentID:         r.AgentID,
		TaskID:          r.TaskID,
		Status:          r.Status,
		Result:          r.Result,
		ExecutionTime:   r.ExecutionTime,
		ConfidenceScore: r.ConfidenceScore,
	}
	if r.Error != "" {
		msg := r.Error
		out.Error = &msg
	}
	return json.Marshal(out)
}

func (r *Response) UnmarshalJSON(b []byte) error {
	var in responseJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*r = Response{
		AgentID:         in.AgentID,
		TaskID:          in.TaskID,
		Status:          in.Status,
		Result:          in.Result,
		ExecutionTime:   in.ExecutionTime,
		ConfidenceScore: in.ConfidenceScore,
	}
	if in.Error != nil {
		r.Error = *in.Error
	}
	return nil
}

// Capabilities advertises what an agent instance can do.
type Capabilities struct {
	AgentID            string     `json:"agent_id"`
	Name               string     `json:"name"`
	Type               string     `json:"type"`
	SupportedTasks     []TaskType `json:"supported_tasks"`
	Specialties        []string   `json:"specialties,omitempty"`
	Capabilities       []string   `json:"capabilities,omitempty"`
	DecisionFrameworks []string   `json:"decision_frameworks,omitempty"`
}

// UnknownTaskType stands in for task types an agent does not support when they
// are reported to observers.
const UnknownTaskType TaskType = "unknown"

// Supports reports whether taskType is one of the advertised task types.
func (c Capabilities) Supports(taskType TaskType) bool {
	for _, t := range c.SupportedTasks {
		if t == taskType {
			return true
		}
	}
	return false
}

// LabelFor returns taskType when supported and UnknownTaskType otherwise, keeping
// observer label sets bounded by the advertised tasks.
func (c Capabilities) LabelFor(taskType TaskType) TaskType {
	if c.Supports(taskType) {
		return taskType
	}
	return UnknownTaskType
}

// PerformanceMetrics is the rolling record kept per agent instance.
type PerformanceMetrics struct {
	TasksCompleted   int       `json:"tasks_completed"`
	SuccessRate      float64   `json:"success_rate"`
	AvgExecutionTime float64   `json:"avg_execution_time"`
	ConfidenceScores []float64 `json:"confidence_scores"`
}

// AgentMetrics decorates PerformanceMetrics with the agent's identity.
type AgentMetrics struct {
	PerformanceMetrics
	AgentID string `json:"agent_id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

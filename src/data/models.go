package data

import "time"

// Setting is a runtime-tunable key/value row. Active rows override environment values.
type Setting struct {
	ID     uint8  `gorm:"primaryKey"`
	Name   string `gorm:"size:64;not null;uniqueIndex"`
	Value  string `gorm:"type:text;not null"`
	Active uint8  `gorm:"not null;default:1"`
}

func (Setting) TableName() string { return "settings" }

// TaskRecord is one processed agent task.
type TaskRecord struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID          string    `gorm:"size:128;not null;index" json:"task_id"`
	AgentID         string    `gorm:"size:64;not null;index:idx_agent_created" json:"agent_id"`
	AgentName       string    `gorm:"size:64;not null" json:"agent_name"`
	TaskType        string    `gorm:"size:64;not null" json:"task_type"`
	Status          string    `gorm:"size:16;not null" json:"status"`
	Input           string    `gorm:"type:text" json:"input"`
	Result          string    `gorm:"type:mediumtext" json:"result"`
	Error           string    `gorm:"type:text" json:"error,omitempty"`
	ExecutionTime   float64   `json:"execution_time"`
	ConfidenceScore *float64  `json:"confidence_score,omitempty"`
	CreatedAt       time.Time `gorm:"index:idx_agent_created" json:"created_at"`
}

func (TaskRecord) TableName() string { return "agent_tasks" }

package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"gorm.io/gorm"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// History persists finished agent tasks to the agent_tasks table.
type History struct {
	db  *gorm.DB
	now func() time.Time
}

func NewHistory(db *gorm.DB) *History {
	return &History{db: db, now: time.Now}
}

// Record stores one outcome.
func (h *History) Record(ctx context.Context, agentID, agentName string, task agentcore.Task, resp *agentcore.Response) error {
	if h == nil || h.db == nil {
		return errors.New("data: history has no database")
	}
	rec, err := newTaskRecord(agentID, agentName, task, resp, h.now())
	if err != nil {
		return err
	}
	if err := h.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("data: record task %s: %w", task.ID, err)
	}
	return nil
}

// Recent returns the newest records for agentID, newest first.
func (h *History) Recent(ctx context.Context, agentID string, limit int) ([]TaskRecord, error) {
	if h == nil || h.db == nil {
		return nil, errors.New("data: history has no database")
	}
	var out []TaskRecord
	err := h.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Order("created_at DESC").
		Limit(ClampLimit(limit)).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("data: recent tasks for %s: %w", agentID, err)
	}
	return out, nil
}

// ClampLimit maps non-positive limits to the default and caps large ones.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		return MaxHistoryLimit
	}
	return limit
}

func newTaskRecord(agentID, agentName string, task agentcore.Task, resp *agentcore.Response, at time.Time) (TaskRecord, error) {
	if resp == nil {
		return TaskRecord{}, errors.New("data: nil response")
	}
	input, err := json.Marshal(task.Input)
	if err != nil {
		return TaskRecord{}, fmt.Errorf("data: encode input: %w", err)
	}
	rec := TaskRecord{
		TaskID:          task.ID,
		AgentID:         agentID,
		AgentName:       agentName,
		TaskType:        string(task.Type),
		Status:          string(resp.Status),
		Input:           string(input),
		Error:           resp.Error,
		ConfidenceScore: resp.ConfidenceScore,
		CreatedAt:       at.UTC(),
	}
	if resp.Result != nil {
		result, err := json.Marshal(resp.Result)
		if err != nil {
			return TaskRecord{}, fmt.Errorf("data: encode result: %w", err)
		}
		rec.Result = string(result)
	}
	if resp.ExecutionTime != nil {
		rec.ExecutionTime = *resp.ExecutionTime
	}
	return rec, nil
}

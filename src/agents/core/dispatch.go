package core

import (
	"context"
	"fmt"
)

// HandlerFunc implements one task type for an agent.
type HandlerFunc func(ctx context.Context, input map[string]any) (*Response, error)

// Handlers is an agent's dispatch table.
type Handlers map[TaskType]HandlerFunc

// Dispatch runs the handler registered for taskType. Unregistered types yield a
// failed draft naming the type.
func (h Handlers) Dispatch(ctx context.Context, agentID string, taskType TaskType, input map[string]any) (*Response, error) {
	fn, ok := h[taskType]
	if !ok || fn == nil {
		return Failure(agentID, InputTaskID(input), fmt.Sprintf("Unknown task type: %s", taskType)), nil
	}
	return fn(ctx, input)
}

// Supports reports whether taskType has a handler.
func (h Handlers) Supports(taskType TaskType) bool {
	_, ok := h[taskType]
	return ok
}

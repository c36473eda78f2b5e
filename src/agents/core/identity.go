package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Identity carries the fixed naming of an agent instance. Variants embed it.
type Identity struct {
	id        string
	key       string
	name      string
	agentType string
}

// NewIdentity assigns a fresh instance id.
func NewIdentity(key, name, agentType string) Identity {
	return Identity{
		id:        uuid.NewString(),
		key:       key,
		name:      name,
		agentType: agentType,
	}
}

func (i Identity) ID() string   { return i.id }
func (i Identity) Key() string  { return i.key }
func (i Identity) Name() string { return i.name }
func (i Identity) Type() string { return i.agentType }

// SystemPrompt frames every completion the agent requests.
func (i Identity) SystemPrompt(taskType TaskType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a specialized AI agent for YouTube content automation.\n", i.name)
	fmt.Fprintf(&b, "Your role is to %s with high accuracy and efficiency.\n\n", strings.ReplaceAll(i.agentType, "_", " "))
	fmt.Fprintf(&b, "Current task type: %s\n\n", taskType)
	b.WriteString("Guidelines:\n")
	b.WriteString("- Provide detailed, actionable responses\n")
	b.WriteString("- Include confidence scores for your recommendations\n")
	b.WriteString("- Consider YouTube algorithm preferences\n")
	b.WriteString("- Focus on audience engagement and retention\n")
	b.WriteString("- Ensure content is monetization-friendly\n")
	return b.String()
}

// Completed drafts a successful outcome.
func (i Identity) Completed(input map[string]any, result map[string]any, confidence float64) *Response {
	return &Response{
		AgentID:         i.id,
		TaskID:          InputTaskID(input),
		Status:          StatusCompleted,
		Result:          result,
		ConfidenceScore: Float(confidence),
	}
}

// Failed drafts a failed outcome.
func (i Identity) Failed(input map[string]any, msg string) *Response {
	return Failure(i.id, InputTaskID(input), msg)
}

// Failure builds a failed Response.
func Failure(agentID, taskID, msg string) *Response {
	if msg == "" {
		msg = "task failed"
	}
	return &Response{
		AgentID: agentID,
		TaskID:  taskID,
		Status:  StatusFailed,
		Error:   msg,
	}
}

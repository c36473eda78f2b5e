package messaging

const (
	SubjectVideoProcess    = "video.process"
	SubjectAITask          = "ai.task"
	SubjectResearch        = "ai.research"
	SubjectContentGenerate = "ai.content.generate"

	SubjectVideoResponse    = "ai.video.response"
	SubjectTaskResponse     = "ai.task.response"
	SubjectResearchResponse = "ai.research.response"
	SubjectContentResponse  = "ai.content.response"
)

const actionStartProcessing = "start_processing"

// VideoProcessingRequest is published by the gateway when a video enters the pipeline.
type VideoProcessingRequest struct {
	VideoID string `json:"video_id"`
	UserID  string `json:"user_id"`
	Action  string `json:"action"`
}

// AgentTaskRequest asks a named agent to run one task.
type AgentTaskRequest struct {
	TaskID    string         `json:"task_id"`
	AgentID   string         `json:"agent_id"`
	VideoID   string         `json:"video_id,omitempty"`
	TaskType  string         `json:"task_type"`
	Priority  int            `json:"priority,omitempty"`
	InputData map[string]any `json:"input_data"`
}

package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/agents/contentstrategist"
	"github.com/EfeDurmaz16/assos/src/agents/manus"
	"github.com/EfeDurmaz16/assos/src/agents/research"
	"github.com/EfeDurmaz16/assos/src/agents/trendpredictor"
)

type handlers struct {
	agents   AgentRouter
	history  HistoryReader
	sanitize sanitizer
	logger   *log.Logger
}

func (h *handlers) ListAgents(c *gin.Context) {
	agents := h.agents.Describe()
	c.JSON(http.StatusOK, gin.H{"agents": agents, "count": len(agents)})
}

func (h *handlers) Orchestrate(c *gin.Context) {
	h.freeform(c, manus.Key, manus.TaskOrchestrateVideo)
}

func (h *handlers) Strategy(c *gin.Context) {
	h.freeform(c, manus.Key, manus.TaskStrategicPlanning)
}

func (h *handlers) ContentIdeas(c *gin.Context) {
	h.freeform(c, manus.Key, manus.TaskContentIdeation)
}

func (h *handlers) OptimizePerformance(c *gin.Context) {
	h.freeform(c, manus.Key, manus.TaskPerformanceOptimization)
}

func (h *handlers) AnalyzeTrends(c *gin.Context) {
	h.freeform(c, trendpredictor.Key, trendpredictor.TaskTrendAnalysis)
}

func (h *handlers) GenerateScript(c *gin.Context) {
	var req ScriptGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.process(c, contentstrategist.Key, agentcore.Task{
		ID:    taskID(req.TaskID),
		Type:  contentstrategist.TaskScriptGeneration,
		Input: h.sanitize.input(req.input()),
	})
}

func (h *handlers) Research(c *gin.Context) {
	var req ResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.process(c, research.Key, agentcore.Task{
		ID:    taskID(req.TaskID),
		Type:  research.TaskComprehensiveResearch,
		Input: h.sanitize.input(req.input()),
	})
}

func (h *handlers) SubmitTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	h.process(c, c.Param("agent"), agentcore.Task{
		ID:    taskID(req.TaskID),
		Type:  agentcore.TaskType(req.TaskType),
		Input: h.sanitize.input(req.InputData),
	})
}

func (h *handlers) Performance(c *gin.Context) {
	metrics, err := h.agents.Metrics(c.Param("agent"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *handlers) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "task history is not configured"})
		return
	}
	metrics, err := h.agents.Metrics(c.Param("agent"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "Agent not found"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	records, err := h.history.Recent(c.Request.Context(), metrics.AgentID, limit)
	if err != nil {
		h.logger.Printf("api: history for %s: %v", metrics.AgentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent_id": metrics.AgentID, "tasks": records, "count": len(records)})
}

// freeform passes an arbitrary JSON object through as task input.
func (h *handlers) freeform(c *gin.Context, agentKey string, taskType agentcore.TaskType) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	input := h.sanitize.input(body)
	h.process(c, agentKey, agentcore.Task{
		ID:    taskID(agentcore.String(input, "task_id", "")),
		Type:  taskType,
		Input: input,
	})
}

func (h *handlers) process(c *gin.Context, agentKey string, task agentcore.Task) {
	resp, err := h.agents.Process(c.Request.Context(), agentKey, task)
	if errors.Is(err, agentcore.ErrUnknownAgent) {
		c.JSON(http.StatusNotFound, gin.H{"err": "Agent not found"})
		return
	}
	if err != nil {
		h.logger.Printf("api: %s/%s: %v", agentKey, task.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func taskID(requested string) string {
	if requested != "" {
		return requested
	}
	return uuid.NewString()
}

// Package api serves the agent runtime over HTTP.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/data"
	"github.com/EfeDurmaz16/assos/src/logging"
)

const (
	ServiceName    = "assos-ai-service"
	ServiceVersion = "1.0.0"
)

// AgentRouter is the part of the agent manager the handlers use.
type AgentRouter interface {
	Process(ctx context.Context, agentKey string, task agentcore.Task) (*agentcore.Response, error)
	Describe() []agentcore.Capabilities
	Metrics(agentKey string) (agentcore.AgentMetrics, error)
}

// HistoryReader lists recorded tasks for one agent instance.
type HistoryReader interface {
	Recent(ctx context.Context, agentID string, limit int) ([]data.TaskRecord, error)
}

// Options configures the router. Zero values disable the optional pieces.
type Options struct {
	CORSOrigins        []string
	JWTSecret          string
	RateLimitPerMinute int
	History            HistoryReader
	Gatherer           prometheus.Gatherer
	Logger             *log.Logger
	Debug              bool
}

// New builds the gin engine. The rate limiter's sweeper stops with ctx.
func New(ctx context.Context, agents AgentRouter, opts Options) *gin.Engine {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := &handlers{
		agents:   agents,
		history:  opts.History,
		sanitize: newSanitizer(),
		logger:   logging.OrDiscard(opts.Logger),
	}

	r.GET("/health", h.Health)
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := r.Group("/api/v1")
	if opts.JWTSecret != "" {
		v1.Use(JWTMiddleware([]byte(opts.JWTSecret)))
	}
	if opts.RateLimitPerMinute > 0 {
		v1.Use(RateLimitMiddleware(NewRateLimiter(ctx, opts.RateLimitPerMinute, time.Minute)))
	}
	{
		v1.GET("/agents", h.ListAgents)
		v1.POST("/agents/manus/orchestrate", h.Orchestrate)
		v1.POST("/agents/manus/strategy", h.Strategy)
		v1.POST("/content/script", h.GenerateScript)
		v1.POST("/content/ideas", h.ContentIdeas)
		v1.POST("/research/comprehensive", h.Research)
		v1.POST("/trends/analyze", h.AnalyzeTrends)
		v1.POST("/optimize/performance", h.OptimizePerformance)
		v1.POST("/agents/:agent/tasks", h.SubmitTask)
		v1.GET("/agents/:agent/performance", h.Performance)
		v1.GET("/agents/:agent/history", h.History)
	}

	return r
}

func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName, "version": ServiceVersion})
}

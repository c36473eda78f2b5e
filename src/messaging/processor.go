// Package messaging feeds NATS requests into the agent manager and publishes the
// responses on the matching reply subjects.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/nats-io/nats.go"
	"golang.org/x/sync/errgroup"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/agents/contentstrategist"
	"github.com/EfeDurmaz16/assos/src/agents/manus"
	"github.com/EfeDurmaz16/assos/src/agents/research"
	"github.com/EfeDurmaz16/assos/src/logging"
)

// Conn is the part of *nats.Conn the processor uses.
type Conn interface {
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Publish(subject string, data []byte) error
}

// TaskRunner routes a task to an agent by key.
type TaskRunner interface {
	Process(ctx context.Context, agentKey string, task agentcore.Task) (*agentcore.Response, error)
}

// Processor subscribes to the agent subjects and runs each message on a bounded worker group.
type Processor struct {
	conn    Conn
	runner  TaskRunner
	logger  *log.Logger
	workers int
}

func NewProcessor(conn Conn, runner TaskRunner, workers int, logger *log.Logger) *Processor {
	if workers <= 0 {
		workers = 8
	}
	return &Processor{conn: conn, runner: runner, workers: workers, logger: logging.OrDiscard(logger)}
}

// Connect dials NATS with reconnects enabled for the life of the process.
func Connect(url string, logger *log.Logger) (*nats.Conn, error) {
	logger = logging.OrDiscard(logger)
	nc, err := nats.Connect(url,
		nats.Name("assos-ai-service"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Printf("messaging: disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Printf("messaging: reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("messaging: connect %s: %w", url, err)
	}
	return nc, nil
}

// Run subscribes and blocks until ctx is cancelled, then waits for in-flight handlers.
func (p *Processor) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	handlers := map[string]func(context.Context, []byte) error{
		SubjectVideoProcess:    p.handleVideoProcessing,
		SubjectAITask:          p.handleAITask,
		SubjectResearch:        p.handleResearch,
		SubjectContentGenerate: p.handleContentGeneration,
	}

	// closed gates the callbacks so nothing reaches g.Go once g.Wait may be running.
	var (
		gate   sync.RWMutex
		closed bool
	)
	var subs []*nats.Subscription
	shutdown := func() error {
		for _, sub := range subs {
			if sub != nil {
				_ = sub.Unsubscribe()
			}
		}
		gate.Lock()
		closed = true
		gate.Unlock()
		return g.Wait()
	}

	for _, subject := range []string{SubjectVideoProcess, SubjectAITask, SubjectResearch, SubjectContentGenerate} {
		handle := handlers[subject]
		subject := subject
		sub, err := p.conn.Subscribe(subject, func(msg *nats.Msg) {
			gate.RLock()
			defer gate.RUnlock()
			if closed {
				return
			}
			data := append([]byte(nil), msg.Data...)
			g.Go(func() error {
				if err := handle(gctx, data); err != nil {
					p.logger.Printf("messaging: %s: %v", subject, err)
				}
				return nil
			})
		})
		if err != nil {
			_ = shutdown()
			return fmt.Errorf("messaging: subscribe %s: %w", subject, err)
		}
		subs = append(subs, sub)
	}
	p.logger.Printf("messaging: subscribed to %d subjects", len(subs))

	<-ctx.Done()
	return shutdown()
}

// Handle processes a single message synchronously.
func (p *Processor) Handle(ctx context.Context, subject string, data []byte) error {
	switch subject {
	case SubjectVideoProcess:
		return p.handleVideoProcessing(ctx, data)
	case SubjectAITask:
		return p.handleAITask(ctx, data)
	case SubjectResearch:
		return p.handleResearch(ctx, data)
	case SubjectContentGenerate:
		return p.handleContentGeneration(ctx, data)
	}
	return fmt.Errorf("messaging: no handler for %s", subject)
}

func (p *Processor) handleVideoProcessing(ctx context.Context, data []byte) error {
	var req VideoProcessingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode video request: %w", err)
	}
	if req.VideoID == "" {
		return errors.New("video request missing video_id")
	}
	if req.Action != actionStartProcessing {
		p.logger.Printf("messaging: ignoring video %s action %q", req.VideoID, req.Action)
		return nil
	}

	p.logger.Printf("messaging: processing video %s", req.VideoID)
	return p.run(ctx, manus.Key, agentcore.Task{
		ID:   "video_" + req.VideoID,
		Type: manus.TaskOrchestrateVideo,
		Input: map[string]any{
			"video_id":       req.VideoID,
			"user_id":        req.UserID,
			"channel_config": map[string]any{},
		},
	}, SubjectVideoResponse)
}

func (p *Processor) handleAITask(ctx context.Context, data []byte) error {
	var req AgentTaskRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decode task request: %w", err)
	}
	if req.AgentID == "" || req.TaskType == "" {
		return errors.New("task request missing agent_id or task_type")
	}
	input := req.InputData
	if input == nil {
		input = map[string]any{}
	}
	p.logger.Printf("messaging: task %s for agent %s", req.TaskID, req.AgentID)
	return p.run(ctx, req.AgentID, agentcore.Task{
		ID:    req.TaskID,
		Type:  agentcore.TaskType(req.TaskType),
		Input: input,
	}, SubjectTaskResponse)
}

func (p *Processor) handleResearch(ctx context.Context, data []byte) error {
	input, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("decode research request: %w", err)
	}
	return p.run(ctx, research.Key, agentcore.Task{
		ID:    agentcore.String(input, "task_id", "research_task"),
		Type:  research.TaskComprehensiveResearch,
		Input: input,
	}, SubjectResearchResponse)
}

func (p *Processor) handleContentGeneration(ctx context.Context, data []byte) error {
	input, err := decodeObject(data)
	if err != nil {
		return fmt.Errorf("decode content request: %w", err)
	}
	return p.run(ctx, contentstrategist.Key, agentcore.Task{
		ID:    agentcore.String(input, "task_id", "content_task"),
		Type:  contentstrategist.TaskScriptGeneration,
		Input: input,
	}, SubjectContentResponse)
}

func (p *Processor) run(ctx context.Context, agentKey string, task agentcore.Task, reply string) error {
	resp, err := p.runner.Process(ctx, agentKey, task)
	if err != nil {
		return err
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	if err := p.conn.Publish(reply, body); err != nil {
		return fmt.Errorf("publish %s: %w", reply, err)
	}
	return nil
}

func decodeObject(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

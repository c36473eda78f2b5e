package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/EfeDurmaz16/assos/src/logging"
	"github.com/google/uuid"
)

var errNoResponse = errors.New("agent returned no response")

// Controller runs the task lifecycle for one agent: context loading, timed
// execution, metrics, and persistence.
type Controller struct {
	agent    Agent
	caps     Capabilities
	loader   *ContextLoader
	store    *ResultStore
	tracker  *Tracker
	observer Observer
	logger   *log.Logger
	timeout  time.Duration
	now      func() time.Time
}

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithTimeout bounds loading plus execution. Zero disables the deadline.
func WithTimeout(d time.Duration) ControllerOption {
	return func(c *Controller) { c.timeout = d }
}

func WithObserver(o Observer) ControllerOption {
	return func(c *Controller) { c.observer = o }
}

func WithLogger(l *log.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logging.OrDiscard(l) }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController wraps agent. loader and store may be nil.
func NewController(agent Agent, loader *ContextLoader, store *ResultStore, opts ...ControllerOption) *Controller {
	c := &Controller{
		agent:   agent,
		caps:    agent.Capabilities(),
		loader:  loader,
		store:   store,
		tracker: NewTracker(),
		logger:  logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Key() string                 { return c.agent.Key() }
func (c *Controller) Capabilities() Capabilities  { return c.caps }
func (c *Controller) Metrics() PerformanceMetrics { return c.tracker.Snapshot() }

// AgentMetrics returns the metrics snapshot labelled with the agent identity.
func (c *Controller) AgentMetrics() AgentMetrics {
	return AgentMetrics{
		PerformanceMetrics: c.tracker.Snapshot(),
		AgentID:            c.caps.AgentID,
		Name:               c.caps.Name,
		Type:               c.caps.Type,
	}
}

// ProcessTask always returns an outcome with ExecutionTime set. Errors raised by
// the agent become a failed outcome and skip metrics and persistence.
func (c *Controller) ProcessTask(ctx context.Context, task Task) *Response {
	start := c.now()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	agentID := c.caps.AgentID
	c.logger.Printf("agent %s starting task %s of type %s", c.caps.Name, task.ID, task.Type)

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.run(runCtx, task)
	elapsed := c.now().Sub(start).Seconds()

	if err != nil {
		out := Failure(agentID, task.ID, err.Error())
		out.ExecutionTime = Float(elapsed)
		c.logger.Printf("agent %s failed task %s: %v", c.caps.Name, task.ID, err)
		c.notify(task, out)
		return out
	}

	resp.AgentID = agentID
	resp.TaskID = task.ID
	resp.ExecutionTime = Float(elapsed)
	if resp.Status != StatusCompleted {
		resp.Status = StatusFailed
		resp.Result = nil
		if resp.Error == "" {
			resp.Error = "task failed"
		}
	}

	confidence := DefaultConfidence
	if resp.ConfidenceScore != nil {
		confidence = *resp.ConfidenceScore
	}
	c.tracker.Update(elapsed, confidence)

	if err := c.store.Store(ctx, agentID, c.caps.Name, task, resp); err != nil {
		c.logger.Printf("agent %s failed to store results for task %s: %v", c.caps.Name, task.ID, err)
	}

	c.logger.Printf("agent %s completed task %s in %.2fs", c.caps.Name, task.ID, elapsed)
	c.notify(task, resp)
	return resp
}

func (c *Controller) run(ctx context.Context, task Task) (resp *Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("agent panic: %v", r)
		}
	}()

	input := cloneInput(task.Input)
	bundle, loadErr := c.loader.Load(ctx, c.caps.AgentID, task)
	if loadErr != nil {
		c.logger.Printf("agent %s failed to load context for task %s: %v", c.caps.Name, task.ID, loadErr)
	}
	input["context"] = bundle.AsMap()

	resp, err = c.agent.Execute(ctx, task.Type, input)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, errNoResponse
	}
	return resp, nil
}

func (c *Controller) notify(task Task, resp *Response) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveTask(c.agent.Key(), c.caps.LabelFor(task.Type), resp, c.tracker.Snapshot())
}

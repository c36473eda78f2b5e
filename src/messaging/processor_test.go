package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/logging"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	mu        sync.Mutex
	handlers  map[string]nats.MsgHandler
	published []published
	subErr    error
}

func newFakeConn() *fakeConn {
	return &fakeConn{handlers: map[string]nats.MsgHandler{}}
}

func (c *fakeConn) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subErr != nil {
		return nil, c.subErr
	}
	c.handlers[subject] = cb
	return nil, nil
}

func (c *fakeConn) Publish(subject string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, published{subject: subject, data: data})
	return nil
}

func (c *fakeConn) deliver(subject string, data []byte) {
	c.mu.Lock()
	cb := c.handlers[subject]
	c.mu.Unlock()
	cb(&nats.Msg{Subject: subject, Data: data})
}

func (c *fakeConn) sent() []published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]published(nil), c.published...)
}

type call struct {
	agent string
	task  agentcore.Task
}

type fakeRunner struct {
	mu    sync.Mutex
	calls []call
	err   error
}

func (r *fakeRunner) Process(_ context.Context, agentKey string, task agentcore.Task) (*agentcore.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{agent: agentKey, task: task})
	if r.err != nil {
		return nil, r.err
	}
	return &agentcore.Response{AgentID: agentKey, TaskID: task.ID, Status: agentcore.StatusCompleted}, nil
}

func newProcessor() (*Processor, *fakeConn, *fakeRunner) {
	conn := newFakeConn()
	runner := &fakeRunner{}
	return NewProcessor(conn, runner, 2, logging.Discard()), conn, runner
}

func TestVideoProcessingStartsOrchestration(t *testing.T) {
	p, conn, runner := newProcessor()

	err := p.Handle(context.Background(), SubjectVideoProcess, []byte(`{"video_id":"42","user_id":"u1","action":"start_processing"}`))
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "manus", runner.calls[0].agent)
	assert.Equal(t, "video_42", runner.calls[0].task.ID)
	assert.Equal(t, agentcore.TaskType("orchestrate_video_creation"), runner.calls[0].task.Type)
	assert.Equal(t, "u1", runner.calls[0].task.Input["user_id"])
	assert.Equal(t, map[string]any{}, runner.calls[0].task.Input["channel_config"])

	sent := conn.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, SubjectVideoResponse, sent[0].subject)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(sent[0].data, &resp))
	assert.Equal(t, "video_42", resp["task_id"])
	assert.Equal(t, "completed", resp["status"])
}

func TestVideoProcessingIgnoresOtherActions(t *testing.T) {
	p, conn, runner := newProcessor()

	require.NoError(t, p.Handle(context.Background(), SubjectVideoProcess, []byte(`{"video_id":"42","action":"pause"}`)))
	assert.Empty(t, runner.calls)
	assert.Empty(t, conn.sent())

	assert.Error(t, p.Handle(context.Background(), SubjectVideoProcess, []byte(`{"action":"start_processing"}`)))
	assert.Error(t, p.Handle(context.Background(), SubjectVideoProcess, []byte(`not json`)))
}

func TestAITaskRoutesToNamedAgent(t *testing.T) {
	p, conn, runner := newProcessor()

	err := p.Handle(context.Background(), SubjectAITask, []byte(`{"task_id":"t9","agent_id":"trend_predictor","task_type":"viral_prediction"}`))
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "trend_predictor", runner.calls[0].agent)
	assert.Equal(t, map[string]any{}, runner.calls[0].task.Input)
	assert.Equal(t, SubjectTaskResponse, conn.sent()[0].subject)
}

func TestAITaskValidation(t *testing.T) {
	p, _, runner := newProcessor()

	assert.Error(t, p.Handle(context.Background(), SubjectAITask, []byte(`{"task_id":"t9","task_type":"x"}`)))
	assert.Error(t, p.Handle(context.Background(), SubjectAITask, []byte(`{"agent_id":"manus"}`)))
	assert.Empty(t, runner.calls)
}

func TestResearchAndContentDefaults(t *testing.T) {
	p, conn, runner := newProcessor()

	require.NoError(t, p.Handle(context.Background(), SubjectResearch, []byte(`{"topic":"espresso"}`)))
	require.NoError(t, p.Handle(context.Background(), SubjectContentGenerate, []byte(`{"task_id":"c1","topic":"latte art"}`)))

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "research_agent", runner.calls[0].agent)
	assert.Equal(t, "research_task", runner.calls[0].task.ID)
	assert.Equal(t, agentcore.TaskType("comprehensive_research"), runner.calls[0].task.Type)
	assert.Equal(t, "content_strategist", runner.calls[1].agent)
	assert.Equal(t, "c1", runner.calls[1].task.ID)
	assert.Equal(t, agentcore.TaskType("script_generation"), runner.calls[1].task.Type)

	sent := conn.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, SubjectResearchResponse, sent[0].subject)
	assert.Equal(t, SubjectContentResponse, sent[1].subject)
}

func TestRunnerErrorSkipsPublish(t *testing.T) {
	p, conn, runner := newProcessor()
	runner.err = agentcore.ErrUnknownAgent

	err := p.Handle(context.Background(), SubjectAITask, []byte(`{"agent_id":"ghost","task_type":"x"}`))
	assert.ErrorIs(t, err, agentcore.ErrUnknownAgent)
	assert.Empty(t, conn.sent())
}

func TestHandleUnknownSubject(t *testing.T) {
	p, _, _ := newProcessor()
	assert.Error(t, p.Handle(context.Background(), "video.delete", nil))
}

func TestRunDispatchesUntilCancelled(t *testing.T) {
	p, conn, runner := newProcessor()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return len(conn.handlers) == 4
	}, time.Second, 5*time.Millisecond)

	conn.deliver(SubjectResearch, []byte(`{"topic":"espresso"}`))
	conn.deliver(SubjectAITask, []byte(`{"agent_id":"manus","task_type":"strategic_planning"}`))

	require.Eventually(t, func() bool { return len(conn.sent()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	runner.mu.Lock()
	assert.Len(t, runner.calls, 2)
	runner.mu.Unlock()
}

func TestRunSubscribeFailure(t *testing.T) {
	p, conn, _ := newProcessor()
	conn.subErr = errors.New("no permission")

	err := p.Run(context.Background())
	assert.ErrorContains(t, err, "subscribe video.process")
}

func TestRunDropsMessagesDeliveredDuringShutdown(t *testing.T) {
	p, conn, runner := newProcessor()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	require.Eventually(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return len(conn.handlers) == 4
	}, time.Second, 5*time.Millisecond)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					conn.deliver(SubjectResearch, []byte(`{"topic":"espresso"}`))
				}
			}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	runner.mu.Lock()
	settled := len(runner.calls)
	runner.mu.Unlock()

	time.Sleep(10 * time.Millisecond)
	close(stop)
	wg.Wait()

	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Equal(t, settled, len(runner.calls))
}

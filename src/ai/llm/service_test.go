package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfeDurmaz16/assos/src/ai/core"
	"github.com/EfeDurmaz16/assos/src/ai/fallback"
	"github.com/EfeDurmaz16/assos/src/logging"
)

type scriptedClient struct {
	mu    sync.Mutex
	reply string
	err   error
	opts  []core.Options
}

func (c *scriptedClient) Complete(_ context.Context, _ string, opts core.Options) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = append(c.opts, opts)
	return c.reply, c.err
}

type countingEmbedder struct {
	calls int
	vec   []float32
	err   error
}

func (e *countingEmbedder) Embed(context.Context, string, string) ([]float32, error) {
	e.calls++
	return e.vec, e.err
}

func TestCompleteUsesConfiguredProvider(t *testing.T) {
	client := &scriptedClient{reply: "live answer"}
	svc := NewWithClients(Config{Provider: "claude"}, map[string]core.Client{"anthropic": client}, nil, nil)

	got := svc.Complete(context.Background(), Request{Prompt: "hi", SystemPrompt: "sys", MaxTokens: 42})
	assert.Equal(t, "live answer", got)
	require.Len(t, client.opts, 1)
	assert.Equal(t, "sys", client.opts[0].SystemPrompt)
	assert.Equal(t, 42, client.opts[0].MaxCompletionTokens)
	assert.Equal(t, 0.7, client.opts[0].Temperature)
	assert.Equal(t, "gpt-4", client.opts[0].Model)
}

func TestCompleteFallsBackOnError(t *testing.T) {
	client := &scriptedClient{err: errors.New("boom")}
	svc := NewWithClients(Config{}, map[string]core.Client{"openai": client}, nil, logging.Discard())

	got := svc.Complete(context.Background(), Request{Prompt: "write a script"})
	assert.Equal(t, fallback.Completion("write a script"), got)
}

func TestCompleteFallsBackOnBlankReply(t *testing.T) {
	client := &scriptedClient{reply: "   "}
	svc := NewWithClients(Config{}, map[string]core.Client{"gpt": client}, nil, nil)

	assert.Equal(t, fallback.Completion("research it"), svc.Complete(context.Background(), Request{Prompt: "research it"}))
}

func TestCompleteWithoutClients(t *testing.T) {
	svc := NewWithClients(Config{}, nil, nil, nil)
	assert.Equal(t, fallback.Completion("strategy"), svc.Complete(context.Background(), Request{Prompt: "strategy"}))
	assert.Empty(t, svc.Providers())
}

func TestEmbedCachesProviderVectors(t *testing.T) {
	emb := &countingEmbedder{vec: []float32{1, 2, 3}}
	svc := NewWithClients(Config{}, nil, emb, nil)

	first := svc.Embed(context.Background(), "coffee")
	first[0] = 99
	second := svc.Embed(context.Background(), "coffee")

	assert.Equal(t, 1, emb.calls)
	assert.Equal(t, []float32{1, 2, 3}, second)
}

func TestEmbedFallsBack(t *testing.T) {
	emb := &countingEmbedder{err: errors.New("down")}
	svc := NewWithClients(Config{EmbeddingDim: 8}, nil, emb, nil)

	assert.Equal(t, fallback.Embedding("tea", 8), svc.Embed(context.Background(), "tea"))

	offline := NewWithClients(Config{}, nil, nil, nil)
	assert.Len(t, offline.Embed(context.Background(), "tea"), 1536)
}

func TestNewWithoutKeysUsesFallback(t *testing.T) {
	svc := New(Config{}, logging.Discard())
	assert.Empty(t, svc.Providers())
}

func TestNormalizeProvider(t *testing.T) {
	assert.Equal(t, ProviderAnthropic, normalizeProvider(" Claude "))
	assert.Equal(t, ProviderOpenAI, normalizeProvider("GPT4"))
	assert.Equal(t, "gemini", normalizeProvider("gemini"))
}

// Package llm wraps the configured providers behind calls that never fail: any
// provider error degrades to the offline fallback.
package llm

import (
	"context"
	"log"
	"strings"

	"github.com/EfeDurmaz16/assos/src/ai/core"
	"github.com/EfeDurmaz16/assos/src/ai/fallback"
	"github.com/EfeDurmaz16/assos/src/ai/openai"
	_ "github.com/EfeDurmaz16/assos/src/ai/providers"
	"github.com/EfeDurmaz16/assos/src/logging"
	"github.com/OneOfOne/xxhash"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	defaultEmbeddingCache = 2048
)

// Config selects providers and generation defaults.
type Config struct {
	Provider       string
	Model          string
	MaxTokens      int
	Temperature    float64
	EmbeddingModel string
	EmbeddingDim   int

	OpenAIKey        string
	ClaudeKey        string
	OpenAIBaseURL    string
	AnthropicBaseURL string

	EmbeddingCacheSize int
}

// Request is a single completion call. Zero fields use the service defaults.
type Request struct {
	Prompt       string
	SystemPrompt string
	Model        string
	MaxTokens    int
	Temperature  float64
	Provider     string
}

// Service routes completions and embeddings to providers.
type Service struct {
	cfg        Config
	clients    map[string]core.Client
	embedder   core.Embedder
	embeddings *lru.Cache[uint64, []float32]
	logger     *log.Logger
}

// New builds provider clients for every configured API key.
func New(cfg Config, logger *log.Logger) *Service {
	logger = logging.OrDiscard(logger)
	clients := map[string]core.Client{}
	var embedder core.Embedder

	if cfg.OpenAIKey != "" {
		client, err := openai.NewClient(core.FactoryConfig{
			Provider:            ProviderOpenAI,
			Model:               cfg.Model,
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: cfg.MaxTokens,
			OpenAIKey:           cfg.OpenAIKey,
			BaseURL:             cfg.OpenAIBaseURL,
		})
		if err != nil {
			logger.Printf("llm: openai unavailable: %v", err)
		} else {
			clients[ProviderOpenAI] = client
			embedder = client
		}
	}
	if cfg.ClaudeKey != "" {
		client, err := core.NewClient(core.FactoryConfig{
			Provider:            ProviderAnthropic,
			Model:               cfg.Model,
			Temperature:         cfg.Temperature,
			MaxCompletionTokens: cfg.MaxTokens,
			ClaudeKey:           cfg.ClaudeKey,
			BaseURL:             cfg.AnthropicBaseURL,
		})
		if err != nil {
			logger.Printf("llm: anthropic unavailable: %v", err)
		} else {
			clients[ProviderAnthropic] = client
		}
	}
	if len(clients) == 0 {
		logger.Printf("llm: no provider keys configured, using offline fallback")
	}
	return NewWithClients(cfg, clients, embedder, logger)
}

// NewWithClients wires explicit clients. A nil embedder always uses fallback vectors.
func NewWithClients(cfg Config, clients map[string]core.Client, embedder core.Embedder, logger *log.Logger) *Service {
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = core.DefaultEmbeddingModel
	}
	if cfg.EmbeddingDim <= 0 {
		cfg.EmbeddingDim = 1536
	}
	size := cfg.EmbeddingCacheSize
	if size <= 0 {
		size = defaultEmbeddingCache
	}
	cache, _ := lru.New[uint64, []float32](size)

	normalized := make(map[string]core.Client, len(clients))
	for name, c := range clients {
		if c != nil {
			normalized[normalizeProvider(name)] = c
		}
	}

	return &Service{
		cfg:        cfg,
		clients:    normalized,
		embedder:   embedder,
		embeddings: cache,
		logger:     logging.OrDiscard(logger),
	}
}

// Complete returns the provider's reply, or canned offline text on any failure.
func (s *Service) Complete(ctx context.Context, req Request) string {
	provider := normalizeProvider(req.Provider)
	if provider == "" {
		provider = normalizeProvider(s.cfg.Provider)
	}
	client := s.clients[provider]
	if client == nil {
		return fallback.Completion(req.Prompt)
	}

	opts := core.Options{
		Model:               firstNonEmpty(req.Model, s.cfg.Model),
		Temperature:         s.cfg.Temperature,
		MaxCompletionTokens: s.cfg.MaxTokens,
		SystemPrompt:        req.SystemPrompt,
	}
	if req.Temperature != 0 {
		opts.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		opts.MaxCompletionTokens = req.MaxTokens
	}

	text, err := client.Complete(ctx, req.Prompt, opts)
	if err != nil {
		if logging.IsRateLimit(err) {
			s.logger.Printf("llm: %s rate limited, serving fallback", provider)
		} else {
			s.logger.Printf("llm: %s completion failed: %v", provider, err)
		}
		return fallback.Completion(req.Prompt)
	}
	if strings.TrimSpace(text) == "" {
		return fallback.Completion(req.Prompt)
	}
	return text
}

// Embed returns a vector for text. Provider vectors are cached; failures fall back
// to a deterministic pseudo-random vector.
func (s *Service) Embed(ctx context.Context, text string) []float32 {
	if s.embedder == nil {
		return fallback.Embedding(text, s.cfg.EmbeddingDim)
	}
	key := xxhash.Checksum64([]byte(s.cfg.EmbeddingModel + "\x00" + text))
	if cached, ok := s.embeddings.Get(key); ok {
		return cloneVector(cached)
	}
	vec, err := s.embedder.Embed(ctx, text, s.cfg.EmbeddingModel)
	if err != nil || len(vec) == 0 {
		if err != nil {
			s.logger.Printf("llm: embedding failed: %v", err)
		}
		return fallback.Embedding(text, s.cfg.EmbeddingDim)
	}
	s.embeddings.Add(key, cloneVector(vec))
	return vec
}

// Providers reports which providers have live clients.
func (s *Service) Providers() []string {
	out := make([]string, 0, len(s.clients))
	for name := range s.clients {
		out = append(out, name)
	}
	return out
}

func normalizeProvider(name string) string {
	switch key := strings.ToLower(strings.TrimSpace(name)); key {
	case "claude":
		return ProviderAnthropic
	case "gpt", "gpt4":
		return ProviderOpenAI
	default:
		return key
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func cloneVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	return out
}

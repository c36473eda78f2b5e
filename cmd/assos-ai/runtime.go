package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/EfeDurmaz16/assos/src/agents"
	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
	"github.com/EfeDurmaz16/assos/src/ai/llm"
	"github.com/EfeDurmaz16/assos/src/cache"
	"github.com/EfeDurmaz16/assos/src/config"
	"github.com/EfeDurmaz16/assos/src/data"
	"github.com/EfeDurmaz16/assos/src/logging"
	"github.com/EfeDurmaz16/assos/src/metrics"
	"github.com/EfeDurmaz16/assos/src/vector"
)

// runtime holds every long-lived handle the commands share.
type runtime struct {
	cfg     config.ServiceConfig
	agents  config.AgentsConfig
	db      *gorm.DB
	history *data.History
	cache   cache.Store
	index   vector.Index
	llm     *llm.Service
	metrics *metrics.Metrics
	manager *agents.Manager
	logger  *log.Logger
	closers []func() error
}

func buildRuntime(ctx context.Context, reg prometheus.Registerer) (*runtime, error) {
	logger := logging.New("assos")
	if err := config.Init(); err != nil {
		return nil, err
	}
	rt := &runtime{cfg: config.LoadServiceConfig(), logger: logger}

	if rt.cfg.MySQLDSN != "" {
		db, err := data.ConnectMySQL(rt.cfg.MySQLDSN)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		if err := data.Migrate(db); err != nil {
			return nil, err
		}
		if err := config.LoadDatabaseSettings(db); err != nil {
			logger.Printf("settings unavailable, using environment: %v", err)
		}
		rt.db = db
		rt.history = data.NewHistory(db)
		// DB settings may override the connection values read above.
		rt.cfg = config.LoadServiceConfig()
	} else {
		logger.Printf("MYSQL_DSN not set; task history disabled")
	}
	rt.agents = config.LoadAgentsConfig()

	rt.cache = rt.openCache(ctx)

	index, err := rt.openIndex()
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.index = index

	ai := rt.agents.AIConfig
	rt.llm = llm.New(llm.Config{
		Provider:         ai.Provider,
		Model:            ai.Model,
		MaxTokens:        ai.MaxTokens,
		Temperature:      ai.Temperature,
		EmbeddingModel:   ai.EmbeddingModel,
		EmbeddingDim:     vector.Dimension,
		OpenAIKey:        ai.OpenAIKey,
		ClaudeKey:        ai.ClaudeKey,
		OpenAIBaseURL:    ai.OpenAIBaseURL,
		AnthropicBaseURL: ai.AnthropicBaseURL,
	}, logging.New("llm"))

	rt.metrics = metrics.MustNewMetrics(reg)

	deps := agentcore.RuntimeDeps{
		Cache:       rt.cache,
		Index:       rt.index,
		LLM:         rt.llm,
		Observer:    rt.metrics,
		Logger:      logging.New("agents"),
		TaskTimeout: rt.agents.TaskTimeout,
	}
	if rt.history != nil {
		deps.History = rt.history
	}

	manager, err := agents.StartAll(rt.agents, deps)
	if err != nil {
		rt.Close()
		return nil, err
	}
	if manager == nil {
		manager = agents.NewManager()
	}
	rt.manager = manager
	return rt, nil
}

func (rt *runtime) openCache(ctx context.Context) cache.Store {
	if rt.cfg.CacheBackend == "memory" {
		return cache.NewMemory(10 * time.Minute)
	}
	rdb, err := cache.NewRedisClient(rt.cfg.RedisURL)
	if err == nil {
		store := cache.NewRedis(rdb)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = store.Ping(pingCtx)
		cancel()
		if err == nil {
			rt.closers = append(rt.closers, store.Close)
			return store
		}
		_ = rdb.Close()
	}
	rt.logger.Printf("redis unavailable (%v); using in-process cache", err)
	return cache.NewMemory(10 * time.Minute)
}

func (rt *runtime) openIndex() (vector.Index, error) {
	switch rt.cfg.VectorBackend {
	case "chromem":
		idx, err := vector.NewChromem(rt.cfg.VectorPersistDir)
		if err != nil {
			return nil, fmt.Errorf("vector: %w", err)
		}
		return idx, nil
	case "qdrant", "":
		idx, err := vector.NewQdrant(vector.QdrantConfig{
			URL:    rt.cfg.QdrantURL,
			APIKey: rt.cfg.QdrantAPIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("vector: %w", err)
		}
		return idx, nil
	}
	return nil, fmt.Errorf("vector: unknown backend %q", rt.cfg.VectorBackend)
}

// Bootstrap creates the semantic-index collections and checks the cache.
func (rt *runtime) Bootstrap(ctx context.Context) error {
	var errs []error
	if err := rt.cache.Ping(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cache: %w", err))
	}
	if err := vector.Bootstrap(ctx, rt.index); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (rt *runtime) Close() {
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil {
			rt.logger.Printf("close: %v", err)
		}
	}
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

package core

import (
	"log"
	"time"

	"github.com/EfeDurmaz16/assos/src/cache"
	"github.com/EfeDurmaz16/assos/src/vector"
)

// RuntimeDeps captures shared resources that agents and controllers opt into.
type RuntimeDeps struct {
	Cache       cache.Store
	Index       vector.Index
	LLM         LLM
	History     HistorySink
	Observer    Observer
	Logger      *log.Logger
	TaskTimeout time.Duration
}

// NewController wraps agent with a controller wired to these dependencies.
func (d RuntimeDeps) NewController(agent Agent) *Controller {
	var embedder Embedder
	if d.LLM != nil {
		embedder = d.LLM
	}
	loader := NewContextLoader(d.Cache, d.Index, embedder)
	store := NewResultStore(d.Cache, d.Index, embedder, d.History)
	return NewController(agent, loader, store,
		WithLogger(d.Logger),
		WithObserver(d.Observer),
		WithTimeout(d.TaskTimeout),
	)
}

package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/EfeDurmaz16/assos/src/cache"
	"github.com/EfeDurmaz16/assos/src/vector"
)

const contextSearchLimit = 5

// Bundle is the per-task context assembled before execution.
type Bundle struct {
	CacheHit     map[string]any
	SimilarItems []map[string]any
}

// AsMap renders the bundle in the shape merged into the working input.
func (b Bundle) AsMap() map[string]any {
	out := map[string]any{}
	if b.CacheHit != nil {
		out["cache_hit"] = b.CacheHit
	}
	if len(b.SimilarItems) > 0 {
		items := make([]any, 0, len(b.SimilarItems))
		for _, item := range b.SimilarItems {
			items = append(items, item)
		}
		out["similar_items"] = items
	}
	return out
}

// ContextLoader gathers cached context and semantically similar prior work.
type ContextLoader struct {
	cache    cache.Store
	index    vector.Index
	embedder Embedder
}

// NewContextLoader accepts nil dependencies; the matching step is skipped.
func NewContextLoader(store cache.Store, index vector.Index, embedder Embedder) *ContextLoader {
	return &ContextLoader{cache: store, index: index, embedder: embedder}
}

// Load builds the bundle for task. On failure it returns whatever was gathered
// alongside the error.
func (l *ContextLoader) Load(ctx context.Context, agentID string, task Task) (Bundle, error) {
	var bundle Bundle
	if l == nil {
		return bundle, nil
	}
	var errs []error

	if l.cache != nil {
		raw, ok, err := l.cache.Get(ctx, cache.ContextKey(agentID, task.ID))
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("context cache: %w", err))
		case ok:
			bundle.CacheHit = decodeCached(raw)
		}
	}

	collection, ok := Bucket(task.Type)
	if ok && l.index != nil && l.embedder != nil {
		items, err := l.similar(ctx, collection, task.Input)
		if err != nil {
			errs = append(errs, err)
		}
		bundle.SimilarItems = items
	}

	return bundle, errors.Join(errs...)
}

func (l *ContextLoader) similar(ctx context.Context, collection string, input map[string]any) ([]map[string]any, error) {
	text, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("context encode input: %w", err)
	}
	vec := l.embedder.Embed(ctx, string(text))
	hits, err := l.index.Search(ctx, collection, vec, contextSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("context search %s: %w", collection, err)
	}
	items := make([]map[string]any, 0, len(hits))
	for _, hit := range hits {
		items = append(items, hit.Payload)
	}
	return items, nil
}

func decodeCached(raw []byte) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		return obj
	}
	return map[string]any{"raw": string(raw)}
}

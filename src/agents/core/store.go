package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/EfeDurmaz16/assos/src/cache"
	"github.com/EfeDurmaz16/assos/src/vector"
	"github.com/google/uuid"
)

// ResultTTL is how long a task outcome stays in the short-term cache.
const ResultTTL = time.Hour

// ResultStore persists outcomes to the cache, the semantic index and an optional history sink.
type ResultStore struct {
	cache    cache.Store
	index    vector.Index
	embedder Embedder
	history  HistorySink
	now      func() time.Time
	newID    func() string
}

func NewResultStore(store cache.Store, index vector.Index, embedder Embedder, history HistorySink) *ResultStore {
	return &ResultStore{
		cache:    store,
		index:    index,
		embedder: embedder,
		history:  history,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Store writes every configured sink. A failing sink does not stop the others;
// all failures are returned joined.
func (s *ResultStore) Store(ctx context.Context, agentID, agentName string, task Task, resp *Response) error {
	if s == nil || resp == nil {
		return nil
	}
	var errs []error

	if s.cache != nil {
		if encoded, err := json.Marshal(resp); err != nil {
			errs = append(errs, fmt.Errorf("result encode: %w", err))
		} else if err := s.cache.Set(ctx, cache.ResultKey(agentID, task.ID), encoded, ResultTTL); err != nil {
			errs = append(errs, fmt.Errorf("result cache: %w", err))
		}
	}

	if collection, ok := Bucket(task.Type); ok && resp.Result != nil && s.index != nil && s.embedder != nil {
		if err := s.upsertResult(ctx, collection, agentID, agentName, task, resp); err != nil {
			errs = append(errs, err)
		}
	}

	if s.history != nil {
		if err := s.history.Record(ctx, agentID, agentName, task, resp); err != nil {
			errs = append(errs, fmt.Errorf("result history: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *ResultStore) upsertResult(ctx context.Context, collection, agentID, agentName string, task Task, resp *Response) error {
	encoded, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("result encode for index: %w", err)
	}
	point := vector.Point{
		ID:     s.newID(),
		Vector: s.embedder.Embed(ctx, string(encoded)),
		Payload: map[string]any{
			"task_id":    task.ID,
			"agent_id":   agentID,
			"agent_name": agentName,
			"task_type":  string(task.Type),
			"input":      task.Input,
			"result":     resp.Result,
			"timestamp":  s.now().UTC().Format(time.RFC3339Nano),
		},
	}
	if err := s.index.Upsert(ctx, collection, []vector.Point{point}); err != nil {
		return fmt.Errorf("result index %s: %w", collection, err)
	}
	return nil
}

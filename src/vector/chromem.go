package vector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"
)

var errNoEmbedder = errors.New("vector: documents must carry precomputed embeddings")

// ChromemIndex is an embedded Index backed by chromem-go.
type ChromemIndex struct {
	db *chromem.DB
	mu sync.Mutex
}

// NewChromem opens an in-memory index, or a persistent one when persistDir is set.
func NewChromem(persistDir string) (*ChromemIndex, error) {
	if persistDir == "" {
		return &ChromemIndex{db: chromem.NewDB()}, nil
	}
	db, err := chromem.NewPersistentDB(persistDir, false)
	if err != nil {
		return nil, fmt.Errorf("vector: open chromem at %s: %w", persistDir, err)
	}
	return &ChromemIndex{db: db}, nil
}

func noEmbedding(context.Context, string) ([]float32, error) {
	return nil, errNoEmbedder
}

func (c *ChromemIndex) EnsureCollection(_ context.Context, name string, dim int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.db.GetOrCreateCollection(name, map[string]string{
		"distance":  "cosine",
		"dimension": strconv.Itoa(dim),
	}, noEmbedding)
	return err
}

func (c *ChromemIndex) collection(name string) *chromem.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.GetCollection(name, noEmbedding)
}

func (c *ChromemIndex) Search(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error) {
	col := c.collection(collection)
	if col == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	// chromem rejects nResults larger than the collection.
	n := min(limit, col.Count())
	if n <= 0 {
		return nil, nil
	}
	results, err := col.QueryEmbedding(ctx, vector, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("vector: query %s: %w", collection, err)
	}
	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		payload := map[string]any{}
		if r.Content != "" {
			if err := json.Unmarshal([]byte(r.Content), &payload); err != nil {
				payload = map[string]any{"content": r.Content}
			}
		}
		hits = append(hits, Hit{ID: r.ID, Score: r.Similarity, Payload: payload})
	}
	return hits, nil
}

func (c *ChromemIndex) Upsert(ctx context.Context, collection string, points []Point) error {
	col := c.collection(collection)
	if col == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	for _, p := range points {
		content, err := json.Marshal(p.Payload)
		if err != nil {
			return fmt.Errorf("vector: encode payload %s: %w", p.ID, err)
		}
		doc := chromem.Document{
			ID:        p.ID,
			Metadata:  stringMetadata(p.Payload),
			Embedding: p.Vector,
			Content:   string(content),
		}
		if err := col.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("vector: add %s to %s: %w", p.ID, collection, err)
		}
	}
	return nil
}

// Count reports the number of documents in a collection, or 0 when it does not exist.
func (c *ChromemIndex) Count(collection string) int {
	col := c.collection(collection)
	if col == nil {
		return 0
	}
	return col.Count()
}

func stringMetadata(payload map[string]any) map[string]string {
	out := map[string]string{}
	for k, v := range payload {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

package vector

import (
	"context"
	"errors"
	"fmt"
)

// Dimension is the embedding width every collection is created with.
const Dimension = 1536

// Topic buckets persisted in the semantic index.
const (
	CollectionVideoScripts    = "video_scripts"
	CollectionResearchData    = "research_data"
	CollectionPerformanceData = "performance_data"
)

// Collections lists every bucket created at bootstrap.
var Collections = []string{
	CollectionVideoScripts,
	CollectionResearchData,
	CollectionPerformanceData,
}

// ErrUnknownCollection is returned when searching or writing a collection that was never created.
var ErrUnknownCollection = errors.New("vector: unknown collection")

// Point is a single entry written to the index.
type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// Hit is a ranked search result.
type Hit struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// Index is a cosine-similarity store partitioned into named collections.
type Index interface {
	EnsureCollection(ctx context.Context, name string, dim int) error
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error)
	Upsert(ctx context.Context, collection string, points []Point) error
}

// Bootstrap creates every known collection. Existing collections are left untouched.
func Bootstrap(ctx context.Context, idx Index) error {
	if idx == nil {
		return errors.New("vector: nil index")
	}
	var errs []error
	for _, name := range Collections {
		if err := idx.EnsureCollection(ctx, name, Dimension); err != nil {
			errs = append(errs, fmt.Errorf("vector: ensure %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

package vector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/EfeDurmaz16/assos/src/logging"
	"github.com/EfeDurmaz16/assos/src/webclient"
)

// QdrantConfig points a QdrantIndex at a Qdrant REST endpoint.
type QdrantConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	// Attempts bounds retries for transient failures. Defaults to 3.
	Attempts int
}

// QdrantIndex is an Index backed by the Qdrant HTTP API.
type QdrantIndex struct {
	base       string
	apiKey     string
	attempts   int
	httpClient *http.Client
}

func NewQdrant(cfg QdrantConfig) (*QdrantIndex, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, errors.New("vector: qdrant url not configured")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("vector: qdrant url: %w", err)
	}
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	return &QdrantIndex{
		base:       base,
		apiKey:     cfg.APIKey,
		attempts:   attempts,
		httpClient: webclient.NewDefault(cfg.Timeout),
	}, nil
}

func (q *QdrantIndex) EnsureCollection(ctx context.Context, name string, dim int) error {
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dim,
			"distance": "Cosine",
		},
	}
	_, err := q.call(ctx, http.MethodPut, "/collections/"+url.PathEscape(name), body)
	if err == nil || alreadyExists(err) {
		return nil
	}
	return fmt.Errorf("vector: create collection %s: %w", name, err)
}

func (q *QdrantIndex) Search(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, nil
	}
	raw, err := q.call(ctx, http.MethodPost, "/collections/"+url.PathEscape(collection)+"/points/search", map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}
		return nil, fmt.Errorf("vector: search %s: %w", collection, err)
	}

	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("vector: decode search response: %w", err)
	}
	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, Hit{ID: fmt.Sprint(r.ID), Score: r.Score, Payload: r.Payload})
	}
	return hits, nil
}

func (q *QdrantIndex) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	wire := make([]map[string]any, 0, len(points))
	for _, p := range points {
		wire = append(wire, map[string]any{
			"id":      p.ID,
			"vector":  p.Vector,
			"payload": p.Payload,
		})
	}
	_, err := q.call(ctx, http.MethodPut, "/collections/"+url.PathEscape(collection)+"/points?wait=true", map[string]any{
		"points": wire,
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
		}
		return fmt.Errorf("vector: upsert %s: %w", collection, err)
	}
	return nil
}

func (q *QdrantIndex) call(ctx context.Context, method, path string, body any) ([]byte, error) {
	headers := map[string]string{}
	if q.apiKey != "" {
		headers["api-key"] = q.apiKey
	}
	return webclient.DoJSON(ctx, q.httpClient, webclient.JSONRequest{
		Method:       method,
		URL:          q.base + path,
		Headers:      headers,
		Body:         body,
		Attempts:     q.attempts,
		InitialDelay: 500 * time.Millisecond,
	})
}

func alreadyExists(err error) bool {
	var se *logging.StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status == http.StatusConflict || strings.Contains(strings.ToLower(se.Body), "already exists")
}

func isNotFound(err error) bool {
	var se *logging.StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned when no backend is configured.
var ErrUnavailable = errors.New("cache: unavailable")

// Store is the short-term key/value cache used for agent context and results.
type Store interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key. A ttl <= 0 keeps the entry until evicted.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}

const (
	contextPrefix = "agent_context"
	resultPrefix  = "agent_result"
)

// ContextKey is the key an agent's precomputed context lives under.
func ContextKey(agentID, taskID string) string {
	return fmt.Sprintf("%s:%s:%s", contextPrefix, agentID, taskID)
}

// ResultKey is the key a task outcome is cached under.
func ResultKey(agentID, taskID string) string {
	return fmt.Sprintf("%s:%s:%s", resultPrefix, agentID, taskID)
}

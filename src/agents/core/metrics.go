package core

import "sync"

const (
	// MetricsWindow bounds the confidence history kept per agent.
	MetricsWindow = 100
	// SuccessThreshold is the confidence above which a task counts as a success.
	SuccessThreshold = 0.7
	// DefaultConfidence is recorded when an outcome carries no confidence score.
	DefaultConfidence = 0.8
)

// Tracker maintains rolling performance statistics for one agent instance.
type Tracker struct {
	mu sync.Mutex
	m  PerformanceMetrics
}

func NewTracker() *Tracker {
	return &Tracker{m: PerformanceMetrics{ConfidenceScores: make([]float64, 0, MetricsWindow)}}
}

// Update folds one finished task into the statistics.
func (t *Tracker) Update(executionTime, confidence float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.m.TasksCompleted++
	n := float64(t.m.TasksCompleted)
	t.m.AvgExecutionTime = (t.m.AvgExecutionTime*(n-1) + executionTime) / n

	scores := append(t.m.ConfidenceScores, confidence)
	if over := len(scores) - MetricsWindow; over > 0 {
		copy(scores, scores[over:])
		scores = scores[:MetricsWindow]
	}
	t.m.ConfidenceScores = scores

	successes := 0
	for _, s := range scores {
		if s > SuccessThreshold {
			successes++
		}
	}
	t.m.SuccessRate = float64(successes) / float64(len(scores))
}

// Snapshot returns a copy safe to hand to callers.
func (t *Tracker) Snapshot() PerformanceMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.m
	out.ConfidenceScores = make([]float64, len(t.m.ConfidenceScores))
	copy(out.ConfidenceScores, t.m.ConfidenceScores)
	return out
}

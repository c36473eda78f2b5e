// Package metrics exports per-agent task activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	agentcore "github.com/EfeDurmaz16/assos/src/agents/core"
)

const (
	namespace = "assos"
	subsystem = "agents"
)

// Metrics implements agentcore.Observer.
type Metrics struct {
	tasks          *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	successRate    *prometheus.GaugeVec
	tasksCompleted *prometheus.GaugeVec
	avgExecution   *prometheus.GaugeVec
}

// MustNewMetrics registers the collectors with reg, reusing collectors that are
// already registered under the same names.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_total",
			Help:      "Processed tasks by agent, task type and terminal status.",
		}, []string{"agent", "task_type", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "task_duration_seconds",
			Help:      "Wall-clock time spent processing a task.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"agent", "task_type"}),
		successRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "success_rate",
			Help:      "Share of recent confidence scores strictly above the success threshold.",
		}, []string{"agent"}),
		tasksCompleted: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tasks_completed",
			Help:      "Tasks counted by the agent's performance tracker.",
		}, []string{"agent"}),
		avgExecution: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "avg_execution_seconds",
			Help:      "Running mean execution time reported by the tracker.",
		}, []string{"agent"}),
	}

	m.tasks = register(reg, m.tasks)
	m.duration = register(reg, m.duration)
	m.successRate = register(reg, m.successRate)
	m.tasksCompleted = register(reg, m.tasksCompleted)
	m.avgExecution = register(reg, m.avgExecution)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// ObserveTask records one processed task and the agent's tracker snapshot.
func (m *Metrics) ObserveTask(agentKey string, taskType agentcore.TaskType, resp *agentcore.Response, snapshot agentcore.PerformanceMetrics) {
	if m == nil || resp == nil {
		return
	}
	m.tasks.WithLabelValues(agentKey, string(taskType), string(resp.Status)).Inc()
	if resp.ExecutionTime != nil {
		m.duration.WithLabelValues(agentKey, string(taskType)).Observe(*resp.ExecutionTime)
	}
	m.successRate.WithLabelValues(agentKey).Set(snapshot.SuccessRate)
	m.tasksCompleted.WithLabelValues(agentKey).Set(float64(snapshot.TasksCompleted))
	m.avgExecution.WithLabelValues(agentKey).Set(snapshot.AvgExecutionTime)
}

package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownAgent is returned when a caller asks for an unregistered agent.
var ErrUnknownAgent = errors.New("agents: unknown agent")

// Manager keeps the registered controllers and routes tasks to them by agent key.
type Manager struct {
	mu          sync.RWMutex
	controllers map[string]*Controller
	order       []string
}

// NewManager returns an empty manager ready for registration.
func NewManager() *Manager {
	return &Manager{controllers: map[string]*Controller{}}
}

// Add registers a controller under its agent key.
func (m *Manager) Add(c *Controller) error {
	if c == nil {
		return fmt.Errorf("agents.Manager: nil controller provided")
	}
	key := normalizeKey(c.Key())
	if key == "" {
		return fmt.Errorf("agents.Manager: agent missing key")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.controllers[key]; exists {
		return fmt.Errorf("agents.Manager: agent %q already registered", c.Key())
	}
	m.controllers[key] = c
	m.order = append(m.order, key)
	return nil
}

// Controller fetches a registered controller by key.
func (m *Manager) Controller(key string) (*Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.controllers[normalizeKey(key)]
	if c == nil {
		return nil, ErrUnknownAgent
	}
	return c, nil
}

// Process routes task to the named agent. The only error is ErrUnknownAgent;
// task failures are reported in the Response.
func (m *Manager) Process(ctx context.Context, key string, task Task) (*Response, error) {
	c, err := m.Controller(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, key)
	}
	return c.ProcessTask(ctx, task), nil
}

// Describe returns capabilities for all registered agents in registration order.
func (m *Manager) Describe() []Capabilities {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Capabilities, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.controllers[key].Capabilities())
	}
	return out
}

// Keys lists registered agent keys in registration order.
func (m *Manager) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// Metrics returns the labelled metrics of one agent.
func (m *Manager) Metrics(key string) (AgentMetrics, error) {
	c, err := m.Controller(key)
	if err != nil {
		return AgentMetrics{}, err
	}
	return c.AgentMetrics(), nil
}

func normalizeKey(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

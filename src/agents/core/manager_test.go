package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerRoutesByKey(t *testing.T) {
	m := NewManager()
	agent := newStubAgent()
	require.NoError(t, m.Add(NewController(agent, nil, nil)))

	resp, err := m.Process(context.Background(), " STUB ", Task{ID: "t1", Type: "script_generation"})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)

	metrics, err := m.Metrics("stub")
	require.NoError(t, err)
	assert.Equal(t, 1, metrics.TasksCompleted)
	assert.Equal(t, agent.ID(), metrics.AgentID)
}

func TestManagerUnknownAgent(t *testing.T) {
	m := NewManager()

	_, err := m.Process(context.Background(), "nobody", Task{ID: "t1"})
	assert.ErrorIs(t, err, ErrUnknownAgent)

	_, err = m.Metrics("nobody")
	assert.ErrorIs(t, err, ErrUnknownAgent)
}

func TestManagerRejectsDuplicates(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Add(NewController(newStubAgent(), nil, nil)))
	assert.Error(t, m.Add(NewController(newStubAgent(), nil, nil)))
	assert.Error(t, m.Add(nil))
}

func TestManagerDescribeKeepsRegistrationOrder(t *testing.T) {
	m := NewManager()
	first := newStubAgent()
	second := newStubAgent()
	second.Identity = NewIdentity("other", "Other Agent", "other")
	require.NoError(t, m.Add(NewController(first, nil, nil)))
	require.NoError(t, m.Add(NewController(second, nil, nil)))

	caps := m.Describe()
	require.Len(t, caps, 2)
	assert.Equal(t, "Stub Agent", caps[0].Name)
	assert.Equal(t, "Other Agent", caps[1].Name)
	assert.Equal(t, []string{"stub", "other"}, m.Keys())
}

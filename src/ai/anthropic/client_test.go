package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfeDurmaz16/assos/src/ai/core"
)

func TestCompleteMapsModelAndSystem(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"first"},{"type":"text","text":"second"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(core.FactoryConfig{ClaudeKey: "key", Model: "gpt-4", BaseURL: srv.URL})
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "hello", core.Options{SystemPrompt: "be kind"})
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", text)
	assert.Equal(t, core.ClaudeOpus, got["model"])
	assert.Equal(t, "be kind", got["system"])
}

func TestCompleteEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(core.FactoryConfig{ClaudeKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), "hello", core.Options{})
	assert.ErrorContains(t, err, "empty response")
}

func TestRegisteredUnderClaudeAlias(t *testing.T) {
	_, err := core.NewClient(core.FactoryConfig{Provider: "claude"})
	assert.ErrorContains(t, err, "API key not configured")
}

package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EfeDurmaz16/assos/src/ai/core"
)

func TestCompletionKeywords(t *testing.T) {
	cases := map[string]string{
		"Do some RESEARCH on coffee":   researchResponse,
		"write a script about espresso": scriptResponse,
		"Create a content strategy":      strategyResponse,
	}
	for prompt, want := range cases {
		assert.Equal(t, want, Completion(prompt), prompt)
	}
	assert.Contains(t, Completion("hello there"), "Offline response for: hello there...")
}

func TestEmbeddingDeterministic(t *testing.T) {
	a := Embedding("coffee", 64)
	b := Embedding("coffee", 64)
	c := Embedding("tea", 64)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, Embedding("x", 0), 1536)
	for _, v := range a {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestRegisteredAsProvider(t *testing.T) {
	client, err := core.NewClient(core.FactoryConfig{Provider: "mock"})
	require.NoError(t, err)

	text, err := client.Complete(context.Background(), "research plan", core.Options{})
	require.NoError(t, err)
	assert.Equal(t, researchResponse, text)
}

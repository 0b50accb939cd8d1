package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGeneratorFactory(t *testing.T) {
	factory := DefaultGeneratorFactory(Models{
		OpenAI: "gpt-4",
		Claude: "claude-3-opus-20240229",
		Gemini: "gemini-1.5-flash",
	})

	for _, provider := range []string{"openai", "claude", "gemini"} {
		t.Run(provider, func(t *testing.T) {
			g, err := factory(provider, "test-key")
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}

	t.Run("unknown provider", func(t *testing.T) {
		_, err := factory("mystery", "test-key")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unsupported provider")
	})
}

func TestDefaultEmbedderFactory(t *testing.T) {
	factory := DefaultEmbedderFactory(Models{Embedding: "text-embedding-3-small"})
	assert.NotNil(t, factory("test-key"))
}

package http

import (
	"fmt"

	"github.com/w-h-a/ragserver/embedder"
	openaiembedder "github.com/w-h-a/ragserver/embedder/openai"
	"github.com/w-h-a/ragserver/generator"
	"github.com/w-h-a/ragserver/generator/anthropic"
	"github.com/w-h-a/ragserver/generator/google"
	"github.com/w-h-a/ragserver/generator/openai"
)

// Models fixes the model identifier used per provider.
type Models struct {
	Embedding string
	OpenAI    string
	Claude    string
	Gemini    string
}

// DefaultEmbedderFactory builds OpenAI embedders with the resolved key.
func DefaultEmbedderFactory(models Models) EmbedderFactory {
	return func(apiKey string) embedder.Embedder {
		return openaiembedder.NewEmbedder(
			embedder.WithApiKey(apiKey),
			embedder.WithModel(models.Embedding),
		)
	}
}

// DefaultGeneratorFactory wires the real chat providers.
func DefaultGeneratorFactory(models Models) GeneratorFactory {
	return func(provider string, apiKey string) (generator.Generator, error) {
		switch provider {
		case "openai":
			return openai.NewGenerator(
				generator.WithApiKey(apiKey),
				generator.WithModel(models.OpenAI),
			), nil
		case "claude":
			return anthropic.NewGenerator(
				generator.WithApiKey(apiKey),
				generator.WithModel(models.Claude),
			), nil
		case "gemini":
			return google.NewGenerator(
				generator.WithApiKey(apiKey),
				generator.WithModel(models.Gemini),
			), nil
		default:
			return nil, fmt.Errorf("Unsupported provider: %s", provider)
		}
	}
}

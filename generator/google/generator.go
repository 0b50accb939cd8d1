package google

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/w-h-a/ragserver/generator"
	genaiopt "google.golang.org/api/option"
)

type googleGenerator struct {
	options generator.Options
	once    sync.Once
	client  *genai.Client
	initErr error
}

func (g *googleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(
			context.Background(),
			genaiopt.WithAPIKey(g.options.ApiKey),
		)
	})
	if g.initErr != nil {
		return "", g.initErr
	}

	model := g.client.GenerativeModel(g.options.Model)
	rsp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil || len(rsp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no response from Google")
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	return &googleGenerator{
		options: options,
	}
}

// Package rag orchestrates the chunk-embed-retrieve pipeline: uploads replace
// the knowledge base, queries retrieve the most relevant chunks and hand an
// assembled prompt to an LLM provider.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/w-h-a/ragserver/chunker"
	"github.com/w-h-a/ragserver/embedder"
	"github.com/w-h-a/ragserver/generator"
	"github.com/w-h-a/ragserver/knowledge"
)

// ErrEmptyKnowledgeBase mirrors knowledge.ErrEmptyKnowledgeBase for callers
// that only import this package.
var ErrEmptyKnowledgeBase = knowledge.ErrEmptyKnowledgeBase

// chunkSeparator joins retrieved chunks inside the prompt context block. The
// blank-line-delimited rule is unlikely to occur inside ordinary chunk text.
const chunkSeparator = "\n\n---\n\n"

const promptTemplate = "Based ONLY on the following context, answer the question.\n\nContext:\n%s\n\nQuestion: %s\n\nAnswer:"

type Service struct {
	base     *knowledge.Base
	splitter *chunker.Chunker
	topK     int
	log      *logrus.Entry
}

func New(base *knowledge.Base, splitter *chunker.Chunker, topK int, log *logrus.Entry) *Service {
	if topK < 1 {
		topK = knowledge.DefaultTopK
	}

	return &Service{
		base:     base,
		splitter: splitter,
		topK:     topK,
		log:      log,
	}
}

// Upload decodes the content, chunks it, and replaces the knowledge base
// wholesale. Returns the number of chunks created.
func (s *Service) Upload(ctx context.Context, filename string, content []byte) (int, error) {
	text, err := chunker.Decode(content)
	if err != nil {
		return 0, fmt.Errorf("failed to read %q: %w", filename, err)
	}

	chunks := s.splitter.Chunk(text)
	s.base.Reset(filename, chunks)

	s.log.WithFields(logrus.Fields{
		"file":   filename,
		"chunks": len(chunks),
	}).Info("knowledge base replaced")

	return len(chunks), nil
}

// Query embeds the query, ranks the knowledge base's chunks by cosine
// similarity, and asks the generator to answer from the top-K chunks.
// The embedder is per-request because the embedding credential may arrive in
// the request body; chunk embeddings are still cached across requests.
func (s *Service) Query(ctx context.Context, query string, e embedder.Embedder, g generator.Generator) (string, error) {
	if len(strings.TrimSpace(query)) == 0 {
		return "", errors.New("query is required")
	}

	view, err := s.base.Materialize(ctx, e)
	if err != nil {
		return "", err
	}

	queryVec, err := e.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed query: %w", err)
	}

	matches := knowledge.TopK(queryVec, view.Vectors, s.topK)

	selected := make([]string, 0, len(matches))
	for _, match := range matches {
		selected = append(selected, view.Chunks[match.Index].Text)
	}

	prompt := fmt.Sprintf(promptTemplate, strings.Join(selected, chunkSeparator), query)

	s.log.WithFields(logrus.Fields{
		"file":    view.Name,
		"matches": len(matches),
	}).Debug("assembled retrieval context")

	answer, err := g.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("provider failed: %w", err)
	}

	return answer, nil
}

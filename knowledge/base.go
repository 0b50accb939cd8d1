// Package knowledge holds the process-wide knowledge base: the current
// document's chunks, their lazily computed embeddings, and top-K ranking.
package knowledge

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/w-h-a/ragserver/chunker"
	"github.com/w-h-a/ragserver/embedder"
)

// ErrEmptyKnowledgeBase is returned when a query arrives before any upload.
var ErrEmptyKnowledgeBase = errors.New("knowledge base is empty")

// View is a consistent read of one knowledge-base generation: chunks and
// vectors are index-aligned and never mutated after being handed out.
type View struct {
	Name    string
	Chunks  []chunker.Chunk
	Vectors [][]float32
}

// Base is the single mutable knowledge-base record. A Reset replaces it
// wholesale; embeddings are computed at most once per generation. All state
// transitions happen behind one mutex.
type Base struct {
	mtx        sync.Mutex
	generation string
	name       string
	chunks     []chunker.Chunk
	vectors    [][]float32
	populating chan struct{}
}

func New() *Base {
	return &Base{}
}

// Reset replaces the document wholesale: new chunks, cleared embeddings, new
// generation. A population already in flight for the old generation will
// discard its result.
func (b *Base) Reset(name string, chunks []chunker.Chunk) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.generation = uuid.New().String()
	b.name = name
	b.chunks = chunks
	b.vectors = nil
}

// Name returns the current document name.
func (b *Base) Name() string {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.name
}

// Len returns the current chunk count.
func (b *Base) Len() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return len(b.chunks)
}

// Populated reports whether the current generation's embeddings are cached.
func (b *Base) Populated() bool {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.vectors != nil
}

// Materialize returns a view with embeddings populated, computing them on
// first use. Exactly one caller per generation performs the embedding calls;
// concurrent callers wait for that population and reuse its result. On
// failure or cancellation the cache rolls back to empty so the next query can
// retry. A Reset racing with population wins: the stale result is discarded
// and population restarts against the new chunks.
func (b *Base) Materialize(ctx context.Context, e embedder.Embedder) (View, error) {
	for {
		b.mtx.Lock()

		if len(b.chunks) == 0 {
			b.mtx.Unlock()
			return View{}, ErrEmptyKnowledgeBase
		}

		if b.vectors != nil {
			view := View{Name: b.name, Chunks: b.chunks, Vectors: b.vectors}
			b.mtx.Unlock()
			return view, nil
		}

		if b.populating != nil {
			wait := b.populating
			b.mtx.Unlock()

			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return View{}, ctx.Err()
			}
		}

		done := make(chan struct{})
		b.populating = done
		generation := b.generation
		chunks := b.chunks
		b.mtx.Unlock()

		vectors, err := embedAll(ctx, e, chunks)

		b.mtx.Lock()
		if b.populating == done {
			b.populating = nil
		}
		close(done)

		if err != nil {
			b.mtx.Unlock()
			return View{}, err
		}

		if b.generation != generation {
			// replaced mid-population; try again against the new document
			b.mtx.Unlock()
			continue
		}

		b.vectors = vectors
		view := View{Name: b.name, Chunks: b.chunks, Vectors: b.vectors}
		b.mtx.Unlock()
		return view, nil
	}
}

func embedAll(ctx context.Context, e embedder.Embedder, chunks []chunker.Chunk) ([][]float32, error) {
	vectors := make([][]float32, 0, len(chunks))

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vec, err := e.Embed(ctx, chunk.Text)
		if err != nil {
			return nil, err
		}

		vectors = append(vectors, vec)
	}

	return vectors, nil
}

// Package chunker splits raw document text into overlapping fixed-size windows.
package chunker

import (
	"errors"
	"unicode/utf8"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of characters shared between adjacent chunks.
const DefaultOverlap = 50

// ErrInvalidEncoding is returned when uploaded bytes are not valid UTF-8.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8 text")

// Chunk is a contiguous window of document text. Index is its rank in emission
// order and pairs the chunk with its embedding downstream.
type Chunk struct {
	Index int
	Text  string
}

type Chunker struct {
	chunkSize int
	overlap   int
}

type Option func(*Chunker)

// WithChunkSize sets the window size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets how many characters consecutive windows share.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// the step chunkSize-overlap must stay positive
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits text into windows of up to chunkSize characters, each window
// starting chunkSize-overlap characters after the previous one. The final
// window may be shorter. Empty text yields no chunks.
func (c *Chunker) Chunk(text string) []Chunk {
	if len(text) == 0 {
		return nil
	}

	runes := []rune(text)
	step := c.chunkSize - c.overlap

	var chunks []Chunk

	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
	}

	return chunks
}

// Decode interprets uploaded bytes as UTF-8 text.
func Decode(content []byte) (string, error) {
	if !utf8.Valid(content) {
		return "", ErrInvalidEncoding
	}
	return string(content), nil
}

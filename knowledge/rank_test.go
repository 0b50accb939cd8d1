package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("self similarity is 1", func(t *testing.T) {
		v := []float32{0.3, -1.2, 4.5}
		assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := []float32{1, 2, 3}
		b := []float32{-2, 0.5, 7}
		assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity([]float32{2, 1}, []float32{-2, -1}), 1e-9)
	})

	t.Run("zero vector scores 0 instead of NaN", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 2}))
	})

	t.Run("mismatched lengths score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	})

	t.Run("empty vectors score 0", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	})
}

func TestTopK(t *testing.T) {
	query := []float32{1, 0}

	t.Run("orders by descending score", func(t *testing.T) {
		vectors := [][]float32{
			{0, 1},      // orthogonal
			{1, 0},      // identical
			{1, 1},      // in between
			{-1, 0},     // opposite
			{0.9, 0.05}, // close
		}

		matches := TopK(query, vectors, 3)
		require.Len(t, matches, 3)
		assert.Equal(t, 1, matches[0].Index)
		assert.Equal(t, 4, matches[1].Index)
		assert.Equal(t, 2, matches[2].Index)
	})

	t.Run("ties break toward the lower index", func(t *testing.T) {
		vectors := [][]float32{
			{2, 0}, // same direction as query
			{3, 0}, // same direction, later index
			{0, 1},
		}

		matches := TopK(query, vectors, 2)
		require.Len(t, matches, 2)
		assert.Equal(t, 0, matches[0].Index)
		assert.Equal(t, 1, matches[1].Index)
		assert.Equal(t, matches[0].Score, matches[1].Score)
	})

	t.Run("returns min(k, n) results", func(t *testing.T) {
		one := [][]float32{{1, 0}}
		assert.Len(t, TopK(query, one, 3), 1)

		five := [][]float32{{1, 0}, {0, 1}, {1, 1}, {1, 2}, {2, 1}}
		assert.Len(t, TopK(query, five, 3), 3)
	})

	t.Run("no vectors yields no matches", func(t *testing.T) {
		assert.Empty(t, TopK(query, nil, 3))
	})

	t.Run("non-positive k yields no matches", func(t *testing.T) {
		assert.Empty(t, TopK(query, [][]float32{{1, 0}}, 0))
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		vectors := [][]float32{{1, 1}, {1, 0}, {0, 1}, {1, 1}}
		first := TopK(query, vectors, 4)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, TopK(query, vectors, 4))
		}
	})
}

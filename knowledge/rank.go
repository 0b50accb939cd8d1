package knowledge

import (
	"math"
	"sort"
)

// DefaultTopK is how many chunks a query retrieves by default.
const DefaultTopK = 3

// Match pairs a chunk index with its similarity score against a query.
type Match struct {
	Index int
	Score float64
}

// TopK scores the query vector against every chunk vector and returns the
// min(k, n) best matches, score descending. Equal scores rank the lower chunk
// index first so results are reproducible.
func TopK(query []float32, vectors [][]float32, k int) []Match {
	if k < 1 || len(vectors) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(vectors))
	for i, vec := range vectors {
		matches = append(matches, Match{
			Index: i,
			Score: CosineSimilarity(query, vec),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	if len(matches) > k {
		matches = matches[:k]
	}

	return matches
}

// CosineSimilarity returns dot(a,b) / (|a|*|b|). Mismatched lengths, empty
// vectors, and zero-norm vectors all score 0.0 rather than dividing by zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

package index

import (
	"fmt"
	"math"
	"sort"
)

// noThreshold keeps every scored entry.
var noThreshold = float32(math.Inf(-1))

// CosineSimilarity computes the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}

// rank scores every entry against query and returns the top-k, highest
// first. Equal scores keep corpus order.
func rank(entries []Entry, query []float32, topK int, threshold float32) []SearchResult {
	results := make([]SearchResult, 0, len(entries))

	for _, e := range entries {
		score := CosineSimilarity(query, e.Embedding)

		// Only include results above threshold
		if score >= threshold {
			results = append(results, SearchResult{
				Entry: e,
				Score: score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}

	return results
}

// checkVectors validates that texts and vectors pair up and share one dimension.
func checkVectors(texts []string, vectors [][]float32) (int, error) {
	if len(texts) != len(vectors) {
		return 0, fmt.Errorf("index: %d texts but %d vectors", len(texts), len(vectors))
	}
	if len(vectors) == 0 {
		return 0, nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return 0, fmt.Errorf("index: empty vector at position 0")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return 0, fmt.Errorf("%w: vector %d has %d dims, expected %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	return dim, nil
}

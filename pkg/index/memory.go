package index

import (
	"context"
	"fmt"
)

// VectorIndex holds the in-memory vector index for similarity search
type VectorIndex struct {
	entries   []Entry
	dimension int
	built     bool
}

// NewVectorIndex returns an empty in-memory index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// Build stores texts and their vectors in corpus order.
func (ix *VectorIndex) Build(ctx context.Context, texts []string, vectors [][]float32) error {
	if ix.built {
		return ErrAlreadyBuilt
	}
	dim, err := checkVectors(texts, vectors)
	if err != nil {
		return err
	}
	entries := make([]Entry, len(texts))
	for i := range texts {
		entries[i] = Entry{
			Position:  i,
			Text:      texts[i],
			Embedding: append([]float32(nil), vectors[i]...),
		}
	}
	ix.entries = entries
	ix.dimension = dim
	ix.built = true
	return nil
}

// Search returns the k entries most similar to query.
func (ix *VectorIndex) Search(ctx context.Context, query []float32, k int) ([]SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ix.entries) == 0 {
		return nil, nil
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("%w: query has %d dims, index has %d", ErrDimensionMismatch, len(query), ix.dimension)
	}
	return rank(ix.entries, query, k, noThreshold), nil
}

// Len returns the number of stored entries.
func (ix *VectorIndex) Len() int { return len(ix.entries) }

// Dimension returns the embedding vector dimension
func (ix *VectorIndex) Dimension() int { return ix.dimension }

// Close is a no-op.
func (ix *VectorIndex) Close() error { return nil }

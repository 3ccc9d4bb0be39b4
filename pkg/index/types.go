package index

import (
	"context"
	"errors"
)

var (
	// ErrDimensionMismatch is returned when vectors of different lengths meet.
	ErrDimensionMismatch = errors.New("index: dimension mismatch")
	// ErrAlreadyBuilt is returned when Build is called on a populated index.
	ErrAlreadyBuilt = errors.New("index: already built")
)

// Entry is a stored document with its embedding
type Entry struct {
	Position  int       // Position in the corpus, the only identifier
	Text      string    // Document text
	Embedding []float32 // Derived once at build time
}

// SearchResult represents a single search result with score
type SearchResult struct {
	Entry Entry
	Score float32
}

// Index stores (text, vector) pairs and answers k-nearest queries.
// Build may be called once; afterwards the index is read-only.
type Index interface {
	Build(ctx context.Context, texts []string, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]SearchResult, error)
	Len() int
	Dimension() int
	Close() error
}

// New returns an empty index for the named backend ("memory" or "sqlite").
func New(ctx context.Context, backend string) (Index, error) {
	switch backend {
	case "memory", "":
		return NewVectorIndex(), nil
	case "sqlite":
		return OpenSQLite(ctx)
	default:
		return nil, errors.New("index: unknown backend " + backend)
	}
}

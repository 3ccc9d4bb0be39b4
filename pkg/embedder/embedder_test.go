package embedder

import (
	"context"
	"math"
	"testing"
)

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder(0)
	if e.Dimension() != DefaultHashDimension {
		t.Fatalf("Expected default dimension %d, got %d", DefaultHashDimension, e.Dimension())
	}

	a, err := e.Embed(context.Background(), "Tokyo is the capital of Japan.")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	b, _ := e.Embed(context.Background(), "Tokyo is the capital of Japan.")
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("Embeddings differ at %d: %v vs %v", i, a[i], b[i])
		}
	}

	if n := math.Sqrt(dot(a, a)); math.Abs(n-1) > 1e-6 {
		t.Errorf("Expected unit vector, got norm %f", n)
	}
}

func TestHashEmbedder_SharedWordsAreCloser(t *testing.T) {
	e := NewHashEmbedder(DefaultHashDimension)
	ctx := context.Background()

	q, _ := e.Embed(ctx, "What is the capital of Japan?")
	tokyo, _ := e.Embed(ctx, "Tokyo is the capital of Japan and one of the most populous cities in the world.")
	berlin, _ := e.Embed(ctx, "Berlin is the capital and largest city of Germany.")

	if dot(q, tokyo) <= dot(q, berlin) {
		t.Errorf("Expected Tokyo sentence to be closer: tokyo=%f berlin=%f", dot(q, tokyo), dot(q, berlin))
	}
}

func TestHashEmbedder_StopwordsOnly(t *testing.T) {
	e := NewHashEmbedder(64)
	v, err := e.Embed(context.Background(), "what is the")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if dot(v, v) != 0 {
		t.Errorf("Expected zero vector for stopword-only text")
	}
}

func TestHashEmbedder_Batch(t *testing.T) {
	e := NewHashEmbedder(128)
	vecs, err := e.EmbedBatch(context.Background(), []string{"one fish", "two fish", ""})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("Expected 3 vectors, got %d", len(vecs))
	}
	for i, v := range vecs {
		if len(v) != 128 {
			t.Errorf("Vector %d has dimension %d", i, len(v))
		}
	}
}

func TestHashEmbedder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewHashEmbedder(8).Embed(ctx, "text"); err == nil {
		t.Error("Expected error for canceled context")
	}
}

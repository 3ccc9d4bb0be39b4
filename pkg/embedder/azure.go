package embedder

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// AzureEmbedder uses an Azure OpenAI embedding deployment
type AzureEmbedder struct {
	client     *openai.Client
	deployment string
	dim        int // learned from the first response
}

// NewAzureEmbedder creates an embedder for the given deployment
func NewAzureEmbedder(client *openai.Client, deployment string) (*AzureEmbedder, error) {
	if client == nil {
		return nil, errors.New("openai client is nil")
	}
	if deployment == "" {
		return nil, errors.New("embedding deployment is empty")
	}
	return &AzureEmbedder{
		client:     client,
		deployment: deployment,
	}, nil
}

// Embed generates an embedding for a single text. The text is sent as-is;
// the service decides what it accepts.
func (e *AzureEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.create(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds all texts with a single request
func (e *AzureEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.create(ctx, texts)
}

func (e *AzureEmbedder) create(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.deployment),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("azure embeddings (%s): %w", e.deployment, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("azure embeddings (%s): got %d vectors for %d inputs", e.deployment, len(resp.Data), len(texts))
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) || out[d.Index] != nil {
			return nil, fmt.Errorf("azure embeddings (%s): unexpected index %d in response", e.deployment, d.Index)
		}
		if len(d.Embedding) == 0 {
			return nil, fmt.Errorf("azure embeddings (%s): empty vector for input %d", e.deployment, d.Index)
		}
		v := make([]float32, len(d.Embedding))
		copy(v, d.Embedding)

		// L2 normalize (important for cosine similarity)
		l2normalize(v)
		out[d.Index] = v
	}

	if e.dim == 0 {
		e.dim = len(out[0])
	}
	return out, nil
}

// Dimension returns the embedding dimension, or 0 before the first call
func (e *AzureEmbedder) Dimension() int {
	return e.dim
}

// ModelInfo returns model information
func (e *AzureEmbedder) ModelInfo() string {
	return "azure-" + e.deployment
}

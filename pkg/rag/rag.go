// Package rag answers questions by retrieving the closest corpus documents
// and handing them, together with the question, to a chat model.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/perbu/ragqa/pkg/chat"
	"github.com/perbu/ragqa/pkg/corpus"
	"github.com/perbu/ragqa/pkg/embedder"
	"github.com/perbu/ragqa/pkg/index"
)

// DefaultTopK is the number of documents retrieved per question.
const DefaultTopK = 3

const promptTemplate = `Use the following pieces of context to answer the question at the end. If you don't know the answer, just say that you don't know, don't try to make up an answer.

%s

Question: %s
Helpful Answer:`

// Options are the collaborators an Engine is built from.
type Options struct {
	Embedder embedder.Embedder
	Chat     chat.Completer
	Index    index.Index // must be empty; New builds it
	Corpus   *corpus.Corpus
	Logger   zerolog.Logger
}

// Engine is the read-only state shared by every query: providers plus the
// built index. It carries no per-question state.
type Engine struct {
	embedder embedder.Embedder
	chat     chat.Completer
	index    index.Index
	topK     int
	log      zerolog.Logger
}

// New embeds the corpus once and builds the index from it.
func New(ctx context.Context, opts Options) (*Engine, error) {
	switch {
	case opts.Embedder == nil:
		return nil, errors.New("rag: embedder is required")
	case opts.Chat == nil:
		return nil, errors.New("rag: chat completer is required")
	case opts.Index == nil:
		return nil, errors.New("rag: index is required")
	case opts.Corpus == nil:
		return nil, errors.New("rag: corpus is required")
	}

	docs := opts.Corpus.Documents()
	opts.Logger.Debug().
		Int("documents", len(docs)).
		Str("embedder", opts.Embedder.ModelInfo()).
		Msg("embedding corpus")

	vectors, err := opts.Embedder.EmbedBatch(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("embedding corpus: %w", err)
	}
	if err := opts.Index.Build(ctx, docs, vectors); err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	opts.Logger.Debug().
		Int("entries", opts.Index.Len()).
		Int("dimension", opts.Index.Dimension()).
		Msg("index ready")

	return &Engine{
		embedder: opts.Embedder,
		chat:     opts.Chat,
		index:    opts.Index,
		topK:     DefaultTopK,
		log:      opts.Logger,
	}, nil
}

// Retrieve returns the texts of the documents closest to question, most
// similar first.
func (e *Engine) Retrieve(ctx context.Context, question string) ([]string, error) {
	vec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	results, err := e.index.Search(ctx, vec, e.topK)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	texts := make([]string, len(results))
	for i, r := range results {
		e.log.Debug().
			Int("rank", i+1).
			Int("position", r.Entry.Position).
			Float32("score", r.Score).
			Str("text", r.Entry.Text).
			Msg("retrieved")
		texts[i] = r.Entry.Text
	}
	return texts, nil
}

// Ask retrieves context for question and returns the chat model's answer verbatim.
func (e *Engine) Ask(ctx context.Context, question string) (string, error) {
	docs, err := e.Retrieve(ctx, question)
	if err != nil {
		return "", err
	}

	answer, err := e.chat.Complete(ctx, BuildPrompt(docs, question))
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

// TopK returns the number of documents retrieved per question.
func (e *Engine) TopK() int { return e.topK }

// Close releases the index.
func (e *Engine) Close() error { return e.index.Close() }

// BuildPrompt joins docs into a context block, in the given order, and
// places it ahead of the question.
func BuildPrompt(docs []string, question string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(docs, "\n\n"), question)
}

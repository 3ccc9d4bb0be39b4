// Package corpus holds the fixed, ordered set of documents the index is built from.
package corpus

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var defaultYAML []byte

// ErrEmpty is returned when a corpus has no documents.
var ErrEmpty = errors.New("corpus has no documents")

// Corpus is an immutable, insertion-ordered list of documents. A document's
// position is its only identifier.
type Corpus struct {
	docs []string
}

type file struct {
	Documents []string `yaml:"documents"`
}

// Default returns the built-in corpus of capital-city sentences.
func Default() *Corpus {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic("corpus: embedded corpus.yaml is invalid: " + err.Error())
	}
	return c
}

// Load reads a corpus from a YAML file with a top-level "documents" list.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML corpus. Documents are trimmed; blank documents are an error.
func Parse(data []byte) (*Corpus, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}
	return New(f.Documents)
}

// New builds a corpus from docs, keeping their order.
func New(docs []string) (*Corpus, error) {
	if len(docs) == 0 {
		return nil, ErrEmpty
	}
	out := make([]string, len(docs))
	for i, d := range docs {
		d = strings.TrimSpace(d)
		if d == "" {
			return nil, fmt.Errorf("document %d is blank", i)
		}
		out[i] = d
	}
	return &Corpus{docs: out}, nil
}

// Documents returns a copy of the documents in corpus order.
func (c *Corpus) Documents() []string {
	return append([]string(nil), c.docs...)
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

package index

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS docs (
	position  INTEGER PRIMARY KEY,
	content   TEXT NOT NULL,
	embedding BLOB NOT NULL
)`

// SQLiteIndex keeps entries in a private in-memory SQLite database and
// scores them in Go. Nothing is written to disk.
type SQLiteIndex struct {
	db        *sql.DB
	dimension int
	count     int
	built     bool
}

// OpenSQLite creates an empty in-memory SQLite index.
func OpenSQLite(ctx context.Context) (*SQLiteIndex, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("index: open sqlite: %w", err)
	}
	// Every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("index: create schema: %w", err)
	}
	return &SQLiteIndex{db: db}, nil
}

// Build inserts texts and vectors in one transaction.
func (ix *SQLiteIndex) Build(ctx context.Context, texts []string, vectors [][]float32) error {
	if ix.built {
		return ErrAlreadyBuilt
	}
	dim, err := checkVectors(texts, vectors)
	if err != nil {
		return err
	}

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO docs(position, content, embedding) VALUES(?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range texts {
		if _, err := stmt.ExecContext(ctx, i, texts[i], EncodeEmbedding(vectors[i])); err != nil {
			return fmt.Errorf("index: insert %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("index: commit: %w", err)
	}

	ix.dimension = dim
	ix.count = len(texts)
	ix.built = true
	return nil
}

// Search loads all entries in corpus order and ranks them by cosine similarity.
func (ix *SQLiteIndex) Search(ctx context.Context, query []float32, k int) ([]SearchResult, error) {
	if ix.count == 0 {
		return nil, nil
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("%w: query has %d dims, index has %d", ErrDimensionMismatch, len(query), ix.dimension)
	}

	rows, err := ix.db.QueryContext(ctx, `SELECT position, content, embedding FROM docs ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("index: query: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, ix.count)
	for rows.Next() {
		var (
			e    Entry
			blob []byte
		)
		if err := rows.Scan(&e.Position, &e.Text, &blob); err != nil {
			return nil, fmt.Errorf("index: scan: %w", err)
		}
		if e.Embedding, err = DecodeEmbedding(blob); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("index: rows: %w", err)
	}

	return rank(entries, query, k, noThreshold), nil
}

// Len returns the number of stored entries.
func (ix *SQLiteIndex) Len() int { return ix.count }

// Dimension returns the embedding vector dimension
func (ix *SQLiteIndex) Dimension() int { return ix.dimension }

// Close releases the database; its contents are gone afterwards.
func (ix *SQLiteIndex) Close() error { return ix.db.Close() }

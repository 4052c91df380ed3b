// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package embedding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	// SQLite driver.
	_ "modernc.org/sqlite"
)

// ErrDimensions is returned when storing a vector whose size does not match
// the store.
var ErrDimensions = errors.New("dimension mismatch")

const schema = `
CREATE TABLE IF NOT EXISTS embeddings (
	model  TEXT    NOT NULL,
	id     TEXT    NOT NULL,
	dims   INTEGER NOT NULL,
	vector BLOB    NOT NULL,
	PRIMARY KEY (model, id)
);
`

// Store is a persistent embedding table backed by SQLite. A Store holds the
// vectors of one model; vectors of other models in the same database are
// not visible.
type Store struct {
	db    *sql.DB
	model string
	dims  int

	closeOnce sync.Once
	closeErr  error
}

// OpenStore opens or creates the database at path holding vectors for the
// given model.
func OpenStore(ctx context.Context, path, model string, dims int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to store: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{
		db:    db,
		model: model,
		dims:  dims,
	}, nil
}

// Model returns the model the store holds vectors for.
func (s *Store) Model() string {
	return s.model
}

// Put stores embeddings, replacing any with the same ID.
func (s *Store) Put(ctx context.Context, embeddings ...Embedding) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO embeddings (model, id, dims, vector) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range embeddings {
		if len(e.Vector) != s.dims {
			return fmt.Errorf("%w: %q has %d dimensions, want %d", ErrDimensions, e.ID, len(e.Vector), s.dims)
		}
		if _, err := stmt.ExecContext(ctx, s.model, e.ID, s.dims, Encode(e.Vector)); err != nil {
			return fmt.Errorf("inserting %q: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

// Page implements Source. Embeddings are ordered by ID.
func (s *Store) Page(ctx context.Context, offset, limit int) ([]Embedding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, vector FROM embeddings WHERE model = ? ORDER BY id LIMIT ? OFFSET ?`,
		s.model, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var page []Embedding
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		v, err := Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", id, err)
		}
		page = append(page, Embedding{ID: id, Vector: v})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading embeddings: %w", err)
	}
	return page, nil
}

// Len implements Source.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM embeddings WHERE model = ?`, s.model)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting embeddings: %w", err)
	}
	return n, nil
}

// Close closes the database. It is safe to call Close multiple times.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

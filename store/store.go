// Package store persists lookup history in an embedded SQLite database.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS lookup (
	id         TEXT PRIMARY KEY,
	text       TEXT NOT NULL,
	language   TEXT NOT NULL,
	method     TEXT NOT NULL,
	confidence REAL NOT NULL,
	created_ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_lookup_created_ts ON lookup (created_ts DESC);
`

// Lookup is one recorded language-identification request.
type Lookup struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Language   string  `json:"language"`
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
	CreatedTs  int64   `json:"createdTs"`
}

// Store wraps the SQLite connection used for lookup history.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dsn and applies the schema.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable WAL mode")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "apply schema")
	}

	return &Store{db: db}, nil
}

// CreateLookup records one resolution. The generated ID is returned on the
// stored row.
func (s *Store) CreateLookup(ctx context.Context, create *Lookup) (*Lookup, error) {
	lookup := *create
	lookup.ID = uuid.New().String()
	if lookup.CreatedTs == 0 {
		lookup.CreatedTs = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO lookup (id, text, language, method, confidence, created_ts) VALUES (?, ?, ?, ?, ?, ?)",
		lookup.ID, lookup.Text, lookup.Language, lookup.Method, lookup.Confidence, lookup.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "insert lookup")
	}
	return &lookup, nil
}

// ListLookups returns the most recent lookups, newest first.
// A non-positive limit defaults to 50.
func (s *Store) ListLookups(ctx context.Context, limit int) ([]*Lookup, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, text, language, method, confidence, created_ts FROM lookup ORDER BY created_ts DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "query lookups")
	}
	defer rows.Close()

	var lookups []*Lookup
	for rows.Next() {
		var lookup Lookup
		if err := rows.Scan(&lookup.ID, &lookup.Text, &lookup.Language, &lookup.Method, &lookup.Confidence, &lookup.CreatedTs); err != nil {
			return nil, errors.Wrap(err, "scan lookup")
		}
		lookups = append(lookups, &lookup)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate lookups")
	}
	return lookups, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Package store is the SQLite data access layer for the normalization
// cache. It records the content hash and destination of every input the
// engine has normalized, enabling unchanged files to be skipped.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps a SQLite database holding one table of normalized files.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the cache schema. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS files (
  id               INTEGER PRIMARY KEY,
  path             TEXT NOT NULL UNIQUE,
  hash             TEXT NOT NULL,
  output_path      TEXT NOT NULL,
  last_normalized  TIMESTAMP
);
`

// FileByPath returns the cache record for an input path, or nil when
// the path has never been normalized.
func (s *Store) FileByPath(path string) (*File, error) {
	row := s.db.QueryRow(
		`SELECT id, path, hash, output_path, last_normalized FROM files WHERE path = ?`,
		path,
	)
	f := &File{}
	err := row.Scan(&f.ID, &f.Path, &f.Hash, &f.OutputPath, &f.LastNormalized)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query file %s: %w", path, err)
	}
	return f, nil
}

// UpsertFile inserts or replaces the cache record for f.Path.
func (s *Store) UpsertFile(f *File) error {
	_, err := s.db.Exec(
		`INSERT INTO files (path, hash, output_path, last_normalized)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   hash = excluded.hash,
		   output_path = excluded.output_path,
		   last_normalized = excluded.last_normalized`,
		f.Path, f.Hash, f.OutputPath, f.LastNormalized,
	)
	if err != nil {
		return fmt.Errorf("upsert file %s: %w", f.Path, err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records harvest runs and the outcome of every processed
// link in a SQLite database, so later runs can be audited.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// Entry is one processed link.
type Entry struct {
	RunID  int64
	Index  int
	URL    string
	Path   string
	Status types.Status
	Bytes  int64
	Chars  int
	Error  string
	At     time.Time
}

// Run describes one harvest invocation.
type Run struct {
	ID         int64
	Profile    string
	Input      string
	Output     string
	Mode       types.Mode
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store manages the ledger database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT,
			input TEXT,
			output TEXT,
			mode TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			row_index INTEGER NOT NULL,
			url TEXT NOT NULL,
			path TEXT,
			status TEXT NOT NULL,
			bytes INTEGER,
			chars INTEGER,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_url ON documents(url)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts a run row for cfg and returns its id.
func (s *Store) BeginRun(ctx context.Context, cfg types.HarvestConfig) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (profile, input, output, mode, started_at) VALUES (?, ?, ?, ?, ?)`,
		cfg.Profile, cfg.Links.Input, cfg.Conversion.Output, string(cfg.Conversion.Mode),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// FinishRun stamps the run's completion time.
func (s *Store) FinishRun(ctx context.Context, runID int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), runID,
	)
	if err != nil {
		return fmt.Errorf("finishing run %d: %w", runID, err)
	}
	return nil
}

// Record inserts one entry. A zero At is stamped with the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (run_id, row_index, url, path, status, bytes, chars, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Index, e.URL, e.Path, string(e.Status), e.Bytes, e.Chars, e.Error,
		e.At.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.URL, err)
	}
	return nil
}

// List returns up to limit entries, newest first. A limit of 0 or less
// returns all entries.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT run_id, row_index, url, path, status, bytes, chars, error, recorded_at
		FROM documents ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			status string
			at     string
		)
		if err := rows.Scan(&e.RunID, &e.Index, &e.URL, &e.Path, &status, &e.Bytes, &e.Chars, &e.Error, &at); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		e.Status = types.Status(status)
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Runs returns recorded runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile, input, output, mode, started_at, COALESCE(finished_at, '')
		 FROM runs ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			mode              string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.Profile, &r.Input, &r.Output, &mode, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Mode = types.Mode(mode)
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is a Store in a single SQLite database file.
type SQLite struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLite returns an uninitialized store for the database at path.
func NewSQLite(path string) *SQLite { return &SQLite{path: path} }

// Init opens the database and creates the schema if needed. Repeated calls
// are no-ops.
func (s *SQLite) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return errors.New("store: sqlite path is required")
	}
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db

	return nil
}

func (s *SQLite) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, source, fingerprint, genes, edges, cells, batch_size, normalized, max_entropy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			source = excluded.source,
			fingerprint = excluded.fingerprint,
			genes = excluded.genes,
			edges = excluded.edges,
			cells = excluded.cells,
			batch_size = excluded.batch_size,
			normalized = excluded.normalized,
			max_entropy = excluded.max_entropy
	`, run.ID.String(), run.CreatedAt.UTC().Format(time.RFC3339Nano), run.Source, run.Fingerprint,
		run.Genes, run.Edges, run.Cells, run.BatchSize, run.Normalized, run.MaxEntropy)

	return err
}

const runColumns = `id, created_at, source, fingerprint, genes, edges, cells, batch_size, normalized, max_entropy`

type scanner interface{ Scan(dest ...any) error }

func scanRun(sc scanner) (Run, error) {
	var (
		r      Run
		id, ts string
	)
	if err := sc.Scan(&id, &ts, &r.Source, &r.Fingerprint, &r.Genes, &r.Edges, &r.Cells,
		&r.BatchSize, &r.Normalized, &r.MaxEntropy); err != nil {
		return Run{}, err
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("decode run id %q: %w", id, err)
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return Run{}, fmt.Errorf("decode run %s time: %w", id, err)
	}

	return r, nil
}

func (s *SQLite) GetRun(ctx context.Context, id uuid.UUID) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}
	r, err := scanRun(db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}

	return r, true, nil
}

func (s *SQLite) ListRuns(ctx context.Context) ([]Run, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortNewestFirst(out)

	return out, nil
}

func (s *SQLite) SaveScores(ctx context.Context, id uuid.UUID, offset int, scores []CellScore) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	if err := runExists(ctx, db, id); err != nil {
		return fmt.Errorf("SaveScores: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scores (run_id, cell_index, cell_id, score) VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, cell_index) DO UPDATE SET
			cell_id = excluded.cell_id,
			score = excluded.score
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	key := id.String()
	for i, sc := range scores {
		if _, err := stmt.ExecContext(ctx, key, offset+i, sc.Cell, sc.Score); err != nil {
			return fmt.Errorf("SaveScores: cell %d: %w", offset+i, err)
		}
	}

	return tx.Commit()
}

func (s *SQLite) Scores(ctx context.Context, id uuid.UUID) ([]CellScore, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	if err := runExists(ctx, db, id); err != nil {
		return nil, fmt.Errorf("Scores: %w", err)
	}
	rows, err := db.QueryContext(ctx,
		`SELECT cell_id, score FROM scores WHERE run_id = ? ORDER BY cell_index`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CellScore
	for rows.Next() {
		var c CellScore
		if err := rows.Scan(&c.Cell, &c.Score); err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

func (s *SQLite) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	return s.db, nil
}

func runExists(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, id.String()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}

	return err
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			genes INTEGER NOT NULL,
			edges INTEGER NOT NULL,
			cells INTEGER NOT NULL,
			batch_size INTEGER NOT NULL,
			normalized INTEGER NOT NULL,
			max_entropy REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON runs(fingerprint);
		CREATE TABLE IF NOT EXISTS scores (
			run_id TEXT NOT NULL REFERENCES runs(id),
			cell_index INTEGER NOT NULL,
			cell_id TEXT NOT NULL,
			score REAL NOT NULL,
			PRIMARY KEY (run_id, cell_index)
		);
	`)

	return err
}

// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRunNotFound indicates an operation on a run ID that was never saved.
	ErrRunNotFound = errors.New("store: run not found")

	// ErrNotInitialized indicates use of a store before Init or after Close.
	ErrNotInitialized = errors.New("store: not initialized")

	// ErrUnsupportedKind indicates an unknown backend name passed to Open.
	ErrUnsupportedKind = errors.New("store: unsupported backend")
)

// Run describes one scoring invocation.
type Run struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	Source      string // free-form input label, e.g. the expression path
	Fingerprint string // network.Topology.Fingerprint
	Genes       int
	Edges       int
	Cells       int
	BatchSize   int
	Normalized  bool
	MaxEntropy  float64
}

// NewRun returns a Run with a fresh random ID stamped at the current UTC time.
func NewRun() Run {
	return Run{ID: uuid.New(), CreatedAt: time.Now().UTC().Truncate(time.Millisecond)}
}

// CellScore is the score of one cell.
type CellScore struct {
	Cell  string
	Score float64
}

// Store persists runs and their scores.
//
// SaveScores writes scores[i] at cell position offset+i, overwriting on
// repeat, so batches can be appended as they complete. Scores returns all
// stored positions in ascending order. GetRun reports ok=false for an unknown
// ID; ListRuns orders newest first.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id uuid.UUID) (Run, bool, error)
	ListRuns(ctx context.Context) ([]Run, error)
	SaveScores(ctx context.Context, id uuid.UUID, offset int, scores []CellScore) error
	Scores(ctx context.Context, id uuid.UUID) ([]CellScore, error)
	Close() error
}

// Open returns an uninitialized store of the given kind: "" or "memory", or
// "sqlite" backed by the file at path.
func Open(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("Open: %q: %w", kind, ErrUnsupportedKind)
	}
}

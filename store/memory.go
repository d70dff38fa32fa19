// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is a map-backed Store.
type Memory struct {
	mu   sync.RWMutex
	init bool
	runs map[uuid.UUID]*memRun
}

type memRun struct {
	run    Run
	scores map[int]CellScore
}

// NewMemory returns an empty, uninitialized Memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Init(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runs == nil {
		m.runs = make(map[uuid.UUID]*memRun)
	}
	m.init = true

	return nil
}

func (m *Memory) SaveRun(_ context.Context, run Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.init {
		return ErrNotInitialized
	}
	if r, ok := m.runs[run.ID]; ok {
		r.run = run
		return nil
	}
	m.runs[run.ID] = &memRun{run: run, scores: make(map[int]CellScore)}

	return nil
}

func (m *Memory) GetRun(_ context.Context, id uuid.UUID) (Run, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.init {
		return Run{}, false, ErrNotInitialized
	}
	r, ok := m.runs[id]
	if !ok {
		return Run{}, false, nil
	}

	return r.run, true, nil
}

func (m *Memory) ListRuns(context.Context) ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.init {
		return nil, ErrNotInitialized
	}
	out := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r.run)
	}
	sortNewestFirst(out)

	return out, nil
}

func (m *Memory) SaveScores(_ context.Context, id uuid.UUID, offset int, scores []CellScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.init {
		return ErrNotInitialized
	}
	r, ok := m.runs[id]
	if !ok {
		return fmt.Errorf("SaveScores: %s: %w", id, ErrRunNotFound)
	}
	for i, s := range scores {
		r.scores[offset+i] = s
	}

	return nil
}

func (m *Memory) Scores(_ context.Context, id uuid.UUID) ([]CellScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.init {
		return nil, ErrNotInitialized
	}
	r, ok := m.runs[id]
	if !ok {
		return nil, fmt.Errorf("Scores: %s: %w", id, ErrRunNotFound)
	}
	pos := make([]int, 0, len(r.scores))
	for p := range r.scores {
		pos = append(pos, p)
	}
	sort.Ints(pos)
	out := make([]CellScore, len(pos))
	for i, p := range pos {
		out[i] = r.scores[p]
	}

	return out, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init = false

	return nil
}

// sortNewestFirst orders by CreatedAt descending, ID ascending on ties.
func sortNewestFirst(runs []Run) {
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID.String() < runs[j].ID.String()
	})
}

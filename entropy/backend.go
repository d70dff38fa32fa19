// SPDX-License-Identifier: MIT

package entropy

import (
	"context"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/network"
)

const methodCompute = "Compute"

// Backend is the batched compute capability. Compute scores every row of x
// (cells × G, aligned to topo) into out, which must have one slot per row.
//
// Compute is a pure function of (x, topo): identical inputs give identical
// outputs regardless of how many rows are passed at once. A backend that
// cannot hold the batch returns an error wrapping ErrResourceExhausted and
// writes nothing the caller may rely on.
type Backend interface {
	Name() string
	Compute(ctx context.Context, topo *network.Topology, x *mat.Dense, out []float64) error
}

// CPU computes batches on goroutines, splitting rows into contiguous ranges.
// It owns one Workspace that grows to the largest batch seen; calls are
// serialized on it.
type CPU struct {
	workers     int
	memoryLimit uint64

	mu sync.Mutex
	ws *Workspace
}

// NewCPU returns a CPU backend.
func NewCPU(opts ...CPUOption) *CPU {
	c := &CPU{workers: defaultWorkers(), memoryLimit: DefaultMemoryLimit}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// Name implements Backend.
func (c *CPU) Name() string { return "cpu" }

// Workers returns the configured parallelism.
func (c *CPU) Workers() int { return c.workers }

// MemoryLimit returns the workspace budget in bytes, 0 if unlimited.
func (c *CPU) MemoryLimit() uint64 { return c.memoryLimit }

// Compute implements Backend.
//
// Errors:
//   - ctx.Err() if ctx is done on entry.
//   - network.ErrEmptyTopology, ErrShapeMismatch for malformed calls.
//   - ErrResourceExhausted if WorkspaceBytes(rows) exceeds the memory limit.
//   - *expression.ExpressionError for the lowest offending row of x.
func (c *CPU) Compute(ctx context.Context, topo *network.Topology, x *mat.Dense, out []float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if topo.EdgeCount() == 0 {
		return fmt.Errorf("%s: %w", methodCompute, network.ErrEmptyTopology)
	}
	rows, cols := x.Dims()
	if cols != topo.GeneCount() {
		return fmt.Errorf("%s: expression has %d genes, topology %d: %w", methodCompute, cols, topo.GeneCount(), ErrShapeMismatch)
	}
	if len(out) != rows {
		return fmt.Errorf("%s: out has %d slots for %d rows: %w", methodCompute, len(out), rows, ErrShapeMismatch)
	}
	if need := WorkspaceBytes(rows, topo); c.memoryLimit > 0 && need > c.memoryLimit {
		return fmt.Errorf("%s: %d rows need %s, limit %s: %w", methodCompute, rows,
			humanize.IBytes(need), humanize.IBytes(c.memoryLimit), ErrResourceExhausted)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ws == nil || !c.ws.fits(topo) {
		ws, err := NewWorkspace(topo, rows)
		if err != nil {
			return fmt.Errorf("%s: %w", methodCompute, err)
		}
		c.ws = ws
	}
	c.ws.Reset(rows)

	if err := c.run(topo, x, rows); err != nil {
		return err
	}
	copy(out, c.ws.Scores())

	return nil
}

// run splits [0,rows) into at most c.workers contiguous ranges. Each stage
// touches only its own rows, so ranges never share memory. The error of the
// lowest range wins, which keeps error reporting deterministic.
func (c *CPU) run(topo *network.Topology, x *mat.Dense, rows int) error {
	workers := min(c.workers, rows)
	if workers <= 1 {
		return computeRange(c.ws, topo, x, 0, rows)
	}

	chunk := (rows + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, rows)
		if lo >= hi {
			break
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			errs[w] = computeRange(c.ws, topo, x, lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func computeRange(ws *Workspace, topo *network.Topology, x *mat.Dense, lo, hi int) error {
	if err := BuildTransitions(ws, topo, x, lo, hi); err != nil {
		return err
	}
	SolveStationary(ws, lo, hi)
	ReduceEntropy(ws, topo, lo, hi)

	return nil
}

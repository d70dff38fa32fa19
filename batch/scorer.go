// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/entropy"
	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/network"
)

const (
	methodNewScorer = "NewScorer"
	methodBatches   = "Batches"
)

// Result is one scored batch. Scores is owned by the caller.
type Result struct {
	Index  int       // batch index k
	Offset int       // global index of the first cell
	Scores []float64 // one score per cell, in input order
}

// Scorer runs a Backend over an expression matrix batch by batch. A Scorer
// holds no per-run state and may be reused; concurrent runs share the
// backend, which serializes them if it must.
type Scorer struct {
	topo       *network.Topology
	backend    entropy.Backend
	opts       options
	maxEntropy float64
}

// NewScorer validates its inputs eagerly so that every construction-time
// error surfaces before any cell is touched.
//
// Errors:
//   - ErrNilArgument for a nil topology or backend.
//   - network.ErrEmptyTopology when topo has no edges.
//   - ErrOptionViolation for invalid options.
//   - entropy.ErrMaxEntropy when WithNormalize is set and the topology has
//     no usable maximal entropy.
func NewScorer(topo *network.Topology, backend entropy.Backend, opts ...Option) (*Scorer, error) {
	if topo == nil || backend == nil {
		return nil, fmt.Errorf("%s: %w", methodNewScorer, ErrNilArgument)
	}
	if topo.EdgeCount() == 0 {
		return nil, fmt.Errorf("%s: %w", methodNewScorer, network.ErrEmptyTopology)
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.err != nil {
		return nil, fmt.Errorf("%s: %w", methodNewScorer, o.err)
	}

	s := &Scorer{topo: topo, backend: backend, opts: o}
	if o.normalize {
		me, err := entropy.MaxEntropy(topo)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", methodNewScorer, err)
		}
		s.maxEntropy = me
	}

	return s, nil
}

// BatchSize returns the configured batch size.
func (s *Scorer) BatchSize() int { return s.opts.batchSize }

// MaxEntropy returns the normalizer, or 0 when scores are raw.
func (s *Scorer) MaxEntropy() float64 { return s.maxEntropy }

// BatchCount returns the number of batches m splits into.
func (s *Scorer) BatchCount(m expression.Matrix) int {
	return (m.Cells() + s.opts.batchSize - 1) / s.opts.batchSize
}

// Batches returns the lazy, ordered sequence of scored batches of m,
// starting at the configured start batch. The sequence ends after the first
// error, which is yielded with a zero Result.
func (s *Scorer) Batches(ctx context.Context, m expression.Matrix) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		if m.Genes() != s.topo.GeneCount() {
			yield(Result{}, fmt.Errorf("%s: matrix has %d genes, topology %d: %w",
				methodBatches, m.Genes(), s.topo.GeneCount(), ErrShapeMismatch))
			return
		}
		total := s.BatchCount(m)
		start := s.opts.startBatch
		if start > total || (start == total && total > 0) {
			yield(Result{}, fmt.Errorf("%s: start batch %d of %d: %w", methodBatches, start, total, ErrStartOutOfRange))
			return
		}
		if start == total {
			return // empty matrix
		}

		p := plan{m: m, batchSize: s.opts.batchSize, start: start, count: total - start}
		var st stager
		if s.opts.prefetch {
			st = newPrefetcher(ctx, p)
		} else {
			st = newInline(p)
		}
		defer st.close()

		log := s.opts.logger.With("backend", s.backend.Name())
		firstCell := start * s.opts.batchSize
		prog := newProgress(log, s.opts.progressInterval, total, m.Cells()-firstCell)
		chunk := s.opts.batchSize
		for k := start; k < total; k++ {
			if err := ctx.Err(); err != nil {
				yield(Result{}, fmt.Errorf("%s: before batch %d: %w", methodBatches, k, err))
				return
			}
			sb, err := st.next()
			if err != nil {
				yield(Result{}, fmt.Errorf("%s: staging batch %d: %w", methodBatches, k, err))
				return
			}
			scores := make([]float64, sb.rows)
			chunk, err = s.compute(ctx, log, sb, scores, chunk)
			st.release(sb)
			if err != nil {
				yield(Result{}, err)
				return
			}
			if s.maxEntropy > 0 {
				floats.Scale(1/s.maxEntropy, scores)
			}
			if !yield(Result{Index: k, Offset: sb.offset, Scores: scores}, nil) {
				return
			}
			prog.batchDone(k, sb.offset+sb.rows-firstCell)
		}
	}
}

// compute scores one staged batch in chunks of at most chunk rows, halving
// on resource exhaustion. It returns the chunk size in effect afterwards.
func (s *Scorer) compute(ctx context.Context, log *slog.Logger, sb *staged, out []float64, chunk int) (int, error) {
	_, genes := sb.x.Dims()
	for lo := 0; lo < sb.rows; {
		hi := min(lo+chunk, sb.rows)
		sub := sb.x.Slice(lo, hi, 0, genes).(*mat.Dense)
		err := s.backend.Compute(ctx, s.topo, sub, out[lo:hi])
		if err == nil {
			lo = hi
			continue
		}
		if errors.Is(err, entropy.ErrResourceExhausted) {
			if hi-lo == 1 {
				return chunk, fmt.Errorf("%s: batch %d cell %d: single row does not fit: %w",
					methodBatches, sb.index, sb.offset+lo, err)
			}
			chunk = (hi - lo) / 2
			log.Warn("backend exhausted, halving chunk", "batch", sb.index, "chunk", chunk)
			continue
		}
		var ee *expression.ExpressionError
		if errors.As(err, &ee) {
			return chunk, &expression.ExpressionError{
				Batch: sb.index,
				Cell:  sb.offset + lo + ee.Cell,
				Gene:  ee.Gene,
				Value: ee.Value,
			}
		}

		return chunk, fmt.Errorf("%s: batch %d: %w", methodBatches, sb.index, err)
	}

	return chunk, nil
}

// Score collects every batch into one slice, indexed from the first cell of
// the start batch.
func (s *Scorer) Score(ctx context.Context, m expression.Matrix) ([]float64, error) {
	out := make([]float64, 0, max(0, m.Cells()-s.opts.startBatch*s.opts.batchSize))
	for res, err := range s.Batches(ctx, m) {
		if err != nil {
			return nil, err
		}
		out = append(out, res.Scores...)
	}

	return out, nil
}

// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/expression"
)

// staged is one batch copied out of the Matrix and validated.
type staged struct {
	index  int
	offset int
	rows   int
	buf    *mat.Dense // full-capacity staging buffer
	x      *mat.Dense // first rows of buf
}

// stager hands out staged batches in order. release returns a buffer for
// reuse; close stops any background work and must be called once.
type stager interface {
	next() (*staged, error)
	release(*staged)
	close()
}

// plan is the batch geometry shared by both stagers.
type plan struct {
	m         expression.Matrix
	batchSize int
	start     int
	count     int
}

func (p plan) bounds(k int) (offset, rows int) {
	offset = k * p.batchSize
	rows = min(p.batchSize, p.m.Cells()-offset)

	return offset, rows
}

// fill copies batch k into buf and validates it.
func (p plan) fill(k int, buf *mat.Dense) (*staged, error) {
	offset, rows := p.bounds(k)
	for r := 0; r < rows; r++ {
		row := buf.RawRowView(r)
		p.m.RowTo(row, offset+r)
		if err := expression.CheckRow(row, k, offset+r); err != nil {
			return nil, err
		}
	}
	_, genes := buf.Dims()

	return &staged{
		index:  k,
		offset: offset,
		rows:   rows,
		buf:    buf,
		x:      buf.Slice(0, rows, 0, genes).(*mat.Dense),
	}, nil
}

func (p plan) newBuffer() *mat.Dense {
	return mat.NewDense(min(p.batchSize, p.m.Cells()), p.m.Genes(), nil)
}

// inline stages on the caller's goroutine with a single buffer.
type inline struct {
	plan
	k   int
	buf *mat.Dense
}

func newInline(p plan) *inline {
	return &inline{plan: p, k: p.start, buf: p.newBuffer()}
}

func (s *inline) next() (*staged, error) {
	st, err := s.fill(s.k, s.buf)
	s.k++

	return st, err
}

func (s *inline) release(*staged) {}
func (s *inline) close()          {}

// prefetcher stages on its own goroutine with two ping-pong buffers. The
// goroutine is the only reader of the Matrix while it runs.
type prefetcher struct {
	free   chan *mat.Dense
	out    chan stageResult
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type stageResult struct {
	st  *staged
	err error
}

func newPrefetcher(ctx context.Context, p plan) *prefetcher {
	ctx, cancel := context.WithCancel(ctx)
	pf := &prefetcher{
		free:   make(chan *mat.Dense, 2),
		out:    make(chan stageResult, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	pf.free <- p.newBuffer()
	pf.free <- p.newBuffer()

	pf.wg.Add(1)
	go func() {
		defer pf.wg.Done()
		defer close(pf.out)
		for k := p.start; k < p.start+p.count; k++ {
			var buf *mat.Dense
			select {
			case <-ctx.Done():
				return
			case buf = <-pf.free:
			}
			st, err := p.fill(k, buf)
			select {
			case <-ctx.Done():
				return
			case pf.out <- stageResult{st: st, err: err}:
			}
			if err != nil {
				return
			}
		}
	}()

	return pf
}

func (pf *prefetcher) next() (*staged, error) {
	r, ok := <-pf.out
	if !ok {
		if err := pf.ctx.Err(); err != nil {
			return nil, err
		}
		return nil, context.Canceled
	}

	return r.st, r.err
}

func (pf *prefetcher) release(st *staged) {
	select {
	case pf.free <- st.buf:
	default:
	}
}

func (pf *prefetcher) close() {
	pf.cancel()
	pf.wg.Wait()
}

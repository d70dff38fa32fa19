// SPDX-License-Identifier: MIT

package entropy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/network"
)

// Workspace is the batch-local arena: every intermediate of the three stages
// for up to Cap() cells, allocated once and reused across batches. Row b of
// each buffer belongs to cell b of the current batch.
//
//	sqrtX      Cap × G      s = sqrt(x)
//	transition Cap × Slots  w, then P in place (CSR slot order)
//	rowSums    Cap × G      d
//	stationary Cap × G      pi
//	nodal      Cap × G      H
//	scores     Cap          SR
//
// A Workspace is not safe for concurrent Reset, but disjoint row ranges may
// be filled concurrently by the stage functions.
type Workspace struct {
	genes int
	slots int
	cap   int
	rows  int

	sqrtX      *mat.Dense
	transition *mat.Dense
	rowSums    *mat.Dense
	stationary *mat.Dense
	nodal      *mat.Dense
	scores     []float64
}

// WorkspaceBytes is the float64 footprint of a Workspace holding rows cells
// for topo: 8·rows·(4G + 2E + 1).
func WorkspaceBytes(rows int, topo *network.Topology) uint64 {
	if rows <= 0 {
		return 0
	}
	per := uint64(4*topo.GeneCount() + topo.Slots() + 1)

	return 8 * uint64(rows) * per
}

// NewWorkspace allocates a Workspace for rows cells of topo.
func NewWorkspace(topo *network.Topology, rows int) (*Workspace, error) {
	if topo.EdgeCount() == 0 {
		return nil, fmt.Errorf("NewWorkspace: %w", network.ErrEmptyTopology)
	}
	if rows < 1 {
		return nil, fmt.Errorf("NewWorkspace: rows=%d: %w", rows, ErrShapeMismatch)
	}
	ws := &Workspace{genes: topo.GeneCount(), slots: topo.Slots()}
	ws.alloc(rows)

	return ws, nil
}

func (ws *Workspace) alloc(rows int) {
	ws.cap = rows
	ws.rows = rows
	ws.sqrtX = mat.NewDense(rows, ws.genes, nil)
	ws.transition = mat.NewDense(rows, ws.slots, nil)
	ws.rowSums = mat.NewDense(rows, ws.genes, nil)
	ws.stationary = mat.NewDense(rows, ws.genes, nil)
	ws.nodal = mat.NewDense(rows, ws.genes, nil)
	ws.scores = make([]float64, rows)
}

// Reset prepares the Workspace for a batch of rows cells. Buffers are reused
// when rows ≤ Cap() and grown to exactly rows otherwise. Stage functions
// overwrite every cell they touch, so no zeroing is done here.
func (ws *Workspace) Reset(rows int) {
	if rows > ws.cap {
		ws.alloc(rows)
	}
	ws.rows = rows
}

// fits reports whether ws was built for a topology of this shape.
func (ws *Workspace) fits(topo *network.Topology) bool {
	return ws.genes == topo.GeneCount() && ws.slots == topo.Slots()
}

// Rows is the current batch size; Cap the allocated capacity.
func (ws *Workspace) Rows() int { return ws.rows }
func (ws *Workspace) Cap() int  { return ws.cap }

// SqrtExpression returns s for cell b (length G).
func (ws *Workspace) SqrtExpression(b int) []float64 { return ws.sqrtX.RawRowView(b) }

// Transition returns cell b's transition row in CSR slot order (length 2E).
// Between BuildTransitions stages it holds weights; afterwards, probabilities.
func (ws *Workspace) Transition(b int) []float64 { return ws.transition.RawRowView(b) }

// RowSums returns d for cell b.
func (ws *Workspace) RowSums(b int) []float64 { return ws.rowSums.RawRowView(b) }

// Stationary returns pi for cell b.
func (ws *Workspace) Stationary(b int) []float64 { return ws.stationary.RawRowView(b) }

// Nodal returns H for cell b.
func (ws *Workspace) Nodal(b int) []float64 { return ws.nodal.RawRowView(b) }

// Scores returns the scores of the current batch. The slice aliases the
// arena and is overwritten by the next batch.
func (ws *Workspace) Scores() []float64 { return ws.scores[:ws.rows] }

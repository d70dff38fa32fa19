// SPDX-License-Identifier: MIT

package entropy

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/network"
)

// CellDetail is the full intermediate state of one cell's computation.
// Per-gene slices have length G; Weights and Transition follow CSR slot
// order (see network.Topology.CSR). For a cell rescaled by BuildTransitions,
// Weights and RowSums are in the scaled units; Expression is always the input.
type CellDetail struct {
	Genes        []string
	Expression   []float64
	Weights      []float64
	Transition   []float64
	RowSums      []float64
	Stationary   []float64
	Nodal        []float64
	Contribution []float64 // pi_i · H_i; sums to Score
	Score        float64
}

// Cell runs the pipeline for a single expression row and keeps every
// intermediate. It allocates; use a Backend for bulk scoring.
func Cell(x []float64, topo *network.Topology) (*CellDetail, error) {
	if len(x) != topo.GeneCount() {
		return nil, fmt.Errorf("Cell: %d values for %d genes: %w", len(x), topo.GeneCount(), ErrShapeMismatch)
	}
	ws, err := NewWorkspace(topo, 1)
	if err != nil {
		return nil, fmt.Errorf("Cell: %w", err)
	}
	row := mat.NewDense(1, len(x), append([]float64(nil), x...))
	if err = BuildTransitions(ws, topo, row, 0, 1); err != nil {
		return nil, err
	}

	detail := &CellDetail{
		Genes:      topo.Genes(),
		Expression: append([]float64(nil), x...),
		RowSums:    append([]float64(nil), ws.RowSums(0)...),
		Transition: append([]float64(nil), ws.Transition(0)...),
	}
	// The transition row was normalized in place; rebuild the raw weights
	// from s so they are bitwise what BuildTransitions summed.
	rowPtr, colIdx := topo.CSR()
	s := ws.SqrtExpression(0)
	detail.Weights = make([]float64, len(detail.Transition))
	for i := 0; i < topo.GeneCount(); i++ {
		for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
			detail.Weights[k] = s[i] * s[colIdx[k]]
		}
	}

	SolveStationary(ws, 0, 1)
	ReduceEntropy(ws, topo, 0, 1)

	detail.Stationary = append([]float64(nil), ws.Stationary(0)...)
	detail.Nodal = append([]float64(nil), ws.Nodal(0)...)
	detail.Contribution = make([]float64, len(x))
	for i := range detail.Contribution {
		detail.Contribution[i] = detail.Stationary[i] * detail.Nodal[i]
	}
	detail.Score = ws.Scores()[0]

	return detail, nil
}

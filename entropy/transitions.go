// SPDX-License-Identifier: MIT

package entropy

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/network"
)

// BuildTransitions fills sqrt-expression, row sums and transition rows for
// cells [lo,hi) of the workspace from rows [lo,hi) of x.
//
// Weights are w_ij = sqrt(x_i)·sqrt(x_j), evaluated per CSR slot; the slot
// for j–i holds the bitwise-identical product, so the weighted adjacency is
// exactly symmetric. Each row is then divided by its sum in place; rows with
// d_i == 0 stay all-zero.
//
// A cell whose largest value lies outside [2^-300, 2^300] is first scaled by
// a power of four so the row sums stay finite and normal. Scores do not
// depend on a constant factor, so only the row sums (and Cell's weights)
// are reported in the scaled units.
//
// x must have G columns and at least hi rows. A negative or non-finite value
// stops the stage and returns an *expression.ExpressionError with Batch -1
// and Cell set to the row of x.
func BuildTransitions(ws *Workspace, topo *network.Topology, x *mat.Dense, lo, hi int) error {
	rowPtr, colIdx := topo.CSR()
	for b := lo; b < hi; b++ {
		xr := x.RawRowView(b)
		s := ws.SqrtExpression(b)
		var peak float64
		for i, v := range xr[:ws.genes] {
			if !expression.Valid(v) {
				return &expression.ExpressionError{Batch: -1, Cell: b, Gene: i, Value: v}
			}
			peak = math.Max(peak, v)
		}
		if shift := rescaleExp(peak); shift != 0 {
			for i, v := range xr[:ws.genes] {
				s[i] = math.Sqrt(math.Ldexp(v, shift))
			}
		} else {
			for i, v := range xr[:ws.genes] {
				s[i] = math.Sqrt(v)
			}
		}

		w := ws.Transition(b)
		d := ws.RowSums(b)
		for i := 0; i < ws.genes; i++ {
			si := s[i]
			var sum float64
			for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
				wk := si * s[colIdx[k]]
				w[k] = wk
				sum += wk
			}
			d[i] = sum
			if sum == 0 {
				continue // every w in the row is already 0
			}
			for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
				w[k] /= sum
			}
		}
	}

	return nil
}

const (
	minUnscaled = 0x1p-300
	maxUnscaled = 0x1p300
)

// rescaleExp returns the even exponent e such that peak·2^e lies in [0.5, 2),
// or 0 when peak is zero or already within [minUnscaled, maxUnscaled].
func rescaleExp(peak float64) int {
	if peak == 0 || (peak >= minUnscaled && peak <= maxUnscaled) {
		return 0
	}
	_, exp := math.Frexp(peak)
	e := -exp
	if e%2 != 0 {
		e++
	}

	return e
}

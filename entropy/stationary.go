// SPDX-License-Identifier: MIT

package entropy

import "gonum.org/v1/gonum/floats"

// SolveStationary fills pi for cells [lo,hi) from the row sums written by
// BuildTransitions: pi_i = d_i / Σ_k d_k.
//
// The chain is reversible with respect to d, so this is exact; there is no
// iteration and no tolerance. A cell whose total weight is 0 gets the zero
// vector.
func SolveStationary(ws *Workspace, lo, hi int) {
	for b := lo; b < hi; b++ {
		d := ws.RowSums(b)
		pi := ws.Stationary(b)
		total := floats.Sum(d)
		if total == 0 {
			clear(pi)
			continue
		}
		floats.ScaleTo(pi, 1/total, d)
	}
}

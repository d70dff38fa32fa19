// SPDX-License-Identifier: MIT

package entropy

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/scent/network"
)

// ReduceEntropy fills nodal entropies and scores for cells [lo,hi):
// H_i = -Σ_j P_ij log P_ij over P_ij > 0, and SR = pi · H.
//
// Every term P log P with 0 < P ≤ 1 is ≤ 0, so H_i ≥ 0 and no cancellation
// occurs. log(0) is never evaluated.
func ReduceEntropy(ws *Workspace, topo *network.Topology, lo, hi int) {
	rowPtr, _ := topo.CSR()
	for b := lo; b < hi; b++ {
		p := ws.Transition(b)
		h := ws.Nodal(b)
		for i := 0; i < ws.genes; i++ {
			var acc float64
			for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
				if pk := p[k]; pk > 0 {
					acc += pk * math.Log(pk)
				}
			}
			if acc < 0 {
				h[i] = -acc
			} else {
				h[i] = 0
			}
		}
		ws.scores[b] = floats.Dot(ws.Stationary(b), h)
	}
}

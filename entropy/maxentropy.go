// SPDX-License-Identifier: MIT

package entropy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/scent/network"
)

const methodMaxEntropy = "MaxEntropy"

// SpectralRadius returns λ_max of the unweighted adjacency of topo.
//
// Power iteration runs on A+I from the all-ones vector: the shift keeps the
// dominant eigenvalue strictly dominant on bipartite graphs (where -λ_max is
// also an eigenvalue of A), and the all-ones start has a positive component
// along every connected component's Perron vector. The estimate is the
// Rayleigh quotient, stopped when its relative change drops below the
// tolerance.
//
// Complexity: O(iterations · (G + E)).
func SpectralRadius(topo *network.Topology, opts ...SpectralOption) (float64, error) {
	o := gatherSpectral(opts...)
	if topo.EdgeCount() == 0 {
		return 0, fmt.Errorf("SpectralRadius: %w", network.ErrEmptyTopology)
	}
	rowPtr, colIdx := topo.CSR()
	n := topo.GeneCount()

	v := make([]float64, n)
	next := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	floats.Scale(1/floats.Norm(v, 2), v)

	prev := math.Inf(1)
	for it := 0; it < o.maxIter; it++ {
		for i := 0; i < n; i++ {
			acc := v[i]
			for k := rowPtr[i]; k < rowPtr[i+1]; k++ {
				acc += v[colIdx[k]]
			}
			next[i] = acc
		}
		lambda := floats.Dot(v, next) // v is unit-norm
		norm := floats.Norm(next, 2)
		floats.ScaleTo(v, 1/norm, next)
		if math.Abs(lambda-prev) <= o.tol*lambda {
			return lambda - 1, nil
		}
		prev = lambda
	}

	return 0, fmt.Errorf("SpectralRadius: no convergence after %d iterations: %w", o.maxIter, ErrMaxEntropy)
}

// MaxEntropy returns log(λ_max(A)), the largest entropy rate any weighting of
// topo can reach. It is the normalizer for scores in [0,1].
//
// Errors:
//   - ErrMaxEntropy when λ_max ≤ 1 (a matching, where every walk is
//     deterministic) or iteration fails to converge.
//   - network.ErrEmptyTopology when topo has no edges.
func MaxEntropy(topo *network.Topology, opts ...SpectralOption) (float64, error) {
	lambda, err := SpectralRadius(topo, opts...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", methodMaxEntropy, err)
	}
	// Allow for the last bits of iteration error on λ = 1 exactly.
	if lambda <= 1+1e-9 {
		return 0, fmt.Errorf("%s: λ_max=%g: %w", methodMaxEntropy, lambda, ErrMaxEntropy)
	}

	return math.Log(lambda), nil
}

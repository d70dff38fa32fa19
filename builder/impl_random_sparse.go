// SPDX-License-Identifier: MIT
//
// impl_random_sparse.go - Erdős–Rényi G(n,p).
//
// Each unordered pair {i,j}, i<j, is included independently with probability
// p, trials in (i asc, j asc) order so outputs are stable per seed.

package builder

import "fmt"

// RandomSparse samples G(n,p). n ≥ 1, 0 ≤ p ≤ 1. An RNG is required for
// 0 < p < 1; p ∈ {0,1} is deterministic.
// Complexity: O(n²) trials.
func RandomSparse(n int, p float64) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodRandomSparse, n, 1); err != nil {
			return err
		}
		if err := validateProbability(MethodRandomSparse, p); err != nil {
			return err
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", MethodRandomSparse, ErrNeedRandSource)
		}
		d.addGenes(n, cfg.idFn)
		if p == 0 {
			return nil
		}
		for i := 0; i < n; i++ {
			u := cfg.idFn(i)
			for j := i + 1; j < n; j++ {
				if p == 1 || cfg.rng.Float64() < p {
					d.addEdge(u, cfg.idFn(j))
				}
			}
		}

		return nil
	}
}

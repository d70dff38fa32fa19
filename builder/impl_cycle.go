// SPDX-License-Identifier: MIT

package builder

// Cycle builds C_n: a path closed by (n-1)–0. n ≥ 3. Every gene has degree 2,
// so λ_max = 2.
// Complexity: O(n).
func Cycle(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodCycle, n, MinCycleNodes); err != nil {
			return err
		}
		d.addGenes(n, cfg.idFn)
		for i := 0; i < n; i++ {
			d.addEdge(cfg.idFn(i), cfg.idFn((i+1)%n))
		}

		return nil
	}
}

// SPDX-License-Identifier: MIT

package builder

// Complete builds K_n. n ≥ 2.
// Complexity: O(n²).
func Complete(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodComplete, n, MinCompleteNodes); err != nil {
			return err
		}
		d.addGenes(n, cfg.idFn)
		for i := 0; i < n; i++ {
			u := cfg.idFn(i)
			for j := i + 1; j < n; j++ {
				d.addEdge(u, cfg.idFn(j))
			}
		}

		return nil
	}
}

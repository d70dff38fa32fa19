// SPDX-License-Identifier: MIT

package builder

// Path builds P_n: 0–1–…–(n-1). n ≥ 2.
// Complexity: O(n).
func Path(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodPath, n, MinPathNodes); err != nil {
			return err
		}
		d.addGenes(n, cfg.idFn)
		for i := 0; i+1 < n; i++ {
			d.addEdge(cfg.idFn(i), cfg.idFn(i+1))
		}

		return nil
	}
}

// SPDX-License-Identifier: MIT

package builder

// Star builds a hub idFn(0) joined to leaves idFn(1..n-1). n ≥ 2.
// Complexity: O(n).
func Star(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodStar, n, MinStarNodes); err != nil {
			return err
		}
		d.addGenes(n, cfg.idFn)
		hub := cfg.idFn(0)
		for i := 1; i < n; i++ {
			d.addEdge(hub, cfg.idFn(i))
		}

		return nil
	}
}

// SPDX-License-Identifier: MIT

package builder

// CompleteBipartite builds K_{n1,n2} over idFn(0..n1-1) and
// idFn(n1..n1+n2-1). Both sides must be non-empty. λ_max = sqrt(n1·n2).
// Complexity: O(n1·n2).
func CompleteBipartite(n1, n2 int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodCompleteBipartite, n1, MinPartition); err != nil {
			return err
		}
		if err := validateMin(MethodCompleteBipartite, n2, MinPartition); err != nil {
			return err
		}
		d.addGenes(n1+n2, cfg.idFn)
		for i := 0; i < n1; i++ {
			u := cfg.idFn(i)
			for j := 0; j < n2; j++ {
				d.addEdge(u, cfg.idFn(n1+j))
			}
		}

		return nil
	}
}

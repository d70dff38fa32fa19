// SPDX-License-Identifier: MIT

package builder

// Wheel builds W_n: hub idFn(0) plus a rim cycle over idFn(1..n-1), with a
// spoke to every rim gene. n ≥ 4.
// Complexity: O(n).
func Wheel(n int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodWheel, n, MinWheelNodes); err != nil {
			return err
		}
		d.addGenes(n, cfg.idFn)
		hub := cfg.idFn(0)
		rim := n - 1
		for i := 0; i < rim; i++ {
			u := cfg.idFn(1 + i)
			d.addEdge(u, cfg.idFn(1+(i+1)%rim))
			d.addEdge(hub, u)
		}

		return nil
	}
}

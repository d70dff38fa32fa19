// SPDX-License-Identifier: MIT

package builder

// Grid builds a rows×cols 4-neighborhood lattice; gene r·cols+c sits at
// (r,c). Both dimensions ≥ 1.
// Complexity: O(rows·cols).
func Grid(rows, cols int) Constructor {
	return func(d *draft, cfg builderConfig) error {
		if err := validateMin(MethodGrid, rows, MinGridDim); err != nil {
			return err
		}
		if err := validateMin(MethodGrid, cols, MinGridDim); err != nil {
			return err
		}
		d.addGenes(rows*cols, cfg.idFn)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := cfg.idFn(r*cols + c)
				if c+1 < cols {
					d.addEdge(u, cfg.idFn(r*cols+c+1))
				}
				if r+1 < rows {
					d.addEdge(u, cfg.idFn((r+1)*cols+c))
				}
			}
		}

		return nil
	}
}

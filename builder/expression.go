// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/expression"
)

// Expression draws a cells × len(genes) labeled matrix. Each entry is 0 with
// probability dropout, otherwise scale·exp(sigma·N(0,1)). Draw order is
// row-major, so outputs are stable per seed.
//
// Errors: ErrTooFewVertices for cells < 1 or no genes, ErrNeedRandSource
// without an RNG.
func Expression(cells int, genes []string, opts ...BuilderOption) (*expression.Labeled, error) {
	cfg := newBuilderConfig(opts...)
	if err := validateMin(MethodExpression, cells, 1); err != nil {
		return nil, err
	}
	if err := validateMin(MethodExpression, len(genes), 1); err != nil {
		return nil, err
	}
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", MethodExpression, ErrNeedRandSource)
	}

	g := len(genes)
	data := make([]float64, cells*g)
	for i := range data {
		if cfg.dropout > 0 && cfg.rng.Float64() < cfg.dropout {
			continue
		}
		data[i] = cfg.scale * math.Exp(cfg.noiseSigma*cfg.rng.NormFloat64())
	}
	ids := make([]string, cells)
	for c := range ids {
		ids[c] = cfg.cellPrefix + strconv.Itoa(c)
	}

	return expression.NewLabeled(ids, genes, expression.NewDense(mat.NewDense(cells, g, data)))
}

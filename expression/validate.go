// SPDX-License-Identifier: MIT

package expression

import "math"

// Valid reports whether v is an acceptable expression magnitude:
// finite and non-negative.
func Valid(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

// CheckRow scans row and returns an *ExpressionError for the first invalid
// value, or nil. batch and cell are copied into the error as-is.
//
// NaN fails the v >= 0 comparison, so one test covers negatives and NaN.
func CheckRow(row []float64, batch, cell int) error {
	for g, v := range row {
		if !Valid(v) {
			return &ExpressionError{Batch: batch, Cell: cell, Gene: g, Value: v}
		}
	}

	return nil
}

// Check validates every row of m. It is O(cells × genes) and intended for
// eager validation of small inputs; batched runs validate while staging.
func Check(m Matrix) error {
	row := make([]float64, m.Genes())
	for c := 0; c < m.Cells(); c++ {
		m.RowTo(row, c)
		if err := CheckRow(row, -1, c); err != nil {
			return err
		}
	}

	return nil
}

// SPDX-License-Identifier: MIT

// Package expression holds the cells × genes input of a scoring run.
//
// The entropy engine never looks at file formats or gene symbols. It only
// needs, for each cell, a dense row of non-negative magnitudes whose column j
// is gene j of the network topology. Matrix is that contract:
//
//	type Matrix interface {
//	    Cells() int
//	    Genes() int
//	    RowTo(dst []float64, cell int)
//	}
//
// Implementations:
//
//   - Dense wraps a gonum *mat.Dense (row-major, one row per cell).
//   - Sparse stores only nonzero entries per cell; absent genes read as 0.
//   - Labeled attaches cell IDs and gene symbols to any Matrix; Align maps it
//     onto a target gene order (the topology's), reading missing genes as 0.
//
// Matrices are read-only inputs. RowTo copies, so the caller owns dst.
// Aligned views keep one scratch row and must not be shared across
// goroutines; Dense and Sparse may.
//
// Values are validated where they are consumed (CheckRow), so a bad value is
// reported with the batch and cell that carried it as an *ExpressionError,
// which unwraps to ErrInvalidExpression.
package expression

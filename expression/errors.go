// SPDX-License-Identifier: MIT

package expression

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidExpression marks a negative, NaN or infinite expression value.
	ErrInvalidExpression = errors.New("expression: invalid expression value")

	// ErrShape indicates inconsistent dimensions: label counts that do not
	// match the matrix, or an entry outside [0,cells)×[0,genes).
	ErrShape = errors.New("expression: shape mismatch")

	// ErrDuplicateGene indicates a gene symbol listed twice in a Labeled header.
	ErrDuplicateGene = errors.New("expression: duplicate gene symbol")
)

// ExpressionError locates an invalid value. Batch is -1 when the value was
// found outside a batched run.
type ExpressionError struct {
	Batch int
	Cell  int
	Gene  int
	Value float64
}

func (e *ExpressionError) Error() string {
	if e.Batch < 0 {
		return fmt.Sprintf("expression: cell %d gene %d: invalid value %v", e.Cell, e.Gene, e.Value)
	}

	return fmt.Sprintf("expression: batch %d cell %d gene %d: invalid value %v", e.Batch, e.Cell, e.Gene, e.Value)
}

// Unwrap lets errors.Is(err, ErrInvalidExpression) match.
func (e *ExpressionError) Unwrap() error { return ErrInvalidExpression }

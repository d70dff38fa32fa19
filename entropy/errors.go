// SPDX-License-Identifier: MIT

package entropy

import "errors"

var (
	// ErrResourceExhausted reports that a batch does not fit the backend's
	// memory. Callers recover by retrying with fewer rows.
	ErrResourceExhausted = errors.New("entropy: resource exhausted")

	// ErrShapeMismatch reports expression columns != topology genes, or an
	// output slice whose length differs from the row count.
	ErrShapeMismatch = errors.New("entropy: shape mismatch")

	// ErrMaxEntropy reports that the maximal entropy rate is undefined for
	// the topology (λ_max ≤ 1) or power iteration did not converge.
	ErrMaxEntropy = errors.New("entropy: maximal entropy unavailable")
)

// SPDX-License-Identifier: MIT
// Package builder: sentinel errors. Wrap with fmt.Errorf("Method: ...: %w")
// and branch with errors.Is.

package builder

import "errors"

var (
	// ErrTooFewVertices indicates a size parameter below the constructor's minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability indicates a probability outside [0,1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed indicates a nil constructor or an impossible request
	// (for example a d-regular graph that stub matching could not realize).
	ErrConstructFailed = errors.New("builder: construction failed")
)

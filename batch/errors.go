// SPDX-License-Identifier: MIT

package batch

import (
	"errors"

	"github.com/katalvlaran/scent/entropy"
)

var (
	// ErrOptionViolation is returned by NewScorer when an Option was given a
	// nonsensical value (non-positive batch size, negative start batch...).
	ErrOptionViolation = errors.New("batch: invalid option supplied")

	// ErrNilArgument is returned by NewScorer for a nil topology or backend.
	ErrNilArgument = errors.New("batch: nil topology or backend")

	// ErrStartOutOfRange is returned when WithStartBatch points past the
	// last batch of the matrix being scored.
	ErrStartOutOfRange = errors.New("batch: start batch out of range")

	// ErrShapeMismatch is entropy.ErrShapeMismatch, re-exported so callers of
	// this package need not import entropy to test for it.
	ErrShapeMismatch = entropy.ErrShapeMismatch
)

// SPDX-License-Identifier: MIT
// Package network: sentinel error set.
//
// Every message is prefixed with "network: ..." for easy grepping. Return the
// sentinels wrapped with call-site context, fmt.Errorf("Build: ...: %w", ErrX);
// callers branch with errors.Is and never on strings.

package network

import "errors"

var (
	// ErrInvalidTopology is returned when the gene universe is malformed
	// (empty, duplicate or blank symbols), when an edge references a gene
	// outside the universe, or when an edge is a self-loop.
	ErrInvalidTopology = errors.New("network: invalid topology")

	// ErrEmptyTopology is returned when a topology or induced subgraph has
	// zero edges, i.e. there is nothing to compute.
	ErrEmptyTopology = errors.New("network: topology has no edges")

	// ErrOutOfRange indicates that a gene index is outside [0, GeneCount()).
	ErrOutOfRange = errors.New("network: gene index out of range")
)

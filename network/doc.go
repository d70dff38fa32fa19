// SPDX-License-Identifier: MIT

// Package network provides the immutable gene-gene interaction topology that
// every entropy computation in scent is evaluated against.
//
// A Topology is an undirected, simple graph over a fixed gene index space of
// size G. It is stored as a symmetric CSR adjacency (rowPtr, colIdx) with
// sorted neighbor lists, so per-cell kernels can sweep edges in a single
// cache-friendly pass:
//
//	neighbors(i) = colIdx[rowPtr[i]:rowPtr[i+1]]
//
// Invariants (enforced at construction, never relaxed afterwards):
//
//   - no self-loops;
//   - adjacency is symmetric (i–j implies j–i);
//   - gene indices are stable for the lifetime of the value.
//
// There are no mutators. RestrictTo and LargestComponent return new values,
// which makes a *Topology safe to share across any number of goroutines and
// in-flight batches without locks.
//
// Typical flow:
//
//	topo, err := network.Build(universe, edges, network.WithDropSelfLoops())
//	topo, err = topo.RestrictTo(measuredGenes)   // ErrEmptyTopology if nothing remains
//	topo, err = topo.LargestComponent()
//
// Errors:
//
//	ErrInvalidTopology - malformed universe, unknown endpoint or self-loop.
//	ErrEmptyTopology   - an induced subgraph has no edges.
//	ErrOutOfRange      - a query referenced a gene index outside [0, G).
package network

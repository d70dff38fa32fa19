// SPDX-License-Identifier: MIT

// Package builder generates deterministic synthetic interaction networks and
// expression matrices for tests, benchmarks and the synth command.
//
// Networks are assembled from Constructors, each of which adds genes and
// undirected edges to a shared draft:
//
//	topo, err := builder.Build(
//	    []builder.BuilderOption{builder.WithSeed(7), builder.WithSymbNumb("G")},
//	    builder.Cycle(12),
//	    builder.RandomSparse(12, 0.1),
//	)
//
// Constructors share one ID space: index i always maps to the same gene
// symbol via the configured ID scheme, so composing Cycle(12) with
// RandomSparse(12, p) overlays chords on the ring. Re-adding an existing gene
// or edge is a no-op.
//
// Expression draws a cells × genes matrix of log-normal magnitudes with
// per-entry dropout, the usual shape of single-cell counts after library-size
// normalization.
//
// Guarantees:
//
//   - Determinism: equal options, seed and constructor order yield equal
//     outputs.
//   - Option constructors panic on meaningless values; constructors return
//     sentinel errors (ErrTooFewVertices, ErrInvalidProbability,
//     ErrNeedRandSource) and never panic.
package builder

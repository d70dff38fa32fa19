// SPDX-License-Identifier: MIT

// Package scent scores single-cell expression profiles by signaling entropy:
// the entropy rate of a random walk on a gene interaction network whose edge
// weights follow each cell's expression.
//
// For a cell with expression x over G genes and an undirected network A:
//
//	w_ij = sqrt(x_i·x_j)            for every edge (i,j)
//	P_ij = w_ij / Σ_k w_ik          (a zero row when the gene carries no weight)
//	pi_i = Σ_k w_ik / Σ_jk w_jk     (stationary distribution, closed form)
//	SR   = Σ_i pi_i · (−Σ_j P_ij log P_ij)
//
// Higher SR means a more promiscuous signaling state, a proxy for
// differentiation potency. Optionally SR is divided by log λ_max(A), the
// largest entropy rate the network admits.
//
// The module is organized in one package per concern:
//
//	network/     immutable CSR gene topology: build, restrict, components, fingerprint
//	expression/  cells × genes matrices (dense, sparse, labeled, aligned views)
//	entropy/     batched kernels, workspace arena, CPU backend, max entropy, per-cell detail
//	batch/       memory-bounded orchestration: lazy batches, halving on exhaustion, prefetch
//	builder/     seeded synthetic networks and expression for tests and benchmarks
//	ingest/      edge-list/table readers, Neo4j edge source, gene harmonization
//	output/      TSV/CSV/JSONL writers and score summaries
//	store/       run persistence in memory or SQLite
//
// The scent command (cmd/scent) wires these together.
//
// Quick example:
//
//	    TP53───MDM2
//	      \     /
//	      CDKN1A
//
//	uniform expression on a triangle gives P rows of (½,½), so SR = log 2,
//	which is also the triangle's maximum (λ_max = 2): normalized SR = 1.
package scent

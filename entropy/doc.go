// SPDX-License-Identifier: MIT

// Package entropy computes the signaling entropy rate of cells over a fixed
// interaction network.
//
// For one cell with expression x over genes 0..G-1 and topology A:
//
//	s_i  = sqrt(x_i)
//	w_ij = s_i * s_j                     for every edge i–j (geometric mean of x_i, x_j)
//	d_i  = Σ_j w_ij                      (row sum / weighted degree)
//	P_ij = w_ij / d_i                    (all-zero row when d_i == 0)
//	pi_i = d_i / Σ_k d_k                 (zero vector when Σ_k d_k == 0)
//	H_i  = -Σ_j P_ij log P_ij            (terms with P_ij == 0 skipped)
//	SR   = Σ_i pi_i H_i
//
// Weights are symmetric, so the walk P is reversible and pi is its stationary
// distribution in closed form. No eigen-solve or iteration is involved.
//
// The pipeline is split into three stages that operate on a row range of a
// shared Workspace, so the same code serves one cell (Cell) and a batch
// split across goroutines (CPU):
//
//	BuildTransitions -> SolveStationary -> ReduceEntropy
//
// Storage follows the topology's CSR layout: a cell's transition matrix is a
// row of length Slots() (=2E), aligned with topology.CSR() colIdx. Nothing is
// ever G×G.
//
// Backends:
//
//	Backend is the batched compute capability the orchestrator drives. CPU is
//	the built-in implementation; WithMemoryLimit makes it report
//	ErrResourceExhausted for batches whose workspace would not fit, which is
//	how the caller learns to shrink batches.
//
// MaxEntropy returns log(λ_max(A)), the entropy rate of the unweighted walk's
// maximal-entropy chain. Dividing SR by it gives a score in [0,1].
//
// Errors:
//
//	ErrResourceExhausted - batch workspace exceeds the backend's memory limit.
//	ErrShapeMismatch     - expression width or output length disagrees with the topology.
//	ErrMaxEntropy        - spectral radius could not be computed or is ≤ 1.
//	*expression.ExpressionError - negative or non-finite expression value.
package entropy

// SPDX-License-Identifier: MIT

// Package batch drives the entropy backend over a whole expression matrix in
// memory-bounded batches and emits scores in input order.
//
// Batch k covers cells [k·bs, min((k+1)·bs, n)). Batches is a lazy iterator:
// nothing is computed until the caller ranges over it, and stopping early
// stops the run. A run can be resumed from any batch with WithStartBatch;
// because every cell is scored independently, the batch size only affects
// throughput, never values.
//
//	sc, err := batch.NewScorer(topo, entropy.NewCPU(), batch.WithBatchSize(512))
//	for res, err := range sc.Batches(ctx, m) {
//	    if err != nil { ... }
//	    write(res.Offset, res.Scores)
//	}
//
// Failure policy:
//
//   - Shape and topology errors surface before the first batch.
//   - entropy.ErrResourceExhausted halves the compute chunk and retries; the
//     smaller chunk is kept for the rest of the run. Failing with one row is
//     fatal.
//   - Invalid expression is fatal; the *expression.ExpressionError carries the
//     batch index and the global cell index.
//   - ctx is checked at every batch boundary; a batch is emitted whole or not
//     at all.
//
// With WithPrefetch, a staging goroutine copies and validates batch k+1 into
// a second buffer while batch k computes. Order and values are unchanged.
package batch

// SPDX-License-Identifier: MIT

package batch

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/katalvlaran/scent/entropy"
	"github.com/katalvlaran/scent/network"
)

// DefaultOverhead is the share of the budget held back for everything that
// is not the batch workspace.
const DefaultOverhead = 0.3

// RowBytes is the memory one cell costs a run: its workspace rows plus two
// staging rows (prefetch double-buffers).
func RowBytes(topo *network.Topology) uint64 {
	return entropy.WorkspaceBytes(1, topo) + 2*8*uint64(topo.GeneCount())
}

// AutoBatchSize returns the largest power of two whose per-batch memory fits
// in (1-overhead)·budget bytes.
//
// Errors:
//   - ErrOptionViolation when overhead is outside [0,1).
//   - entropy.ErrResourceExhausted when not even one cell fits.
func AutoBatchSize(topo *network.Topology, budget uint64, overhead float64) (int, error) {
	if !(overhead >= 0 && overhead < 1) {
		return 0, fmt.Errorf("AutoBatchSize: overhead %g: %w", overhead, ErrOptionViolation)
	}
	usable := uint64(float64(budget) * (1 - overhead))
	per := RowBytes(topo)
	if per > usable {
		return 0, fmt.Errorf("AutoBatchSize: one cell needs %s, %s usable: %w",
			humanize.IBytes(per), humanize.IBytes(usable), entropy.ErrResourceExhausted)
	}
	n := 1
	for uint64(n)*2*per <= usable && n < 1<<30 {
		n *= 2
	}

	return n, nil
}

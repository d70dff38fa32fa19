// SPDX-License-Identifier: MIT
// Package batch: functional options for NewScorer.
//
// Invalid values are recorded and surfaced by NewScorer as
// ErrOptionViolation, so option lists can be built from configuration
// without panicking.

package batch

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	// DefaultBatchSize is used when WithBatchSize is not given.
	DefaultBatchSize = 128

	// DefaultProgressInterval throttles progress log lines.
	DefaultProgressInterval = 5 * time.Second
)

// Option configures a Scorer.
type Option func(*options)

type options struct {
	batchSize        int
	startBatch       int
	prefetch         bool
	normalize        bool
	logger           *slog.Logger
	progressInterval time.Duration

	err error
}

func defaultOptions() options {
	return options{
		batchSize:        DefaultBatchSize,
		logger:           slog.New(slog.DiscardHandler),
		progressInterval: DefaultProgressInterval,
	}
}

func (o *options) fail(format string, args ...any) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: "+format, append([]any{ErrOptionViolation}, args...)...)
	}
}

// WithBatchSize sets the number of cells per batch. n must be ≥ 1.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n < 1 {
			o.fail("batch size must be >= 1 (%d)", n)
			return
		}
		o.batchSize = n
	}
}

// WithStartBatch resumes a run at batch k (0-based). k must be ≥ 0.
func WithStartBatch(k int) Option {
	return func(o *options) {
		if k < 0 {
			o.fail("start batch cannot be negative (%d)", k)
			return
		}
		o.startBatch = k
	}
}

// WithPrefetch enables double-buffered staging on a separate goroutine.
func WithPrefetch(on bool) Option {
	return func(o *options) { o.prefetch = on }
}

// WithNormalize divides every score by entropy.MaxEntropy of the topology.
func WithNormalize(on bool) Option {
	return func(o *options) { o.normalize = on }
}

// WithLogger sets the logger for progress and retry messages. nil keeps the
// discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgressInterval sets the minimum time between progress lines. Zero
// logs every batch.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			o.fail("progress interval cannot be negative (%s)", d)
			return
		}
		o.progressInterval = d
	}
}

// SPDX-License-Identifier: MIT

package batch

import (
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"
)

// progress logs batch completion at most once per interval, plus a final
// line when the run ends.
type progress struct {
	logger    *slog.Logger
	sometimes *rate.Sometimes
	total     int
	cells     int
	began     time.Time
}

func newProgress(logger *slog.Logger, interval time.Duration, total, cells int) *progress {
	st := &rate.Sometimes{First: 1, Interval: interval}
	if interval == 0 {
		st.Every = 1
	}

	return &progress{
		logger:    logger,
		sometimes: st,
		total:     total,
		cells:     cells,
		began:     time.Now(),
	}
}

// batchDone is called after batch k (0-based) with done cells finished so far.
func (p *progress) batchDone(k, done int) {
	if k+1 == p.total {
		elapsed := time.Since(p.began)
		p.logger.Info("scoring finished",
			"batches", p.total,
			"cells", humanize.Comma(int64(p.cells)),
			"elapsed", elapsed.Round(time.Millisecond),
			"cells_per_sec", rateOf(done, elapsed),
		)
		return
	}
	p.sometimes.Do(func() {
		p.logger.Info("scoring progress",
			"batch", k+1,
			"of", p.total,
			"cells", humanize.Comma(int64(done)),
			"pct", 100*done/max(p.cells, 1),
		)
	})
}

func rateOf(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}

	return float64(n) / d.Seconds()
}

// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/montanaflynn/stats"
)

// ErrNoScores indicates Summarize was given nothing to summarize.
var ErrNoScores = errors.New("output: no scores")

// Summary describes a score distribution. StdDev is the population standard
// deviation; P05 and P95 are nearest-rank percentiles.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
	P05    float64
	P95    float64
}

// Summarize computes a Summary of scores.
func Summarize(scores []float64) (Summary, error) {
	if len(scores) == 0 {
		return Summary{}, ErrNoScores
	}
	data := stats.Float64Data(scores)
	s := Summary{Count: len(scores)}
	var err error
	for _, f := range []struct {
		dst *float64
		fn  func() (float64, error)
	}{
		{&s.Min, data.Min},
		{&s.Max, data.Max},
		{&s.Mean, data.Mean},
		{&s.Median, data.Median},
		{&s.StdDev, data.StandardDeviationPopulation},
		{&s.P05, func() (float64, error) { return data.PercentileNearestRank(5) }},
		{&s.P95, func() (float64, error) { return data.PercentileNearestRank(95) }},
	} {
		if *f.dst, err = f.fn(); err != nil {
			return Summary{}, fmt.Errorf("Summarize: %w", err)
		}
	}

	return s, nil
}

// Print writes s as aligned "name value" lines.
func (s Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"cells   %s\nmin     %.6f\np05     %.6f\nmedian  %.6f\nmean    %.6f\np95     %.6f\nmax     %.6f\nstddev  %.6f\n",
		humanize.Comma(int64(s.Count)), s.Min, s.P05, s.Median, s.Mean, s.P95, s.Max, s.StdDev)

	return err
}

// SPDX-License-Identifier: MIT

package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/scent/network"
)

const (
	methodReadEdgeList   = "ReadEdgeList"
	methodReadExpression = "ReadExpression"
)

// newCSV returns a csv.Reader configured for the delimited formats we accept.
func newCSV(r io.Reader, o readOptions) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = o.delimiter
	cr.Comment = commentChar
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	return cr
}

// malformed wraps err (a csv.ParseError or a field-level problem) with the
// reader's current line.
func malformed(method string, cr *csv.Reader, format string, args ...any) error {
	line, _ := cr.FieldPos(0)
	return fmt.Errorf("%s: line %d: %s: %w", method, line, fmt.Sprintf(format, args...), ErrMalformed)
}

// ReadEdgeList parses an undirected gene-pair list: the first two fields of
// each record are symbols, any further fields are ignored unless WithMinScore
// selects one as a confidence filter.
//
// Duplicate pairs and self-loops are returned as read; network.Build collapses
// the former and Harmonize drops the latter.
func ReadEdgeList(r io.Reader, opts ...ReadOption) ([]network.Edge, error) {
	o := gatherRead(opts...)
	cr := newCSV(r, o)
	cr.FieldsPerRecord = -1

	var edges []network.Edge
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", methodReadEdgeList, err, ErrMalformed)
		}
		if first && o.header {
			first = false
			continue
		}
		first = false
		if len(rec) < 2 {
			return nil, malformed(methodReadEdgeList, cr, "want at least 2 fields, got %d", len(rec))
		}
		a, b := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		if a == "" || b == "" {
			return nil, malformed(methodReadEdgeList, cr, "blank gene symbol")
		}
		if o.scoreColumn >= 0 {
			if o.scoreColumn >= len(rec) {
				return nil, malformed(methodReadEdgeList, cr, "no score column %d", o.scoreColumn)
			}
			score, err := strconv.ParseFloat(strings.TrimSpace(rec[o.scoreColumn]), 64)
			if err != nil {
				return nil, malformed(methodReadEdgeList, cr, "score %q", rec[o.scoreColumn])
			}
			if score < o.minScore {
				continue
			}
		}
		edges = append(edges, network.Edge{A: a, B: b})
	}

	return edges, nil
}

// UniverseOf returns the sorted distinct endpoint symbols of edges.
func UniverseOf(edges []network.Edge) []string {
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		seen[e.A] = struct{}{}
		seen[e.B] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)

	return out
}

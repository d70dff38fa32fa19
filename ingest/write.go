// SPDX-License-Identifier: MIT

package ingest

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/network"
)

// WriteEdgeList writes edges in the layout ReadEdgeList accepts, without a
// header.
func WriteEdgeList(w io.Writer, edges []network.Edge, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	for _, e := range edges {
		if err := cw.Write([]string{e.A, e.B}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteExpression writes l as a cells × genes table that ReadExpression
// reads back. corner labels the identifier column.
func WriteExpression(w io.Writer, l *expression.Labeled, corner string, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter
	genes := l.GeneSymbols()
	if err := cw.Write(append([]string{corner}, genes...)); err != nil {
		return err
	}
	row := make([]float64, len(genes))
	rec := make([]string, len(genes)+1)
	for c, id := range l.CellIDs() {
		l.RowTo(row, c)
		rec[0] = id
		for j, v := range row {
			rec[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

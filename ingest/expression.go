// SPDX-License-Identifier: MIT

package ingest

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/expression"
)

// ReadExpression parses a delimited expression table. The header's first
// field is a corner label and is ignored; the rest are gene symbols (or cell
// identifiers with WithGenesAsRows). Each following record starts with its
// row identifier. Blank values read as 0. Values are not validated here; the
// scorer rejects negative, NaN and +Inf entries with their coordinates.
func ReadExpression(r io.Reader, opts ...ReadOption) (*expression.Labeled, error) {
	o := gatherRead(opts...)
	cr := newCSV(r, o)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty input: %w", methodReadExpression, ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", methodReadExpression, err, ErrMalformed)
	}
	if len(header) < 2 {
		return nil, malformed(methodReadExpression, cr, "header needs a corner label and at least one column")
	}
	cols := trimAll(header[1:])

	var (
		ids  []string
		rows [][]float64
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", methodReadExpression, err, ErrMalformed)
		}
		row := make([]float64, len(cols))
		for j, field := range rec[1:] {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, malformed(methodReadExpression, cr, "column %q: value %q", cols[j], field)
			}
			row[j] = v
		}
		ids = append(ids, strings.TrimSpace(rec[0]))
		rows = append(rows, row)
	}

	if o.genesAsRows {
		return transposed(ids, cols, rows)
	}
	d, err := expression.FromRows(len(cols), rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodReadExpression, err)
	}

	return expression.NewLabeled(ids, cols, d)
}

// transposed builds a cells × genes matrix from a genes × cells table.
func transposed(genes, cells []string, rows [][]float64) (*expression.Labeled, error) {
	if len(genes) == 0 {
		return nil, fmt.Errorf("%s: no gene rows: %w", methodReadExpression, ErrMalformed)
	}
	g := mat.NewDense(len(genes), len(cells), nil)
	for i, row := range rows {
		g.SetRow(i, row)
	}
	var x mat.Dense
	x.CloneFrom(g.T())

	return expression.NewLabeled(cells, genes, expression.NewDense(&x))
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}

	return out
}

// Open opens path for reading, decompressing it when the name ends in ".gz".
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &gzipFile{Reader: zr, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

// SPDX-License-Identifier: MIT

package expression

import "fmt"

// Labeled attaches cell identifiers and gene symbols to a Matrix. It is what
// loaders return; the engine consumes the result of Align.
type Labeled struct {
	Matrix
	cellIDs []string
	genes   []string
	index   map[string]int
}

// NewLabeled validates that the label counts match m and that gene symbols
// are unique. The slices are copied.
func NewLabeled(cellIDs, genes []string, m Matrix) (*Labeled, error) {
	if len(cellIDs) != m.Cells() {
		return nil, fmt.Errorf("NewLabeled: %d cell IDs for %d cells: %w", len(cellIDs), m.Cells(), ErrShape)
	}
	if len(genes) != m.Genes() {
		return nil, fmt.Errorf("NewLabeled: %d gene symbols for %d columns: %w", len(genes), m.Genes(), ErrShape)
	}
	index := make(map[string]int, len(genes))
	for j, g := range genes {
		if _, dup := index[g]; dup {
			return nil, fmt.Errorf("NewLabeled: %q: %w", g, ErrDuplicateGene)
		}
		index[g] = j
	}

	return &Labeled{
		Matrix:  m,
		cellIDs: append([]string(nil), cellIDs...),
		genes:   append([]string(nil), genes...),
		index:   index,
	}, nil
}

// CellIDs returns a copy of the cell identifiers in row order.
func (l *Labeled) CellIDs() []string { return append([]string(nil), l.cellIDs...) }

// GeneSymbols returns a copy of the column symbols.
func (l *Labeled) GeneSymbols() []string { return append([]string(nil), l.genes...) }

// Column returns the column of a gene symbol.
func (l *Labeled) Column(symbol string) (int, bool) {
	j, ok := l.index[symbol]

	return j, ok
}

// Align returns a view whose column j is target[j]. Target genes the matrix
// does not carry read as 0 and are listed by Missing.
func (l *Labeled) Align(target []string) *Aligned {
	cols := make([]int, len(target))
	var missing []string
	for j, g := range target {
		src, ok := l.index[g]
		if !ok {
			src = -1
			missing = append(missing, g)
		}
		cols[j] = src
	}
	a := &Aligned{src: l.Matrix, cols: cols, missing: missing}
	if d, ok := l.Matrix.(*Dense); ok {
		a.dense = d
	} else {
		a.buf = make([]float64, l.Matrix.Genes())
	}

	return a
}

// Aligned is a column-remapped view of a Matrix. It holds one scratch row,
// so a single Aligned must not be read from several goroutines at once.
type Aligned struct {
	src     Matrix
	dense   *Dense // fast path: read rows in place
	cols    []int  // target column -> source column, -1 if absent
	buf     []float64
	missing []string
}

func (a *Aligned) Cells() int { return a.src.Cells() }
func (a *Aligned) Genes() int { return len(a.cols) }

func (a *Aligned) RowTo(dst []float64, cell int) {
	var row []float64
	if a.dense != nil {
		row = a.dense.row(cell)
	} else {
		a.src.RowTo(a.buf, cell)
		row = a.buf
	}
	for j, src := range a.cols {
		if src < 0 {
			dst[j] = 0
			continue
		}
		dst[j] = row[src]
	}
}

// Missing lists the target genes absent from the source, in target order.
func (a *Aligned) Missing() []string { return append([]string(nil), a.missing...) }

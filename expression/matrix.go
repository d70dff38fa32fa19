// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a read-only cells × genes expression source.
//
// RowTo copies the expression of cell into dst, which must have length
// Genes(). Implementations panic on an out-of-range cell or a short dst, in
// the manner of gonum's accessors: both are programming errors, not data
// errors.
type Matrix interface {
	Cells() int
	Genes() int
	RowTo(dst []float64, cell int)
}

// Dense is a Matrix backed by a row-major gonum matrix.
type Dense struct {
	m     *mat.Dense // nil when cells == 0
	cells int
	genes int
}

// NewDense wraps m without copying. Rows are cells, columns are genes.
func NewDense(m *mat.Dense) *Dense {
	r, c := m.Dims()

	return &Dense{m: m, cells: r, genes: c}
}

// FromRows copies rows into a new Dense. Every row must have length genes.
// Zero rows are allowed and yield an empty matrix with the given width.
func FromRows(genes int, rows [][]float64) (*Dense, error) {
	if genes <= 0 {
		return nil, fmt.Errorf("FromRows: genes=%d: %w", genes, ErrShape)
	}
	if len(rows) == 0 {
		return &Dense{genes: genes}, nil
	}
	data := make([]float64, 0, len(rows)*genes)
	for i, r := range rows {
		if len(r) != genes {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(r), genes, ErrShape)
		}
		data = append(data, r...)
	}

	return NewDense(mat.NewDense(len(rows), genes, data)), nil
}

func (d *Dense) Cells() int { return d.cells }
func (d *Dense) Genes() int { return d.genes }

func (d *Dense) RowTo(dst []float64, cell int) {
	copy(dst[:d.genes], d.m.RawRowView(cell))
}

// Raw returns the backing gonum matrix, or nil for an empty Dense.
func (d *Dense) Raw() *mat.Dense { return d.m }

// row returns a view of the backing storage; used by Aligned to skip a copy.
func (d *Dense) row(cell int) []float64 { return d.m.RawRowView(cell) }

// Entry is one nonzero of a Sparse matrix.
type Entry struct {
	Cell  int
	Gene  int
	Value float64
}

// Sparse is a Matrix that stores only listed entries; every other gene reads
// as 0. Storage is compressed by cell (CSR over cells).
type Sparse struct {
	cells  int
	genes  int
	rowPtr []int
	gene   []int
	value  []float64
}

// NewSparse builds a Sparse from unordered entries. Entries that share a
// (cell, gene) pair are summed, the usual coordinate-format convention.
// Every entry is validated before summing, so a negative or non-finite
// value is reported with its cell and gene even if a duplicate would mask it.
func NewSparse(cells, genes int, entries []Entry) (*Sparse, error) {
	if cells < 0 || genes <= 0 {
		return nil, fmt.Errorf("NewSparse: %d×%d: %w", cells, genes, ErrShape)
	}
	rowPtr := make([]int, cells+1)
	for _, e := range entries {
		if e.Cell < 0 || e.Cell >= cells || e.Gene < 0 || e.Gene >= genes {
			return nil, fmt.Errorf("NewSparse: entry (%d,%d) outside %d×%d: %w", e.Cell, e.Gene, cells, genes, ErrShape)
		}
		if !Valid(e.Value) {
			return nil, fmt.Errorf("NewSparse: %w", &ExpressionError{Batch: -1, Cell: e.Cell, Gene: e.Gene, Value: e.Value})
		}
		rowPtr[e.Cell+1]++
	}
	for i := 0; i < cells; i++ {
		rowPtr[i+1] += rowPtr[i]
	}
	fill := make([]int, cells)
	copy(fill, rowPtr[:cells])
	gene := make([]int, len(entries))
	value := make([]float64, len(entries))
	for _, e := range entries {
		gene[fill[e.Cell]] = e.Gene
		value[fill[e.Cell]] = e.Value
		fill[e.Cell]++
	}

	return &Sparse{cells: cells, genes: genes, rowPtr: rowPtr, gene: gene, value: value}, nil
}

func (s *Sparse) Cells() int { return s.cells }
func (s *Sparse) Genes() int { return s.genes }

func (s *Sparse) RowTo(dst []float64, cell int) {
	if cell < 0 || cell >= s.cells {
		panic(fmt.Sprintf("expression: Sparse.RowTo cell %d out of range [0,%d)", cell, s.cells))
	}
	dst = dst[:s.genes]
	clear(dst)
	for k := s.rowPtr[cell]; k < s.rowPtr[cell+1]; k++ {
		dst[s.gene[k]] += s.value[k]
	}
}

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.value) }

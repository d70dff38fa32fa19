package expression_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/expression"
)

func TestDense_RowTo(t *testing.T) {
	d := expression.NewDense(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	require.Equal(t, 2, d.Cells())
	require.Equal(t, 3, d.Genes())
	row := make([]float64, 3)
	d.RowTo(row, 1)
	require.Equal(t, []float64{4, 5, 6}, row)

	// RowTo copies
	row[0] = -1
	d.RowTo(row, 1)
	require.Equal(t, 4.0, row[0])
}

func TestFromRows(t *testing.T) {
	d, err := expression.FromRows(2, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, 2, d.Cells())

	empty, err := expression.FromRows(5, nil)
	require.NoError(t, err)
	require.Zero(t, empty.Cells())
	require.Equal(t, 5, empty.Genes())
	require.Nil(t, empty.Raw())

	_, err = expression.FromRows(2, [][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, expression.ErrShape)
	_, err = expression.FromRows(0, nil)
	require.ErrorIs(t, err, expression.ErrShape)
}

func TestSparse(t *testing.T) {
	s, err := expression.NewSparse(3, 4, []expression.Entry{
		{Cell: 2, Gene: 1, Value: 5},
		{Cell: 0, Gene: 3, Value: 1},
		{Cell: 2, Gene: 1, Value: 2}, // summed with the first entry
	})
	require.NoError(t, err)
	require.Equal(t, 3, s.NNZ())

	row := []float64{9, 9, 9, 9}
	s.RowTo(row, 1)
	require.Equal(t, []float64{0, 0, 0, 0}, row, "absent genes read as zero")
	s.RowTo(row, 2)
	require.Equal(t, []float64{0, 7, 0, 0}, row)
	s.RowTo(row, 0)
	require.Equal(t, []float64{0, 0, 0, 1}, row)

	_, err = expression.NewSparse(1, 2, []expression.Entry{{Cell: 0, Gene: 2}})
	require.ErrorIs(t, err, expression.ErrShape)
	require.Panics(t, func() { s.RowTo(row, 3) })
}

func TestSparse_RejectsInvalidEntries(t *testing.T) {
	// -1 then +2 would sum to a valid 1
	_, err := expression.NewSparse(2, 3, []expression.Entry{
		{Cell: 1, Gene: 2, Value: -1},
		{Cell: 1, Gene: 2, Value: 2},
	})
	require.ErrorIs(t, err, expression.ErrInvalidExpression)
	var ee *expression.ExpressionError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, expression.ExpressionError{Batch: -1, Cell: 1, Gene: 2, Value: -1}, *ee)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = expression.NewSparse(1, 1, []expression.Entry{{Cell: 0, Gene: 0, Value: v}})
		require.ErrorIs(t, err, expression.ErrInvalidExpression, "value %v", v)
	}
}

func TestLabeled_Align(t *testing.T) {
	d, err := expression.FromRows(3, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	l, err := expression.NewLabeled([]string{"c1", "c2"}, []string{"A", "B", "C"}, d)
	require.NoError(t, err)

	a := l.Align([]string{"C", "X", "A"})
	require.Equal(t, 2, a.Cells())
	require.Equal(t, 3, a.Genes())
	require.Equal(t, []string{"X"}, a.Missing())
	row := make([]float64, 3)
	a.RowTo(row, 1)
	require.Equal(t, []float64{6, 0, 4}, row)

	j, ok := l.Column("B")
	require.True(t, ok)
	require.Equal(t, 1, j)
	require.Equal(t, []string{"c1", "c2"}, l.CellIDs())
}

func TestLabeled_AlignSparse(t *testing.T) {
	s, err := expression.NewSparse(1, 2, []expression.Entry{{Cell: 0, Gene: 1, Value: 3}})
	require.NoError(t, err)
	l, err := expression.NewLabeled([]string{"c"}, []string{"A", "B"}, s)
	require.NoError(t, err)
	row := make([]float64, 2)
	l.Align([]string{"B", "A"}).RowTo(row, 0)
	require.Equal(t, []float64{3, 0}, row)
}

func TestLabeled_Rejects(t *testing.T) {
	d, _ := expression.FromRows(2, [][]float64{{1, 2}})
	_, err := expression.NewLabeled([]string{"a", "b"}, []string{"A", "B"}, d)
	assert.ErrorIs(t, err, expression.ErrShape)
	_, err = expression.NewLabeled([]string{"a"}, []string{"A"}, d)
	assert.ErrorIs(t, err, expression.ErrShape)
	_, err = expression.NewLabeled([]string{"a"}, []string{"A", "A"}, d)
	assert.ErrorIs(t, err, expression.ErrDuplicateGene)
}

func TestCheckRow(t *testing.T) {
	require.NoError(t, expression.CheckRow([]float64{0, 1.5, 1e300}, 0, 0))

	for _, bad := range []float64{-1e-12, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := expression.CheckRow([]float64{1, bad}, 4, 17)
		require.ErrorIs(t, err, expression.ErrInvalidExpression)
		var ee *expression.ExpressionError
		require.True(t, errors.As(err, &ee))
		require.Equal(t, 4, ee.Batch)
		require.Equal(t, 17, ee.Cell)
		require.Equal(t, 1, ee.Gene)
		require.Contains(t, ee.Error(), "batch 4 cell 17")
	}
}

func TestCheck(t *testing.T) {
	d, _ := expression.FromRows(2, [][]float64{{1, 2}, {3, -4}})
	err := expression.Check(d)
	var ee *expression.ExpressionError
	require.ErrorAs(t, err, &ee)
	require.Equal(t, -1, ee.Batch)
	require.Equal(t, 1, ee.Cell)
	require.NotContains(t, ee.Error(), "batch")
}

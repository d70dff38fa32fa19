package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/scent/builder"
	"github.com/katalvlaran/scent/entropy"
	"github.com/katalvlaran/scent/network"
)

type TopologySuite struct {
	suite.Suite
}

func (s *TopologySuite) build(opts []builder.BuilderOption, cons ...builder.Constructor) *network.Topology {
	topo, err := builder.Build(opts, cons...)
	require.NoError(s.T(), err)

	return topo
}

func (s *TopologySuite) TestShapes() {
	cases := []struct {
		name         string
		con          builder.Constructor
		genes, edges int
		maxDeg       int
	}{
		{"path5", builder.Path(5), 5, 4, 2},
		{"cycle6", builder.Cycle(6), 6, 6, 2},
		{"star6", builder.Star(6), 6, 5, 5},
		{"wheel6", builder.Wheel(6), 6, 10, 5},
		{"K5", builder.Complete(5), 5, 10, 4},
		{"K2,3", builder.CompleteBipartite(2, 3), 5, 6, 3},
		{"grid2x3", builder.Grid(2, 3), 6, 7, 3},
	}
	for _, tc := range cases {
		topo := s.build(nil, tc.con)
		st := topo.Stats()
		require.Equal(s.T(), tc.genes, st.Genes, tc.name)
		require.Equal(s.T(), tc.edges, st.Edges, tc.name)
		require.Equal(s.T(), tc.maxDeg, st.MaxDegree, tc.name)
	}
}

func (s *TopologySuite) TestStarHub() {
	topo := s.build([]builder.BuilderOption{builder.WithSymbolIDs()}, builder.Star(4))
	require.Equal(s.T(), []string{"A", "B", "C", "D"}, topo.Genes())
	d, err := topo.Degree(0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, d)
}

func (s *TopologySuite) TestComposeOverlays() {
	// The same index space: chords land on the ring.
	topo := s.build([]builder.BuilderOption{builder.WithSeed(1)}, builder.Cycle(10), builder.Complete(3))
	require.Equal(s.T(), 10, topo.GeneCount())
	require.Equal(s.T(), 11, topo.EdgeCount()) // 10 ring + 0–2 chord
	require.True(s.T(), topo.HasEdge(0, 2))
}

func (s *TopologySuite) TestIdempotent() {
	a := s.build(nil, builder.Cycle(7))
	b := s.build(nil, builder.Cycle(7), builder.Cycle(7))
	require.Equal(s.T(), a.Fingerprint(), b.Fingerprint())
}

func (s *TopologySuite) TestRandomDeterministic() {
	a := s.build([]builder.BuilderOption{builder.WithSeed(42)}, builder.RandomSparse(50, 0.1))
	b := s.build([]builder.BuilderOption{builder.WithSeed(42)}, builder.RandomSparse(50, 0.1))
	c := s.build([]builder.BuilderOption{builder.WithSeed(43)}, builder.RandomSparse(50, 0.1))
	require.Equal(s.T(), a.Fingerprint(), b.Fingerprint())
	require.NotEqual(s.T(), a.Fingerprint(), c.Fingerprint())

	full := s.build(nil, builder.RandomSparse(6, 1))
	require.Equal(s.T(), 15, full.EdgeCount())
}

func (s *TopologySuite) TestRandomRegular() {
	topo := s.build([]builder.BuilderOption{builder.WithSeed(3)}, builder.RandomRegular(20, 3))
	for i := 0; i < 20; i++ {
		d, err := topo.Degree(i)
		require.NoError(s.T(), err)
		require.Equal(s.T(), 3, d)
	}
	// uniform expression on a regular graph reaches log(d)
	x := make([]float64, 20)
	for i := range x {
		x[i] = 1
	}
	cd, err := entropy.Cell(x, topo)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), math.Log(3), cd.Score, 1e-12)
}

func (s *TopologySuite) TestErrors() {
	cases := []struct {
		con  builder.Constructor
		want error
	}{
		{builder.Path(1), builder.ErrTooFewVertices},
		{builder.Cycle(2), builder.ErrTooFewVertices},
		{builder.Star(1), builder.ErrTooFewVertices},
		{builder.Wheel(3), builder.ErrTooFewVertices},
		{builder.Complete(1), builder.ErrTooFewVertices},
		{builder.CompleteBipartite(0, 3), builder.ErrTooFewVertices},
		{builder.Grid(0, 3), builder.ErrTooFewVertices},
		{builder.RandomSparse(5, 1.5), builder.ErrInvalidProbability},
		{builder.RandomSparse(5, 0.5), builder.ErrNeedRandSource},
		{builder.RandomRegular(5, 3), builder.ErrTooFewVertices},
		{builder.RandomRegular(6, 2), builder.ErrNeedRandSource},
		{nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		_, _, err := builder.Assemble(nil, tc.con)
		require.ErrorIs(s.T(), err, tc.want)
	}
	// edgeless result cannot be scored but still builds
	topo := s.build(nil, builder.RandomSparse(4, 0))
	require.Zero(s.T(), topo.EdgeCount())
}

func TestTopologySuite(t *testing.T) {
	suite.Run(t, new(TopologySuite))
}

func TestExpression(t *testing.T) {
	genes := []string{"a", "b", "c", "d"}
	m, err := builder.Expression(50, genes, builder.WithSeed(9), builder.WithDropout(0.5), builder.WithScale(2))
	require.NoError(t, err)
	require.Equal(t, 50, m.Cells())
	require.Equal(t, genes, m.GeneSymbols())
	require.Equal(t, "cell49", m.CellIDs()[49])

	zeros := 0
	row := make([]float64, 4)
	for c := 0; c < 50; c++ {
		m.RowTo(row, c)
		for _, v := range row {
			require.GreaterOrEqual(t, v, 0.0)
			if v == 0 {
				zeros++
			}
		}
	}
	require.InDelta(t, 100, zeros, 30, "about half the entries drop out")

	again, err := builder.Expression(50, genes, builder.WithSeed(9), builder.WithDropout(0.5), builder.WithScale(2))
	require.NoError(t, err)
	other := make([]float64, 4)
	for c := 0; c < 50; c++ {
		m.RowTo(row, c)
		again.RowTo(other, c)
		require.Equal(t, row, other)
	}

	_, err = builder.Expression(5, genes)
	require.ErrorIs(t, err, builder.ErrNeedRandSource)
	_, err = builder.Expression(0, genes, builder.WithSeed(1))
	require.ErrorIs(t, err, builder.ErrTooFewVertices)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { builder.WithIDScheme(nil) })
	require.Panics(t, func() { builder.WithRand(nil) })
	require.Panics(t, func() { builder.WithDropout(1.1) })
	require.Panics(t, func() { builder.WithScale(0) })
	require.Panics(t, func() { builder.WithNoise(-1) })
	require.Panics(t, func() { builder.SymbolIDFn(26) })
}

func TestIDSchemes(t *testing.T) {
	require.Equal(t, "g12", builder.DefaultIDFn(12))
	require.Equal(t, "AA", builder.ExcelColumnIDFn(26))
	require.Equal(t, "GENE7", builder.SymbolNumberIDFn("GENE")(7))
}

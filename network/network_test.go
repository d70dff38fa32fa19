package network_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/scent/network"
)

func triangle(t *testing.T) *network.Topology {
	t.Helper()
	topo, err := network.Build(
		[]string{"A", "B", "C"},
		[]network.Edge{{A: "A", B: "B"}, {A: "B", B: "C"}, {A: "A", B: "C"}},
	)
	require.NoError(t, err)

	return topo
}

// BuildSuite covers construction and validation.
type BuildSuite struct {
	suite.Suite
}

func (s *BuildSuite) TestTriangleShape() {
	topo := triangle(s.T())
	require.Equal(s.T(), 3, topo.GeneCount())
	require.Equal(s.T(), 3, topo.EdgeCount())
	require.Equal(s.T(), 6, topo.Slots())
	for i := 0; i < 3; i++ {
		d, err := topo.Degree(i)
		require.NoError(s.T(), err)
		require.Equal(s.T(), 2, d)
	}
	nb, err := topo.Neighbors(1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 2}, nb)
}

func (s *BuildSuite) TestDuplicatesCollapse() {
	topo, err := network.Build(
		[]string{"A", "B"},
		[]network.Edge{{A: "A", B: "B"}, {A: "B", B: "A"}, {A: "A", B: "B"}},
	)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, topo.EdgeCount())
	require.Equal(s.T(), [][2]int{{0, 1}}, topo.Edges())
}

func (s *BuildSuite) TestRejects() {
	cases := []struct {
		name     string
		universe []string
		edges    []network.Edge
	}{
		{"empty universe", nil, nil},
		{"blank symbol", []string{"A", ""}, nil},
		{"duplicate symbol", []string{"A", "A"}, nil},
		{"unknown endpoint", []string{"A", "B"}, []network.Edge{{A: "A", B: "Z"}}},
		{"self loop", []string{"A", "B"}, []network.Edge{{A: "A", B: "A"}}},
	}
	for _, tc := range cases {
		_, err := network.Build(tc.universe, tc.edges)
		require.ErrorIs(s.T(), err, network.ErrInvalidTopology, tc.name)
	}
}

func (s *BuildSuite) TestRelaxedOptions() {
	topo, err := network.Build(
		[]string{"A", "B"},
		[]network.Edge{{A: "A", B: "A"}, {A: "A", B: "Z"}, {A: "A", B: "B"}},
		network.WithDropSelfLoops(), network.WithDropUnknown(),
	)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, topo.EdgeCount())
}

func (s *BuildSuite) TestIsolatedGenesKept() {
	topo, err := network.Build([]string{"A", "B", "C"}, []network.Edge{{A: "A", B: "B"}})
	require.NoError(s.T(), err)
	d, err := topo.Degree(2)
	require.NoError(s.T(), err)
	require.Zero(s.T(), d)
	require.Equal(s.T(), 1, topo.Stats().Isolated)
}

func (s *BuildSuite) TestBuildIndexed() {
	topo, err := network.BuildIndexed(4, [][2]int{{0, 1}, {1, 0}, {2, 3}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, topo.EdgeCount())
	g, err := topo.Gene(3)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "g3", g)

	_, err = network.BuildIndexed(2, [][2]int{{0, 2}})
	require.ErrorIs(s.T(), err, network.ErrInvalidTopology)
	_, err = network.BuildIndexed(2, [][2]int{{1, 1}})
	require.ErrorIs(s.T(), err, network.ErrInvalidTopology)
	_, err = network.BuildIndexed(0, nil)
	require.ErrorIs(s.T(), err, network.ErrInvalidTopology)
}

func TestBuildSuite(t *testing.T) {
	suite.Run(t, new(BuildSuite))
}

func TestQueries_OutOfRange(t *testing.T) {
	topo := triangle(t)
	_, err := topo.Degree(3)
	assert.True(t, errors.Is(err, network.ErrOutOfRange))
	_, err = topo.Neighbors(-1)
	assert.ErrorIs(t, err, network.ErrOutOfRange)
	_, err = topo.Gene(7)
	assert.ErrorIs(t, err, network.ErrOutOfRange)
	assert.False(t, topo.HasEdge(0, 9))
}

func TestQueries_CopiesAreDetached(t *testing.T) {
	topo := triangle(t)
	genes := topo.Genes()
	genes[0] = "mutated"
	nb, _ := topo.Neighbors(0)
	nb[0] = 99

	g, _ := topo.Gene(0)
	require.Equal(t, "A", g)
	again, _ := topo.Neighbors(0)
	require.Equal(t, []int{1, 2}, again)
}

func TestQueries_HasEdgeAndIndex(t *testing.T) {
	topo, err := network.Build([]string{"A", "B", "C", "D"}, []network.Edge{{A: "A", B: "C"}, {A: "C", B: "D"}})
	require.NoError(t, err)
	require.True(t, topo.HasEdge(0, 2))
	require.True(t, topo.HasEdge(2, 0))
	require.False(t, topo.HasEdge(0, 1))
	i, ok := topo.Index("D")
	require.True(t, ok)
	require.Equal(t, 3, i)
	_, ok = topo.Index("nope")
	require.False(t, ok)

	st := topo.Stats()
	require.Equal(t, network.Stats{Genes: 4, Edges: 2, Isolated: 1, MaxDegree: 2, MeanDegree: 1}, st)
}

func TestCSR_Symmetric(t *testing.T) {
	topo, err := network.Build(
		[]string{"A", "B", "C", "D", "E"},
		[]network.Edge{{A: "E", B: "A"}, {A: "B", B: "D"}, {A: "C", B: "A"}, {A: "D", B: "E"}},
	)
	require.NoError(t, err)
	rowPtr, colIdx := topo.CSR()
	require.Len(t, rowPtr, 6)
	for u := 0; u < 5; u++ {
		row := colIdx[rowPtr[u]:rowPtr[u+1]]
		for k, v := range row {
			require.NotEqual(t, u, v, "self loop at %d", u)
			require.True(t, topo.HasEdge(v, u), "asymmetric %d-%d", u, v)
			if k > 0 {
				require.Less(t, row[k-1], v, "row %d not sorted", u)
			}
		}
	}
}

func TestRestrictTo(t *testing.T) {
	topo, err := network.Build(
		[]string{"A", "B", "C", "D"},
		[]network.Edge{{A: "A", B: "B"}, {A: "B", B: "C"}, {A: "C", B: "D"}},
	)
	require.NoError(t, err)

	sub, err := topo.RestrictTo([]string{"D", "C", "B", "unmeasured"})
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "D"}, sub.Genes())
	require.Equal(t, 2, sub.EdgeCount())
	require.Equal(t, [][2]int{{0, 1}, {1, 2}}, sub.Edges())

	// permuted subset gives the same topology
	sub2, err := topo.RestrictTo([]string{"B", "D", "C"})
	require.NoError(t, err)
	require.Equal(t, sub.Fingerprint(), sub2.Fingerprint())

	_, err = topo.RestrictTo([]string{"A", "C"})
	require.ErrorIs(t, err, network.ErrEmptyTopology)
	_, err = topo.RestrictTo(nil)
	require.ErrorIs(t, err, network.ErrEmptyTopology)
}

func TestComponents(t *testing.T) {
	// {A,B} {C} {D,E,F}
	topo, err := network.Build(
		[]string{"A", "B", "C", "D", "E", "F"},
		[]network.Edge{{A: "A", B: "B"}, {A: "D", B: "E"}, {A: "E", B: "F"}},
	)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0, 1}, {2}, {3, 4, 5}}, topo.Components())

	lcc, err := topo.LargestComponent()
	require.NoError(t, err)
	require.Equal(t, []string{"D", "E", "F"}, lcc.Genes())
	require.Equal(t, 2, lcc.EdgeCount())
}

func TestLargestComponent_TieAndEmpty(t *testing.T) {
	topo, err := network.Build(
		[]string{"A", "B", "C", "D"},
		[]network.Edge{{A: "C", B: "D"}, {A: "A", B: "B"}},
	)
	require.NoError(t, err)
	lcc, err := topo.LargestComponent()
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, lcc.Genes())

	bare, err := network.Build([]string{"A", "B"}, nil)
	require.NoError(t, err)
	_, err = bare.LargestComponent()
	require.ErrorIs(t, err, network.ErrEmptyTopology)
}

func TestFingerprint(t *testing.T) {
	a := triangle(t)
	b := triangle(t)
	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.Len(t, a.Fingerprint(), 64)

	path, err := network.Build([]string{"A", "B", "C"}, []network.Edge{{A: "A", B: "B"}, {A: "B", B: "C"}})
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), path.Fingerprint())

	renamed, err := network.Build([]string{"A", "B", "X"}, []network.Edge{{A: "A", B: "B"}, {A: "B", B: "X"}, {A: "A", B: "X"}})
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), renamed.Fingerprint())
}

// TestConcurrentReaders hammers the read API from many goroutines; run with -race.
func TestConcurrentReaders(t *testing.T) {
	topo := triangle(t)
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 200; k++ {
				_, _ = topo.Neighbors(k % 3)
				_ = topo.Stats()
				_ = topo.Components()
				_ = topo.Fingerprint()
			}
		}()
	}
	wg.Wait()
}

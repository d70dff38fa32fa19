package entropy_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/scent/entropy"
	"github.com/katalvlaran/scent/network"
)

// eigenOracle returns λ_max of the dense adjacency via gonum's symmetric
// eigensolver.
func eigenOracle(t *testing.T, topo *network.Topology) float64 {
	t.Helper()
	n := topo.GeneCount()
	a := mat.NewSymDense(n, nil)
	for _, e := range topo.Edges() {
		a.SetSym(e[0], e[1], 1)
	}
	var es mat.EigenSym
	require.True(t, es.Factorize(a, false))
	vals := es.Values(nil)

	return vals[len(vals)-1]
}

func cycle(n int) [][2]int {
	out := make([][2]int, n)
	for i := 0; i < n; i++ {
		out[i] = [2]int{i, (i + 1) % n}
	}

	return out
}

func star(leaves int) [][2]int {
	out := make([][2]int, leaves)
	for i := range out {
		out[i] = [2]int{0, i + 1}
	}

	return out
}

func TestSpectralRadius_KnownGraphs(t *testing.T) {
	cases := []struct {
		name  string
		genes int
		pairs [][2]int
		want  float64
	}{
		{"cycle7", 7, cycle(7), 2},
		{"cycle8 bipartite", 8, cycle(8), 2},
		{"K5", 5, complete(5), 4},
		{"star5", 6, star(5), math.Sqrt(5)},
		{"path3", 3, [][2]int{{0, 1}, {1, 2}}, math.Sqrt2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			topo := mustTopo(t, tc.genes, tc.pairs)
			got, err := entropy.SpectralRadius(topo)
			require.NoError(t, err)
			require.InDelta(t, tc.want, got, 1e-9)
			require.InDelta(t, eigenOracle(t, topo), got, 1e-9)
		})
	}
}

func TestSpectralRadius_RandomAgainstOracle(t *testing.T) {
	for seed := int64(20); seed < 25; seed++ {
		topo := randomNetwork(t, 40, 60, seed)
		got, err := entropy.SpectralRadius(topo)
		require.NoError(t, err)
		require.InDelta(t, eigenOracle(t, topo), got, 1e-6, "seed %d", seed)
	}
}

func TestSpectralRadius_Disconnected(t *testing.T) {
	// triangle + K4: the larger component dominates
	pairs := append(complete(3), [][2]int{{3, 4}, {3, 5}, {3, 6}, {4, 5}, {4, 6}, {5, 6}}...)
	topo := mustTopo(t, 7, pairs)
	got, err := entropy.SpectralRadius(topo)
	require.NoError(t, err)
	require.InDelta(t, 3, got, 1e-9)
}

func TestMaxEntropy(t *testing.T) {
	topo := mustTopo(t, 5, complete(5))
	m, err := entropy.MaxEntropy(topo)
	require.NoError(t, err)
	require.InDelta(t, math.Log(4), m, 1e-9)

	// uniform expression on a regular graph reaches the maximum
	d, err := entropy.Cell([]float64{1, 1, 1, 1, 1}, topo)
	require.NoError(t, err)
	require.InDelta(t, 1, d.Score/m, 1e-9)
}

func TestMaxEntropy_Errors(t *testing.T) {
	edge := mustTopo(t, 2, [][2]int{{0, 1}})
	_, err := entropy.MaxEntropy(edge)
	require.ErrorIs(t, err, entropy.ErrMaxEntropy)

	_, err = entropy.MaxEntropy(mustTopo(t, 6, star(5)), entropy.WithMaxIterations(1))
	require.ErrorIs(t, err, entropy.ErrMaxEntropy)

	_, err = entropy.MaxEntropy(mustTopo(t, 2, nil))
	require.ErrorIs(t, err, network.ErrEmptyTopology)
}

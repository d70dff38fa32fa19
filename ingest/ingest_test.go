package ingest_test

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/ingest"
	"github.com/katalvlaran/scent/network"
)

const stringLike = `# exported interactions
protein1	protein2	combined_score
TP53	MDM2	900
TP53	CDKN1A	300
MDM2	CDKN1A	450
`

func TestReadEdgeList(t *testing.T) {
	edges, err := ingest.ReadEdgeList(strings.NewReader(stringLike), ingest.WithHeader(true))
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, network.Edge{A: "TP53", B: "MDM2"}, edges[0])

	filtered, err := ingest.ReadEdgeList(strings.NewReader(stringLike),
		ingest.WithHeader(true), ingest.WithMinScore(2, 400))
	require.NoError(t, err)
	require.Equal(t, []network.Edge{{A: "TP53", B: "MDM2"}, {A: "MDM2", B: "CDKN1A"}}, filtered)

	assert.Equal(t, []string{"CDKN1A", "MDM2", "TP53"}, ingest.UniverseOf(edges))
}

func TestReadEdgeList_Malformed(t *testing.T) {
	scored := ingest.WithMinScore(2, 0)
	cases := []struct {
		name string
		in   string
		opts []ingest.ReadOption
	}{
		{"one field", "A\tB\nC\n", nil},
		{"blank symbol", "A\t\n", nil},
		{"bad score", "A\tB\tx\n", []ingest.ReadOption{scored}},
		{"missing score", "A\tB\n", []ingest.ReadOption{scored}},
	}
	for _, tc := range cases {
		_, err := ingest.ReadEdgeList(strings.NewReader(tc.in), tc.opts...)
		require.ErrorIs(t, err, ingest.ErrMalformed, tc.name)
	}

	_, err := ingest.ReadEdgeList(strings.NewReader("A\tB\nC\n"))
	require.ErrorContains(t, err, "line 2")
}

func TestReadExpression_CellsAsRows(t *testing.T) {
	in := "cell,A,B,C\nc1,1,,2\nc2,0,3,0.5\n"
	l, err := ingest.ReadExpression(strings.NewReader(in), ingest.WithDelimiter(','))
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2"}, l.CellIDs())
	require.Equal(t, []string{"A", "B", "C"}, l.GeneSymbols())

	row := make([]float64, 3)
	l.RowTo(row, 0)
	require.Equal(t, []float64{1, 0, 2}, row)
	l.RowTo(row, 1)
	require.Equal(t, []float64{0, 3, 0.5}, row)
}

func TestReadExpression_GenesAsRows(t *testing.T) {
	in := "gene\tc1\tc2\nA\t1\t0\nB\t\t3\n"
	l, err := ingest.ReadExpression(strings.NewReader(in), ingest.WithGenesAsRows(true))
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2"}, l.CellIDs())
	require.Equal(t, []string{"A", "B"}, l.GeneSymbols())

	row := make([]float64, 2)
	l.RowTo(row, 0)
	require.Equal(t, []float64{1, 0}, row)
	l.RowTo(row, 1)
	require.Equal(t, []float64{0, 3}, row)
}

func TestReadExpression_Errors(t *testing.T) {
	_, err := ingest.ReadExpression(strings.NewReader(""))
	require.ErrorIs(t, err, ingest.ErrMalformed)

	_, err = ingest.ReadExpression(strings.NewReader("cell\n"))
	require.ErrorIs(t, err, ingest.ErrMalformed)

	_, err = ingest.ReadExpression(strings.NewReader("cell\tA\nc1\tabc\n"))
	require.ErrorIs(t, err, ingest.ErrMalformed)
	require.ErrorContains(t, err, `"abc"`)

	_, err = ingest.ReadExpression(strings.NewReader("cell\tA\tB\nc1\t1\n"))
	require.ErrorIs(t, err, ingest.ErrMalformed)

	_, err = ingest.ReadExpression(strings.NewReader("cell\tA\tA\nc1\t1\t2\n"))
	require.ErrorIs(t, err, expression.ErrDuplicateGene)
}

func TestOpen_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("A\tB\nB\tC\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	rc, err := ingest.Open(path)
	require.NoError(t, err)
	defer rc.Close()
	edges, err := ingest.ReadEdgeList(rc)
	require.NoError(t, err)
	require.Len(t, edges, 2)

	_, err = ingest.Open(filepath.Join(t.TempDir(), "missing.tsv"))
	require.Error(t, err)
}

func TestHarmonize(t *testing.T) {
	genes := []string{"X", "D", "C", "RPS6", "B", "A"}
	d, err := expression.FromRows(len(genes), [][]float64{{9, 4, 3, 7, 2, 1}})
	require.NoError(t, err)
	l, err := expression.NewLabeled([]string{"cell0"}, genes, d)
	require.NoError(t, err)
	edges := []network.Edge{
		{A: "A", B: "B"}, {A: "B", B: "C"}, {A: "D", B: "E"},
		{A: "RPL5", B: "A"}, {A: "A", B: "A"},
	}

	p, err := ingest.Harmonize(l, edges)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, p.Topology.Genes())
	require.Equal(t, 2, p.Topology.EdgeCount())
	require.Equal(t, []string{"cell0"}, p.CellIDs)
	require.Equal(t, ingest.Report{Artifacts: 2, ExpressionOnly: 1, NetworkOnly: 1, OutsideComponent: 1}, p.Report)

	row := make([]float64, 3)
	p.Expression.RowTo(row, 0)
	require.Equal(t, []float64{1, 2, 3}, row)
	require.Empty(t, p.Expression.Missing())

	// keep minor components and artifacts
	p, err = ingest.Harmonize(l, edges, ingest.WithLargestComponent(false), ingest.WithArtifactPrefixes())
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C", "D"}, p.Topology.Genes())
	require.Zero(t, p.Report.Artifacts)
}

func TestHarmonize_Errors(t *testing.T) {
	d, err := expression.FromRows(2, [][]float64{{1, 1}})
	require.NoError(t, err)
	l, err := expression.NewLabeled([]string{"c"}, []string{"A", "B"}, d)
	require.NoError(t, err)

	_, err = ingest.Harmonize(l, []network.Edge{{A: "Y", B: "Z"}})
	require.ErrorIs(t, err, ingest.ErrNoOverlap)

	_, err = ingest.Harmonize(l, []network.Edge{{A: "A", B: "Z"}, {A: "B", B: "Z"}})
	require.ErrorIs(t, err, network.ErrEmptyTopology)
}

func TestLoadEdges(t *testing.T) {
	ctx := context.Background()
	client := ingest.NewMemoryClient()
	client.PushEdges([2]string{"TP53", "MDM2"}, [2]string{"MDM2", "CDKN1A"})

	edges, err := ingest.LoadEdges(ctx, client, "", nil)
	require.NoError(t, err)
	require.Equal(t, []network.Edge{{A: "TP53", B: "MDM2"}, {A: "MDM2", B: "CDKN1A"}}, edges)
	calls := client.Calls()
	require.Len(t, calls, 1)
	require.Equal(t, ingest.DefaultEdgeQuery, calls[0].Query)

	client.PushResult(ingest.Result{Records: []ingest.Record{{"a": "TP53", "b": 7}}})
	_, err = ingest.LoadEdges(ctx, client, "MATCH ...", map[string]any{"min": 0.4})
	require.ErrorIs(t, err, ingest.ErrUnexpectedRecord)
	require.Equal(t, 0.4, client.Calls()[1].Params["min"])

	boom := errors.New("bolt down")
	_, err = ingest.LoadEdges(ctx, client.WithError(boom), "", nil)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, client.VerifyConnectivity(ctx), boom)
	require.NoError(t, client.Close(ctx))
	require.True(t, client.Closed())
}

func TestNewNeo4jClient_MissingURI(t *testing.T) {
	_, err := ingest.NewNeo4jClient(context.Background(), ingest.GraphOptions{})
	require.ErrorIs(t, err, ingest.ErrMissingURI)
}

func TestWriteRoundTrip(t *testing.T) {
	var buf strings.Builder
	edges := []network.Edge{{A: "A", B: "B"}, {A: "B", B: "C"}}
	require.NoError(t, ingest.WriteEdgeList(&buf, edges, '\t'))
	back, err := ingest.ReadEdgeList(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Equal(t, edges, back)

	d, err := expression.FromRows(2, [][]float64{{0.5, 0}, {1e-9, 42}})
	require.NoError(t, err)
	l, err := expression.NewLabeled([]string{"c0", "c1"}, []string{"A", "B"}, d)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, ingest.WriteExpression(&buf, l, "cell", ','))
	got, err := ingest.ReadExpression(strings.NewReader(buf.String()), ingest.WithDelimiter(','))
	require.NoError(t, err)
	require.Equal(t, l.CellIDs(), got.CellIDs())
	require.Equal(t, l.GeneSymbols(), got.GeneSymbols())
	row := make([]float64, 2)
	got.RowTo(row, 1)
	require.Equal(t, []float64{1e-9, 42}, row)
}

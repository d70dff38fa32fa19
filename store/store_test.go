package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/scent/store"
)

// ContractSuite runs the same checks against every backend.
type ContractSuite struct {
	suite.Suite
	open func(t *testing.T) store.Store
	st   store.Store
	ctx  context.Context
}

func (s *ContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.st = s.open(s.T())
	s.Require().NoError(s.st.Init(s.ctx))
	s.Require().NoError(s.st.Init(s.ctx), "Init is idempotent")
}

func (s *ContractSuite) TearDownTest() {
	s.Require().NoError(s.st.Close())
}

func run(created time.Time) store.Run {
	r := store.NewRun()
	r.CreatedAt = created
	r.Source = "pbmc.tsv"
	r.Fingerprint = "abc123"
	r.Genes, r.Edges, r.Cells, r.BatchSize = 3, 2, 4, 2
	r.Normalized = true
	r.MaxEntropy = 0.6931471805599453

	return r
}

func (s *ContractSuite) TestRunRoundTrip() {
	r := run(time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC))
	s.Require().NoError(s.st.SaveRun(s.ctx, r))

	got, ok, err := s.st.GetRun(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Require().Equal(r, got)

	_, ok, err = s.st.GetRun(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.Require().False(ok)

	r.Cells = 10
	s.Require().NoError(s.st.SaveRun(s.ctx, r))
	got, _, _ = s.st.GetRun(s.ctx, r.ID)
	s.Require().Equal(10, got.Cells)
}

func (s *ContractSuite) TestListNewestFirst() {
	t0 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	old, mid, recent := run(t0), run(t0.Add(time.Hour)), run(t0.Add(2*time.Hour))
	for _, r := range []store.Run{mid, old, recent} {
		s.Require().NoError(s.st.SaveRun(s.ctx, r))
	}
	runs, err := s.st.ListRuns(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(runs, 3)
	s.Require().Equal([]uuid.UUID{recent.ID, mid.ID, old.ID}, []uuid.UUID{runs[0].ID, runs[1].ID, runs[2].ID})
}

func (s *ContractSuite) TestScoresByBatch() {
	r := run(time.Now().UTC().Truncate(time.Millisecond))
	s.Require().NoError(s.st.SaveRun(s.ctx, r))

	// out of order, then an overwrite
	s.Require().NoError(s.st.SaveScores(s.ctx, r.ID, 2, []store.CellScore{{"c2", 0.3}, {"c3", 0.4}}))
	s.Require().NoError(s.st.SaveScores(s.ctx, r.ID, 0, []store.CellScore{{"c0", 0.1}, {"c1", 0.0}}))
	s.Require().NoError(s.st.SaveScores(s.ctx, r.ID, 1, []store.CellScore{{"c1", 0.2}}))

	got, err := s.st.Scores(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Require().Equal([]store.CellScore{{"c0", 0.1}, {"c1", 0.2}, {"c2", 0.3}, {"c3", 0.4}}, got)
}

func (s *ContractSuite) TestUnknownRun() {
	id := uuid.New()
	s.Require().ErrorIs(s.st.SaveScores(s.ctx, id, 0, []store.CellScore{{"c", 1}}), store.ErrRunNotFound)
	_, err := s.st.Scores(s.ctx, id)
	s.Require().ErrorIs(err, store.ErrRunNotFound)
}

func TestMemoryContract(t *testing.T) {
	suite.Run(t, &ContractSuite{open: func(*testing.T) store.Store { return store.NewMemory() }})
}

func TestSQLiteContract(t *testing.T) {
	suite.Run(t, &ContractSuite{open: func(t *testing.T) store.Store {
		return store.NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	}})
}

func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	st := store.NewSQLite(path)
	require.NoError(t, st.Init(ctx))
	r := run(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, st.SaveRun(ctx, r))
	require.NoError(t, st.SaveScores(ctx, r.ID, 0, []store.CellScore{{"c0", 0.5}}))
	require.NoError(t, st.Close())

	st = store.NewSQLite(path)
	require.NoError(t, st.Init(ctx))
	defer st.Close()
	got, ok, err := st.GetRun(ctx, r.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, r, got)
	scores, err := st.Scores(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, []store.CellScore{{"c0", 0.5}}, scores)
}

func TestNotInitialized(t *testing.T) {
	ctx := context.Background()
	for _, st := range []store.Store{store.NewMemory(), store.NewSQLite("unused.db")} {
		require.ErrorIs(t, st.SaveRun(ctx, store.NewRun()), store.ErrNotInitialized)
		_, err := st.ListRuns(ctx)
		require.ErrorIs(t, err, store.ErrNotInitialized)
	}
	require.Error(t, store.NewSQLite("").Init(ctx))
}

func TestOpen(t *testing.T) {
	st, err := store.Open("", "")
	require.NoError(t, err)
	require.IsType(t, &store.Memory{}, st)
	st, err = store.Open("sqlite", "x.db")
	require.NoError(t, err)
	require.IsType(t, &store.SQLite{}, st)
	_, err = store.Open("postgres", "")
	require.ErrorIs(t, err, store.ErrUnsupportedKind)
}

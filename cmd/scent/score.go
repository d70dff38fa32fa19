// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/scent/batch"
	"github.com/katalvlaran/scent/entropy"
	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/ingest"
	"github.com/katalvlaran/scent/network"
	"github.com/katalvlaran/scent/output"
	"github.com/katalvlaran/scent/store"
)

func (a *app) scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score every cell and write one signaling entropy rate per cell",
		Long: `Load the expression table and the network, keep their shared genes (minus
ribosomal and mitochondrial artifacts) on the network's largest connected
component, and write one score per cell in input order.

Example:
  scent score -e pbmc.tsv.gz -n string_ppi.tsv --normalize -o sr.tsv`,
		Args: cobra.NoArgs,
		RunE: a.runScore,
	}
	a.inputFlags(cmd)
	f := cmd.Flags()
	f.StringP("out", "o", "", "output path, - for stdout")
	f.String("format", "", "tsv|csv|jsonl")
	f.Int("batch-size", 0, "cells per batch (0: derive from compute.memory_budget)")
	f.Int("start-batch", 0, "resume at this batch index")
	f.Int("workers", 0, "CPU workers (0: one per CPU)")
	f.Bool("normalize", false, "divide scores by the network's maximum entropy rate")
	f.Bool("prefetch", false, "stage the next batch while the current one computes")
	f.String("store", "", "persist the run: memory|sqlite")
	f.String("store-path", "", "sqlite database path")

	return cmd
}

func (a *app) applyScoreFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	c := &a.cfg
	if f.Changed("out") {
		c.Output.Path, _ = f.GetString("out")
	}
	if f.Changed("format") {
		c.Output.Format, _ = f.GetString("format")
	}
	if f.Changed("batch-size") {
		c.Compute.BatchSize, _ = f.GetInt("batch-size")
	}
	if f.Changed("start-batch") {
		c.Compute.StartBatch, _ = f.GetInt("start-batch")
	}
	if f.Changed("workers") {
		c.Compute.Workers, _ = f.GetInt("workers")
	}
	if f.Changed("normalize") {
		c.Compute.Normalize, _ = f.GetBool("normalize")
	}
	if f.Changed("prefetch") {
		c.Compute.Prefetch, _ = f.GetBool("prefetch")
	}
	if f.Changed("store") {
		c.Store.Kind, _ = f.GetString("store")
	}
	if f.Changed("store-path") {
		c.Store.Path, _ = f.GetString("store-path")
	}
}

func (a *app) runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a.applyScoreFlags(cmd)
	if err := a.applyInputFlags(cmd); err != nil {
		return err
	}
	prep, err := a.prepare(ctx)
	if err != nil {
		return err
	}
	scorer, err := a.newScorer(prep.Topology)
	if err != nil {
		return err
	}

	format, _ := output.ParseFormat(a.cfg.Output.Format)
	dst, closeDst, err := a.openOutput()
	if err != nil {
		return err
	}
	defer closeDst()
	w, err := output.NewWriter(dst, format)
	if err != nil {
		return fail(ExitConfigError, "%w", err)
	}

	rec, err := a.startRun(ctx, prep, scorer)
	if err != nil {
		return err
	}
	if rec != nil {
		defer rec.st.Close()
	}

	all := make([]float64, 0, prep.Expression.Cells())
	for res, err := range scorer.Batches(ctx, prep.Expression) {
		if err != nil {
			return classifyScoreErr(err)
		}
		rows := output.Rows(prep.CellIDs, res.Offset, res.Scores)
		if err := w.Write(rows...); err != nil {
			return fail(ExitError, "writing scores: %w", err)
		}
		if err := rec.save(ctx, res.Offset, rows); err != nil {
			return err
		}
		all = append(all, res.Scores...)
	}
	if err := w.Flush(); err != nil {
		return fail(ExitError, "writing scores: %w", err)
	}
	if rec != nil {
		a.log.Info("run stored", "id", rec.run.ID, "store", a.cfg.Store.Kind)
	}

	return a.summarize(all)
}

// newScorer wires the CPU backend and batch options from configuration.
func (a *app) newScorer(topo *network.Topology) (*batch.Scorer, error) {
	c := a.cfg.Compute
	limit, _ := c.Limit()
	backend := entropy.NewCPU(
		entropy.WithWorkers(c.EffectiveWorkers()),
		entropy.WithMemoryLimit(limit),
	)
	size, err := a.batchSize(topo)
	if err != nil {
		return nil, err
	}
	scorer, err := batch.NewScorer(topo, backend,
		batch.WithBatchSize(size),
		batch.WithStartBatch(c.StartBatch),
		batch.WithPrefetch(c.Prefetch),
		batch.WithNormalize(c.Normalize),
		batch.WithLogger(a.log),
		batch.WithProgressInterval(c.ProgressInterval),
	)
	switch {
	case errors.Is(err, batch.ErrOptionViolation):
		return nil, &exitError{code: ExitConfigError, err: err}
	case err != nil:
		return nil, &exitError{code: ExitDataError, err: err}
	}

	return scorer, nil
}

// batchSize is the configured size, or the largest power of two whose
// workspace fits the memory budget.
func (a *app) batchSize(topo *network.Topology) (int, error) {
	c := a.cfg.Compute
	if c.BatchSize > 0 {
		return c.BatchSize, nil
	}
	budget, _ := c.Budget()
	if budget == 0 {
		return batch.DefaultBatchSize, nil
	}
	size, err := batch.AutoBatchSize(topo, budget, c.Overhead)
	if err != nil {
		return 0, &exitError{code: ExitConfigError, err: err}
	}
	a.log.Info("batch size from memory budget",
		"budget", humanize.IBytes(budget),
		"per_cell", humanize.IBytes(batch.RowBytes(topo)),
		"batch_size", size)

	return size, nil
}

func (a *app) openOutput() (io.Writer, func(), error) {
	p := a.cfg.Output.Path
	if p == "" || p == "-" {
		return a.stdout, func() {}, nil
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, nil, fail(ExitError, "output: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}

// recorder persists one run as its batches complete. A nil recorder is a
// no-op.
type recorder struct {
	st  store.Store
	run store.Run
}

func (a *app) startRun(ctx context.Context, prep *ingest.Prepared, scorer *batch.Scorer) (*recorder, error) {
	st, err := a.openStore(ctx)
	if err != nil || st == nil {
		return nil, err
	}
	run := store.NewRun()
	run.Source = a.cfg.Input.Expression
	run.Fingerprint = prep.Topology.Fingerprint()
	run.Genes = prep.Topology.GeneCount()
	run.Edges = prep.Topology.EdgeCount()
	run.Cells = prep.Expression.Cells()
	run.BatchSize = scorer.BatchSize()
	run.Normalized = a.cfg.Compute.Normalize
	run.MaxEntropy = scorer.MaxEntropy()
	if err := st.SaveRun(ctx, run); err != nil {
		_ = st.Close()
		return nil, fail(ExitError, "store: %w", err)
	}

	return &recorder{st: st, run: run}, nil
}

func (r *recorder) save(ctx context.Context, offset int, rows []output.Row) error {
	if r == nil {
		return nil
	}
	cs := make([]store.CellScore, len(rows))
	for i, row := range rows {
		cs[i] = store.CellScore{Cell: row.Cell, Score: row.Score}
	}
	if err := r.st.SaveScores(ctx, r.run.ID, offset, cs); err != nil {
		return fail(ExitError, "store: %w", err)
	}

	return nil
}

func (a *app) summarize(scores []float64) error {
	if !a.cfg.Output.Summary || len(scores) == 0 {
		return nil
	}
	s, err := output.Summarize(scores)
	if err != nil {
		return fail(ExitError, "%w", err)
	}
	if a.human {
		return s.Print(a.stderr)
	}
	a.log.Info("score summary",
		"cells", s.Count, "min", s.Min, "p05", s.P05, "median", s.Median,
		"mean", s.Mean, "p95", s.P95, "max", s.Max, "stddev", s.StdDev)

	return nil
}

func classifyScoreErr(err error) error {
	switch {
	case errors.Is(err, expression.ErrInvalidExpression),
		errors.Is(err, entropy.ErrShapeMismatch):
		return &exitError{code: ExitDataError, err: err}
	case errors.Is(err, batch.ErrStartOutOfRange):
		return &exitError{code: ExitConfigError, err: err}
	default:
		return &exitError{code: ExitError, err: err}
	}
}

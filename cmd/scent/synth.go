// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scent/builder"
	"github.com/katalvlaran/scent/ingest"
)

func (a *app) synthCmd() *cobra.Command {
	var (
		genes, cells, degree int
		shape, dir           string
		p, dropout           float64
		seed                 int64
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write a synthetic network and expression table",
		Long: `Generate a seeded gene network and a lognormal expression table with
dropout, in the formats score reads. Useful for benchmarks and smoke tests.

Example:
  scent synth --genes 2000 --cells 5000 --shape random --p 0.005 --dir /tmp/synth
  scent score -e /tmp/synth/expression.tsv -n /tmp/synth/network.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !(dropout >= 0 && dropout <= 1) {
				return fail(ExitConfigError, "--dropout %g must be in [0,1]", dropout)
			}
			con, err := shapeConstructor(shape, genes, degree, p)
			if err != nil {
				return err
			}
			opts := []builder.BuilderOption{builder.WithSymbNumb("G"), builder.WithSeed(seed)}
			universe, edges, err := builder.Assemble(opts, con)
			if err != nil {
				return &exitError{code: ExitConfigError, err: err}
			}
			expr, err := builder.Expression(cells, universe,
				builder.WithSeed(seed+1), builder.WithDropout(dropout))
			if err != nil {
				return &exitError{code: ExitConfigError, err: err}
			}

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fail(ExitError, "synth: %w", err)
			}
			netPath := filepath.Join(dir, "network.tsv")
			exprPath := filepath.Join(dir, "expression.tsv")
			if err := writeFile(netPath, func(f *os.File) error {
				return ingest.WriteEdgeList(f, edges, '\t')
			}); err != nil {
				return err
			}
			if err := writeFile(exprPath, func(f *os.File) error {
				return ingest.WriteExpression(f, expr, "cell", '\t')
			}); err != nil {
				return err
			}
			a.log.Info("synthetic data written",
				"network", netPath, "expression", exprPath,
				"genes", len(universe), "edges", len(edges), "cells", cells)
			if a.human {
				a.printf("%s\n%s\n", netPath, exprPath)
				return nil
			}

			return a.printJSON(map[string]any{
				"network": netPath, "expression": exprPath,
				"genes": len(universe), "edges": len(edges), "cells": cells,
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&genes, "genes", 500, "number of genes")
	f.IntVar(&cells, "cells", 1000, "number of cells")
	f.StringVar(&shape, "shape", "random", "random|regular|path|cycle|star|wheel|complete|grid")
	f.Float64Var(&p, "p", 0.01, "edge probability for --shape random")
	f.IntVar(&degree, "degree", 4, "degree for --shape regular")
	f.Float64Var(&dropout, "dropout", 0.6, "share of zero entries in the expression table")
	f.Int64Var(&seed, "seed", 1, "random seed")
	f.StringVar(&dir, "dir", ".", "output directory")

	return cmd
}

func shapeConstructor(shape string, n, degree int, p float64) (builder.Constructor, error) {
	switch shape {
	case "random":
		return builder.RandomSparse(n, p), nil
	case "regular":
		return builder.RandomRegular(n, degree), nil
	case "path":
		return builder.Path(n), nil
	case "cycle":
		return builder.Cycle(n), nil
	case "star":
		return builder.Star(n), nil
	case "wheel":
		return builder.Wheel(n), nil
	case "complete":
		return builder.Complete(n), nil
	case "grid":
		side := 1
		for side*side < n {
			side++
		}
		return builder.Grid(side, side), nil
	default:
		return nil, fail(ExitConfigError, "unknown --shape %q", shape)
	}
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fail(ExitError, "synth: %w", err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return fail(ExitError, "synth: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fail(ExitError, "synth: close %s: %w", path, err)
	}

	return nil
}

// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/ingest"
	"github.com/katalvlaran/scent/network"
	"github.com/katalvlaran/scent/store"
)

// inputFlags registers the input overrides shared by score, network and explain.
func (a *app) inputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("expression", "e", "", "expression table (cells × genes; .gz accepted)")
	f.StringP("network", "n", "", "edge list (gene pairs; .gz accepted); empty reads the graph database")
	f.Bool("genes-as-rows", false, "expression table is genes × cells")
	f.String("delimiter", "", "tab|comma|semicolon")
}

func (a *app) applyInputFlags(cmd *cobra.Command) error {
	f := cmd.Flags()
	if f.Changed("expression") {
		a.cfg.Input.Expression, _ = f.GetString("expression")
	}
	if f.Changed("network") {
		a.cfg.Input.Network, _ = f.GetString("network")
	}
	if f.Changed("genes-as-rows") {
		a.cfg.Input.GenesAsRows, _ = f.GetBool("genes-as-rows")
	}
	if f.Changed("delimiter") {
		a.cfg.Input.Delimiter, _ = f.GetString("delimiter")
	}
	if a.cfg.Input.Expression == "" {
		return fail(ExitConfigError, "no expression input: set --expression or input.expression")
	}
	if a.cfg.Input.Network == "" && a.cfg.Graph.URI == "" {
		return fail(ExitConfigError, "no network input: set --network, input.network or graph.uri")
	}
	if err := a.cfg.Validate(); err != nil {
		return &exitError{code: ExitConfigError, err: err}
	}

	return nil
}

// prepare reads both inputs and harmonizes them.
func (a *app) prepare(ctx context.Context) (*ingest.Prepared, error) {
	delim, _ := a.cfg.Input.DelimiterRune()

	expr, err := a.readExpression(delim)
	if err != nil {
		return nil, err
	}
	edges, err := a.readEdges(ctx, delim)
	if err != nil {
		return nil, err
	}
	a.log.Info("inputs loaded",
		"cells", expr.Cells(), "genes", expr.Genes(), "edges", len(edges))

	prep, err := ingest.Harmonize(expr, edges,
		ingest.WithArtifactPrefixes(a.cfg.Preprocess.ArtifactPrefixes...),
		ingest.WithLargestComponent(a.cfg.Preprocess.LargestComponent),
	)
	if err != nil {
		return nil, &exitError{code: ExitDataError, err: err}
	}
	st := prep.Topology.Stats()
	a.log.Info("harmonized",
		"genes", st.Genes, "edges", st.Edges,
		"artifacts", prep.Report.Artifacts,
		"expression_only", prep.Report.ExpressionOnly,
		"network_only", prep.Report.NetworkOnly,
		"outside_component", prep.Report.OutsideComponent)

	return prep, nil
}

func (a *app) readExpression(delim rune) (*expression.Labeled, error) {
	rc, err := ingest.Open(a.cfg.Input.Expression)
	if err != nil {
		return nil, fail(ExitDataError, "expression: %w", err)
	}
	defer rc.Close()
	expr, err := ingest.ReadExpression(rc,
		ingest.WithDelimiter(delim), ingest.WithGenesAsRows(a.cfg.Input.GenesAsRows))
	if err != nil {
		return nil, fail(ExitDataError, "expression %s: %w", a.cfg.Input.Expression, err)
	}

	return expr, nil
}

func (a *app) readEdges(ctx context.Context, delim rune) ([]network.Edge, error) {
	if a.cfg.Input.Network == "" {
		return a.graphEdges(ctx)
	}
	rc, err := ingest.Open(a.cfg.Input.Network)
	if err != nil {
		return nil, fail(ExitDataError, "network: %w", err)
	}
	defer rc.Close()
	opts := []ingest.ReadOption{ingest.WithDelimiter(delim), ingest.WithHeader(a.cfg.Input.NetworkHeader)}
	if a.cfg.Input.ScoreColumn >= 0 {
		opts = append(opts, ingest.WithMinScore(a.cfg.Input.ScoreColumn, a.cfg.Input.MinScore))
	}
	edges, err := ingest.ReadEdgeList(rc, opts...)
	if err != nil {
		return nil, fail(ExitDataError, "network %s: %w", a.cfg.Input.Network, err)
	}

	return edges, nil
}

func (a *app) graphEdges(ctx context.Context) ([]network.Edge, error) {
	g := a.cfg.Graph
	client, err := ingest.NewNeo4jClient(ctx, ingest.GraphOptions{
		URI:            g.URI,
		Database:       g.Database,
		Username:       g.Username,
		Password:       g.Password,
		MaxConnections: g.MaxConnections,
	})
	if err != nil {
		return nil, fail(ExitError, "graph: %w", err)
	}
	defer client.Close(ctx)
	edges, err := ingest.LoadEdges(ctx, client, g.Query, nil)
	if err != nil {
		code := ExitError
		if errors.Is(err, ingest.ErrUnexpectedRecord) {
			code = ExitDataError
		}
		return nil, &exitError{code: code, err: err}
	}

	return edges, nil
}

// openStore returns the configured store, initialized, or nil when
// persistence is off.
func (a *app) openStore(ctx context.Context) (store.Store, error) {
	if a.cfg.Store.Kind == "" {
		return nil, nil
	}
	st, err := store.Open(a.cfg.Store.Kind, a.cfg.Store.Path)
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}
	if err := st.Init(ctx); err != nil {
		return nil, fail(ExitError, "store: %w", err)
	}

	return st, nil
}

// printJSON writes v as indented JSON to stdout.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

func fprintf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// SPDX-License-Identifier: MIT

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/scent/entropy"
	"github.com/katalvlaran/scent/ingest"
	"github.com/katalvlaran/scent/network"
)

func (a *app) networkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Inspect the interaction network",
	}
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Report network size, degree profile and maximum entropy rate",
		Long: `By default the network is first harmonized against the expression table,
so the numbers describe exactly the topology that score would use. With --raw
the edge list is summarized on its own.`,
		Args: cobra.NoArgs,
		RunE: a.runNetworkStats,
	}
	a.inputFlags(stats)
	stats.Flags().Bool("raw", false, "skip harmonization; summarize the edge list alone")
	cmd.AddCommand(stats)

	return cmd
}

type networkReport struct {
	network.Stats
	Components       int            `json:"components"`
	LargestComponent int            `json:"largest_component"`
	SpectralRadius   float64        `json:"spectral_radius"`
	MaxEntropy       float64        `json:"max_entropy"`
	MaxEntropyError  string         `json:"max_entropy_error,omitempty"`
	Fingerprint      string         `json:"fingerprint"`
	Harmonization    *ingest.Report `json:"harmonization,omitempty"`
}

func (a *app) runNetworkStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	raw, _ := cmd.Flags().GetBool("raw")

	var (
		topo *network.Topology
		rep  networkReport
	)
	if raw {
		if cmd.Flags().Changed("network") {
			a.cfg.Input.Network, _ = cmd.Flags().GetString("network")
		}
		if a.cfg.Input.Network == "" && a.cfg.Graph.URI == "" {
			return fail(ExitConfigError, "no network input: set --network, input.network or graph.uri")
		}
		delim, err := a.cfg.Input.DelimiterRune()
		if err != nil {
			return &exitError{code: ExitConfigError, err: err}
		}
		edges, err := a.readEdges(ctx, delim)
		if err != nil {
			return err
		}
		topo, err = network.Build(ingest.UniverseOf(edges), edges, network.WithDropSelfLoops())
		if err != nil {
			return &exitError{code: ExitDataError, err: err}
		}
	} else {
		if err := a.applyInputFlags(cmd); err != nil {
			return err
		}
		prep, err := a.prepare(ctx)
		if err != nil {
			return err
		}
		topo = prep.Topology
		rep.Harmonization = &prep.Report
	}

	rep.Stats = topo.Stats()
	comps := topo.Components()
	rep.Components = len(comps)
	for _, c := range comps {
		rep.LargestComponent = max(rep.LargestComponent, len(c))
	}
	rep.Fingerprint = topo.Fingerprint()
	if rho, err := entropy.SpectralRadius(topo); err == nil {
		rep.SpectralRadius = rho
	}
	me, err := entropy.MaxEntropy(topo)
	switch {
	case errors.Is(err, entropy.ErrMaxEntropy):
		rep.MaxEntropyError = err.Error()
	case err != nil:
		return &exitError{code: ExitDataError, err: err}
	default:
		rep.MaxEntropy = me
	}

	if !a.human {
		return a.printJSON(rep)
	}
	a.printf("Genes:             %d (%d isolated)\n", rep.Genes, rep.Isolated)
	a.printf("Edges:             %d\n", rep.Edges)
	a.printf("Degree:            max %d, mean %.3f\n", rep.MaxDegree, rep.MeanDegree)
	a.printf("Components:        %d (largest %d genes)\n", rep.Components, rep.LargestComponent)
	a.printf("Spectral radius:   %.6f\n", rep.SpectralRadius)
	if rep.MaxEntropyError != "" {
		a.printf("Max entropy:       unavailable (%s)\n", rep.MaxEntropyError)
	} else {
		a.printf("Max entropy:       %.6f\n", rep.MaxEntropy)
	}
	a.printf("Fingerprint:       %s\n", rep.Fingerprint)
	if h := rep.Harmonization; h != nil {
		a.printf("\nDropped genes:\n")
		a.printf("  artifacts          %d\n", h.Artifacts)
		a.printf("  expression only    %d\n", h.ExpressionOnly)
		a.printf("  network only       %d\n", h.NetworkOnly)
		a.printf("  outside component  %d\n", h.OutsideComponent)
	}

	return nil
}

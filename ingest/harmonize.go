// SPDX-License-Identifier: MIT

package ingest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/scent/expression"
	"github.com/katalvlaran/scent/network"
)

const methodHarmonize = "Harmonize"

// Report counts what Harmonize discarded, by distinct gene symbol.
type Report struct {
	Artifacts        int `json:"artifacts"`         // symbols matching an artifact prefix
	ExpressionOnly   int `json:"expression_only"`   // measured but absent from the network
	NetworkOnly      int `json:"network_only"`      // in the network but not measured
	OutsideComponent int `json:"outside_component"` // shared genes dropped with minor components
}

// Prepared is the aligned input of a scoring run.
type Prepared struct {
	Topology   *network.Topology
	Expression *expression.Aligned
	CellIDs    []string
	Report     Report
}

// Harmonize reduces expr and edges to their shared genes and returns the
// topology together with expression aligned to its gene order. Shared genes
// are sorted by symbol, so the result does not depend on input column or edge
// order.
//
// Errors:
//   - ErrNoOverlap when no non-artifact symbol appears in both inputs.
//   - network.ErrEmptyTopology when the shared genes carry no edge.
func Harmonize(expr *expression.Labeled, edges []network.Edge, opts ...HarmonizeOption) (*Prepared, error) {
	o := gatherHarmonize(opts...)
	var rep Report

	artifacts := make(map[string]struct{})
	keep := func(sym string) bool {
		if isArtifact(sym, o.artifactPrefixes) {
			artifacts[sym] = struct{}{}
			return false
		}
		return true
	}

	measured := make(map[string]struct{})
	for _, g := range expr.GeneSymbols() {
		if keep(g) {
			measured[g] = struct{}{}
		}
	}
	inNetwork := make(map[string]struct{})
	for _, e := range edges {
		if keep(e.A) {
			inNetwork[e.A] = struct{}{}
		}
		if keep(e.B) {
			inNetwork[e.B] = struct{}{}
		}
	}
	rep.Artifacts = len(artifacts)

	shared := make([]string, 0, len(measured))
	for g := range measured {
		if _, ok := inNetwork[g]; ok {
			shared = append(shared, g)
		}
	}
	rep.ExpressionOnly = len(measured) - len(shared)
	rep.NetworkOnly = len(inNetwork) - len(shared)
	if len(shared) == 0 {
		return nil, fmt.Errorf("%s: %d measured, %d networked: %w",
			methodHarmonize, len(measured), len(inNetwork), ErrNoOverlap)
	}
	sort.Strings(shared)

	topo, err := network.Build(shared, edges, network.WithDropSelfLoops(), network.WithDropUnknown())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodHarmonize, err)
	}
	if topo.EdgeCount() == 0 {
		return nil, fmt.Errorf("%s: %d shared genes: %w", methodHarmonize, len(shared), network.ErrEmptyTopology)
	}
	if o.largestComponent {
		if topo, err = topo.LargestComponent(); err != nil {
			return nil, fmt.Errorf("%s: %w", methodHarmonize, err)
		}
	}
	rep.OutsideComponent = len(shared) - topo.GeneCount()

	return &Prepared{
		Topology:   topo,
		Expression: expr.Align(topo.Genes()),
		CellIDs:    expr.CellIDs(),
		Report:     rep,
	}, nil
}

func isArtifact(sym string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(sym, p) {
			return true
		}
	}

	return false
}

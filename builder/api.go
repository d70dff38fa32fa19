// SPDX-License-Identifier: MIT
// Package: scent/builder
//
// api.go - public entry points. Constructors are implemented in impl_*.go.

package builder

import (
	"fmt"

	"github.com/katalvlaran/scent/network"
)

// Constructor adds genes and edges to a draft. Constructors validate their
// parameters first and return sentinel errors without touching the draft.
type Constructor func(d *draft, cfg builderConfig) error

// draft accumulates a gene universe and a de-duplicated edge list in
// insertion order.
type draft struct {
	genes []string
	known map[string]struct{}
	edges []network.Edge
	seen  map[[2]string]struct{}
}

func newDraft() *draft {
	return &draft{
		known: make(map[string]struct{}),
		seen:  make(map[[2]string]struct{}),
	}
}

func (d *draft) addGene(id string) {
	if _, ok := d.known[id]; ok {
		return
	}
	d.known[id] = struct{}{}
	d.genes = append(d.genes, id)
}

// addEdge adds a–b and both genes. Self-loops are ignored.
func (d *draft) addEdge(a, b string) {
	if a == b {
		return
	}
	d.addGene(a)
	d.addGene(b)
	k := [2]string{a, b}
	if b < a {
		k = [2]string{b, a}
	}
	if _, ok := d.seen[k]; ok {
		return
	}
	d.seen[k] = struct{}{}
	d.edges = append(d.edges, network.Edge{A: a, B: b})
}

// addGenes adds ids idFn(0..n-1) in order.
func (d *draft) addGenes(n int, idFn IDFn) {
	for i := 0; i < n; i++ {
		d.addGene(idFn(i))
	}
}

// Assemble runs cons in order and returns the gene universe and edge list,
// ready for network.Build or for writing to disk.
func Assemble(opts []BuilderOption, cons ...Constructor) ([]string, []network.Edge, error) {
	cfg := newBuilderConfig(opts...)
	d := newDraft()
	for i, fn := range cons {
		if fn == nil {
			return nil, nil, fmt.Errorf("Assemble: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(d, cfg); err != nil {
			return nil, nil, fmt.Errorf("Assemble: %w", err)
		}
	}

	return d.genes, d.edges, nil
}

// Build assembles cons and builds the topology.
func Build(opts []BuilderOption, cons ...Constructor) (*network.Topology, error) {
	genes, edges, err := Assemble(opts, cons...)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	topo, err := network.Build(genes, edges)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return topo, nil
}

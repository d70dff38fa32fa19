// SPDX-License-Identifier: MIT

package network

import "fmt"

const (
	methodRestrictTo       = "RestrictTo"
	methodLargestComponent = "LargestComponent"
)

// RestrictTo returns the induced subgraph on the genes of subset that exist
// in t. Symbols not present in t are ignored: subset is normally the list of
// genes measured in an expression matrix, which is a superset or a partial
// overlap of the network's universe.
//
// Gene order in the result follows t's index order, not subset order, so
// restricting the same topology twice with permuted subsets yields identical
// values.
//
// Errors:
//   - ErrEmptyTopology when the induced subgraph has no edges.
//
// Complexity: O(G + E).
func (t *Topology) RestrictTo(subset []string) (*Topology, error) {
	keep := make([]bool, len(t.genes))
	for _, g := range subset {
		if i, ok := t.index[g]; ok {
			keep[i] = true
		}
	}
	sub := t.induce(keep)
	if sub.edges == 0 {
		return nil, fmt.Errorf("%s: %d of %d genes kept: %w", methodRestrictTo, sub.GeneCount(), t.GeneCount(), ErrEmptyTopology)
	}

	return sub, nil
}

// LargestComponent returns the induced subgraph on the largest connected
// component. Ties go to the component holding the smallest gene index.
//
// Errors:
//   - ErrEmptyTopology when t has no edges (every component is a single gene).
func (t *Topology) LargestComponent() (*Topology, error) {
	if t.edges == 0 {
		return nil, fmt.Errorf("%s: %w", methodLargestComponent, ErrEmptyTopology)
	}
	comps := t.Components()
	best := 0
	for c := 1; c < len(comps); c++ {
		if len(comps[c]) > len(comps[best]) {
			best = c
		}
	}
	keep := make([]bool, len(t.genes))
	for _, i := range comps[best] {
		keep[i] = true
	}

	return t.induce(keep), nil
}

// induce builds the subgraph on genes with keep[i]==true, preserving index
// order. Edges are emitted in ascending (u,v) order, so the CSR rows of the
// result are already sorted.
func (t *Topology) induce(keep []bool) *Topology {
	remap := make([]int, len(t.genes))
	genes := make([]string, 0, len(t.genes))
	index := make(map[string]int)
	for i, g := range t.genes {
		if !keep[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(genes)
		index[g] = len(genes)
		genes = append(genes, g)
	}

	var pairs []pairKey
	for u := 0; u < len(t.genes); u++ {
		if remap[u] < 0 {
			continue
		}
		for _, v := range t.colIdx[t.rowPtr[u]:t.rowPtr[u+1]] {
			if u < v && remap[v] >= 0 {
				pairs = append(pairs, pairKey{u: remap[u], v: remap[v]})
			}
		}
	}

	return newTopology(genes, index, pairs)
}

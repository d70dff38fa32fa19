// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"slices"
	"strconv"
)

const (
	methodBuild        = "Build"
	methodBuildIndexed = "BuildIndexed"
	indexedGenePrefix  = "g"
)

// Build creates a Topology over universe from an undirected edge list.
//
// Implementation:
//   - Stage 1: validate the universe (non-empty, unique, non-blank symbols).
//   - Stage 2: map every edge to a normalized index pair (u<v), rejecting
//     unknown endpoints and self-loops unless relaxed by options.
//   - Stage 3: de-duplicate pairs and lay them out as a symmetric CSR.
//
// Behavior highlights:
//   - Gene index i is the position of the symbol in universe.
//   - Duplicate edges (A–B twice, or A–B plus B–A) collapse to one.
//   - Genes without edges are kept; their rows are empty.
//
// Errors:
//   - ErrInvalidTopology (wrapped with the offending symbol or edge).
//
// Complexity:
//   - Time O(G + E log d_max), Space O(G + E).
func Build(universe []string, edges []Edge, opts ...Option) (*Topology, error) {
	o := gatherOptions(opts...)

	if len(universe) == 0 {
		return nil, fmt.Errorf("%s: empty gene universe: %w", methodBuild, ErrInvalidTopology)
	}
	index := make(map[string]int, len(universe))
	for i, g := range universe {
		if g == "" {
			return nil, fmt.Errorf("%s: blank gene symbol at %d: %w", methodBuild, i, ErrInvalidTopology)
		}
		if _, dup := index[g]; dup {
			return nil, fmt.Errorf("%s: duplicate gene symbol %q: %w", methodBuild, g, ErrInvalidTopology)
		}
		index[g] = i
	}

	seen := make(map[pairKey]struct{}, len(edges))
	pairs := make([]pairKey, 0, len(edges))
	for _, e := range edges {
		u, okA := index[e.A]
		v, okB := index[e.B]
		if !okA || !okB {
			if o.dropUnknown {
				continue
			}
			return nil, fmt.Errorf("%s: edge %s–%s references unknown gene: %w", methodBuild, e.A, e.B, ErrInvalidTopology)
		}
		if u == v {
			if o.dropSelfLoops {
				continue
			}
			return nil, fmt.Errorf("%s: self-loop on %s: %w", methodBuild, e.A, ErrInvalidTopology)
		}
		k := normalize(u, v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		pairs = append(pairs, k)
	}

	genes := make([]string, len(universe))
	copy(genes, universe)

	return newTopology(genes, index, pairs), nil
}

// BuildIndexed creates a Topology directly in index space, for loaders that
// have already aligned genes to matrix columns. Gene symbols are synthesized
// as "g0".."g{n-1}". Self-loops and out-of-range indices are ErrInvalidTopology;
// duplicates collapse.
func BuildIndexed(genes int, pairs [][2]int) (*Topology, error) {
	if genes <= 0 {
		return nil, fmt.Errorf("%s: genes=%d: %w", methodBuildIndexed, genes, ErrInvalidTopology)
	}
	names := make([]string, genes)
	index := make(map[string]int, genes)
	for i := range names {
		names[i] = indexedGenePrefix + strconv.Itoa(i)
		index[names[i]] = i
	}

	seen := make(map[pairKey]struct{}, len(pairs))
	keys := make([]pairKey, 0, len(pairs))
	for _, p := range pairs {
		u, v := p[0], p[1]
		if u < 0 || u >= genes || v < 0 || v >= genes {
			return nil, fmt.Errorf("%s: pair (%d,%d) outside [0,%d): %w", methodBuildIndexed, u, v, genes, ErrInvalidTopology)
		}
		if u == v {
			return nil, fmt.Errorf("%s: self-loop on %d: %w", methodBuildIndexed, u, ErrInvalidTopology)
		}
		k := normalize(u, v)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	return newTopology(names, index, keys), nil
}

func normalize(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}

	return pairKey{u: u, v: v}
}

// newTopology lays de-duplicated pairs out as a symmetric CSR. Takes
// ownership of genes and index.
func newTopology(genes []string, index map[string]int, pairs []pairKey) *Topology {
	n := len(genes)
	rowPtr := make([]int, n+1)
	for _, p := range pairs {
		rowPtr[p.u+1]++
		rowPtr[p.v+1]++
	}
	for i := 0; i < n; i++ {
		rowPtr[i+1] += rowPtr[i]
	}

	colIdx := make([]int, rowPtr[n])
	fill := make([]int, n)
	copy(fill, rowPtr[:n])
	for _, p := range pairs {
		colIdx[fill[p.u]] = p.v
		fill[p.u]++
		colIdx[fill[p.v]] = p.u
		fill[p.v]++
	}
	for i := 0; i < n; i++ {
		slices.Sort(colIdx[rowPtr[i]:rowPtr[i+1]])
	}

	return &Topology{
		genes:  genes,
		index:  index,
		rowPtr: rowPtr,
		colIdx: colIdx,
		edges:  len(pairs),
	}
}

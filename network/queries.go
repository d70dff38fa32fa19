// SPDX-License-Identifier: MIT
//
// File: queries.go
// Role: read-only getters. No locks are needed: a Topology is never mutated
// after construction.

package network

import "fmt"

// GeneCount returns G, the size of the gene index space.
func (t *Topology) GeneCount() int { return len(t.genes) }

// EdgeCount returns the number of undirected edges.
func (t *Topology) EdgeCount() int { return t.edges }

// Degree returns the number of neighbors of gene i.
// Complexity: O(1).
func (t *Topology) Degree(i int) (int, error) {
	if i < 0 || i >= len(t.genes) {
		return 0, fmt.Errorf("Degree(%d): %w", i, ErrOutOfRange)
	}

	return t.rowPtr[i+1] - t.rowPtr[i], nil
}

// Neighbors returns a copy of the sorted neighbor indices of gene i.
// Complexity: O(deg(i)).
func (t *Topology) Neighbors(i int) ([]int, error) {
	if i < 0 || i >= len(t.genes) {
		return nil, fmt.Errorf("Neighbors(%d): %w", i, ErrOutOfRange)
	}
	row := t.colIdx[t.rowPtr[i]:t.rowPtr[i+1]]
	out := make([]int, len(row))
	copy(out, row)

	return out, nil
}

// HasEdge reports whether genes i and j are adjacent. Out-of-range indices
// report false.
// Complexity: O(log deg(i)).
func (t *Topology) HasEdge(i, j int) bool {
	if i < 0 || i >= len(t.genes) || j < 0 || j >= len(t.genes) {
		return false
	}
	row := t.colIdx[t.rowPtr[i]:t.rowPtr[i+1]]
	lo, hi := 0, len(row)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if row[mid] < j {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo < len(row) && row[lo] == j
}

// Genes returns a copy of the gene symbols in index order.
func (t *Topology) Genes() []string {
	out := make([]string, len(t.genes))
	copy(out, t.genes)

	return out
}

// Gene returns the symbol of gene i.
func (t *Topology) Gene(i int) (string, error) {
	if i < 0 || i >= len(t.genes) {
		return "", fmt.Errorf("Gene(%d): %w", i, ErrOutOfRange)
	}

	return t.genes[i], nil
}

// Index returns the index of a gene symbol.
func (t *Topology) Index(symbol string) (int, bool) {
	i, ok := t.index[symbol]

	return i, ok
}

// Slots returns len(colIdx), i.e. 2*EdgeCount(): the number of nonzero
// entries of the adjacency and of every per-cell stochastic matrix.
func (t *Topology) Slots() int { return len(t.colIdx) }

// CSR exposes the adjacency arrays for hot kernels.
//
// The returned slices alias internal storage and MUST NOT be modified; doing
// so breaks the immutability every concurrent reader relies on.
func (t *Topology) CSR() (rowPtr, colIdx []int) { return t.rowPtr, t.colIdx }

// Edges returns the undirected edge list (u<v) in ascending (u, v) order.
// Complexity: O(E).
func (t *Topology) Edges() [][2]int {
	out := make([][2]int, 0, t.edges)
	for u := 0; u < len(t.genes); u++ {
		for _, v := range t.colIdx[t.rowPtr[u]:t.rowPtr[u+1]] {
			if u < v {
				out = append(out, [2]int{u, v})
			}
		}
	}

	return out
}

// Stats returns a shape snapshot. Complexity: O(G).
func (t *Topology) Stats() Stats {
	s := Stats{Genes: len(t.genes), Edges: t.edges}
	for i := 0; i < len(t.genes); i++ {
		d := t.rowPtr[i+1] - t.rowPtr[i]
		if d == 0 {
			s.Isolated++
		}
		if d > s.MaxDegree {
			s.MaxDegree = d
		}
	}
	if s.Genes > 0 {
		s.MeanDegree = float64(2*t.edges) / float64(s.Genes)
	}

	return s
}

// SPDX-License-Identifier: MIT

// Package network: domain types. Errors and options live in errors.go and
// options.go; construction lives in build.go.
package network

// Edge is an undirected interaction between two gene symbols. The order of A
// and B carries no meaning: {A,B} and {B,A} denote the same edge.
type Edge struct {
	A string
	B string
}

// pairKey is a normalized undirected pair with u < v, used to de-duplicate
// edges during ingestion. Ints keep the key compact and hash-friendly.
type pairKey struct {
	u int
	v int
}

// Topology is the immutable, symmetric CSR adjacency of the interaction
// network over a fixed gene index space.
//
//   - genes[i] is the symbol of gene index i; index[genes[i]] == i.
//   - rowPtr has len G+1; the neighbors of i are colIdx[rowPtr[i]:rowPtr[i+1]],
//     sorted ascending, never containing i itself.
//   - len(colIdx) == 2*edges (every undirected edge is stored in both rows).
type Topology struct {
	genes  []string
	index  map[string]int
	rowPtr []int
	colIdx []int
	edges  int
}

// Stats is a read-only snapshot of topology shape, cheap to compute (O(G)).
type Stats struct {
	Genes      int     `json:"genes"`       // G
	Edges      int     `json:"edges"`       // undirected edge count
	Isolated   int     `json:"isolated"`    // genes with degree 0
	MaxDegree  int     `json:"max_degree"`  // largest degree
	MeanDegree float64 `json:"mean_degree"` // 2E / G
}

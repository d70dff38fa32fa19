// SPDX-License-Identifier: MIT

// Package ingest loads interaction networks and expression tables and
// harmonizes them into the aligned (topology, matrix) pair the scorer needs.
//
// Sources:
//
//   - ReadEdgeList: delimited two-column gene pairs, '#' comments, optional
//     header, optional confidence-score filter.
//   - ReadExpression: delimited cells × genes table (or genes × cells with
//     WithGenesAsRows), first column = identifier, header = symbols.
//   - LoadEdges: a Cypher query against a graph database through GraphClient;
//     NewNeo4jClient speaks Bolt via the official driver, MemoryClient is the
//     in-process fake.
//
// Open transparently decompresses files ending in ".gz".
//
// Harmonize then:
//
//  1. drops artifact genes by symbol prefix (ribosomal RPS/RPL, mitochondrial MT);
//  2. intersects expression and network gene symbols, sorted;
//  3. builds the induced topology and keeps its largest connected component;
//  4. aligns expression columns to the topology's gene order.
package ingest

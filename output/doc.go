// SPDX-License-Identifier: MIT

// Package output writes per-cell scores as TSV, CSV or JSON Lines and
// summarizes a score distribution.
//
// Writer streams: rows can be written batch by batch as the scorer yields
// them, and the delimited formats emit their header once, before the first
// row.
package output

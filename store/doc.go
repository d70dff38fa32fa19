// SPDX-License-Identifier: MIT

// Package store persists scoring runs: one Run record per invocation and the
// per-cell scores it produced, keyed by cell position.
//
// Two backends share the Store contract: an in-process map (tests, one-off
// runs) and SQLite through the pure-Go modernc.org/sqlite driver. Both must
// be initialized with Init before use and are safe for concurrent callers.
//
// A Run carries the topology fingerprint, so runs scored against the same
// network can be found and compared later.
package store

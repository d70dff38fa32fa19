// SPDX-License-Identifier: MIT

package ingest

import "errors"

var (
	// ErrMalformed indicates an unparsable line in a delimited input.
	ErrMalformed = errors.New("ingest: malformed input")

	// ErrNoOverlap indicates that expression and network share no gene symbols.
	ErrNoOverlap = errors.New("ingest: no shared genes between expression and network")

	// ErrMissingURI indicates a graph client without a URI.
	ErrMissingURI = errors.New("ingest: graph URI is required")

	// ErrUnexpectedRecord indicates a graph query row without string "a"/"b" columns.
	ErrUnexpectedRecord = errors.New("ingest: unexpected graph record")
)

// SPDX-License-Identifier: MIT
// Package network: functional options for Build.
//
// Defaults are strict: an edge with an unknown endpoint or a self-loop is an
// ErrInvalidTopology. Loaders reading public interaction databases commonly
// relax both (homodimer self-interactions, identifiers outside the measured
// panel); the relaxation must be explicit.

package network

// Defaults (single source of truth for zero-value behavior).
const (
	// DefaultDropSelfLoops rejects self-loops with ErrInvalidTopology when false.
	DefaultDropSelfLoops = false

	// DefaultDropUnknown rejects edges with endpoints outside the universe when false.
	DefaultDropUnknown = false
)

// Option configures Build.
type Option func(*options)

type options struct {
	dropSelfLoops bool
	dropUnknown   bool
}

// WithDropSelfLoops silently skips A–A edges instead of failing.
func WithDropSelfLoops() Option {
	return func(o *options) { o.dropSelfLoops = true }
}

// WithDropUnknown silently skips edges whose endpoints are not in the universe.
func WithDropUnknown() Option {
	return func(o *options) { o.dropUnknown = true }
}

func gatherOptions(opts ...Option) options {
	o := options{
		dropSelfLoops: DefaultDropSelfLoops,
		dropUnknown:   DefaultDropUnknown,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

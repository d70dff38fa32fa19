// SPDX-License-Identifier: MIT
// Package builder: functional options.
//
// Option constructors validate and PANIC on meaningless inputs; constructors
// themselves never panic. Determinism is explicit via WithSeed or WithRand.

package builder

import (
	"fmt"
	"math/rand"
)

// BuilderOption mutates a builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the index -> gene symbol mapping. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG; use it to freeze stochastic outputs.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithDropout sets the probability that an expression entry is 0.
// Panics unless 0 ≤ p ≤ 1.
func WithDropout(p float64) BuilderOption {
	if !(p >= 0 && p <= 1) {
		panic(fmt.Sprintf("builder: WithDropout(%g)", p))
	}
	return func(c *builderConfig) { c.dropout = p }
}

// WithScale multiplies every expression magnitude. Panics if s ≤ 0.
func WithScale(s float64) BuilderOption {
	if !(s > 0) {
		panic(fmt.Sprintf("builder: WithScale(%g)", s))
	}
	return func(c *builderConfig) { c.scale = s }
}

// WithNoise sets the log-normal sigma of expression magnitudes. Panics if sigma < 0.
func WithNoise(sigma float64) BuilderOption {
	if sigma < 0 {
		panic("builder: WithNoise(sigma<0)")
	}
	return func(c *builderConfig) { c.noiseSigma = sigma }
}

// WithCellPrefix names cells prefix+index. Empty keeps the default.
func WithCellPrefix(prefix string) BuilderOption {
	return func(c *builderConfig) {
		if prefix != "" {
			c.cellPrefix = prefix
		}
	}
}

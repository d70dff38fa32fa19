// SPDX-License-Identifier: MIT
// Package entropy: functional options for the CPU backend and MaxEntropy.
//
// Constructors panic on nonsensical arguments (non-positive worker counts,
// tolerances outside (0,1)); these are programming errors, not runtime data.

package entropy

import (
	"fmt"
	"runtime"
)

const (
	// DefaultMemoryLimit of 0 disables the workspace budget check.
	DefaultMemoryLimit uint64 = 0

	// DefaultTolerance is the relative change of the Rayleigh quotient at
	// which power iteration stops.
	DefaultTolerance = 1e-12

	// DefaultMaxIterations caps power iteration.
	DefaultMaxIterations = 10000
)

// CPUOption configures NewCPU.
type CPUOption func(*CPU)

// WithWorkers sets the number of goroutines a batch is split across.
// Defaults to runtime.GOMAXPROCS(0). Panics if n < 1.
func WithWorkers(n int) CPUOption {
	if n < 1 {
		panic(fmt.Sprintf("entropy: WithWorkers(%d): need >= 1", n))
	}

	return func(c *CPU) { c.workers = n }
}

// WithMemoryLimit caps the workspace size, in bytes, a single Compute call may
// use. Zero means unlimited.
func WithMemoryLimit(bytes uint64) CPUOption {
	return func(c *CPU) { c.memoryLimit = bytes }
}

func defaultWorkers() int { return runtime.GOMAXPROCS(0) }

// SpectralOption configures MaxEntropy.
type SpectralOption func(*spectralOptions)

type spectralOptions struct {
	tol     float64
	maxIter int
}

// WithTolerance sets the relative convergence tolerance. Panics unless 0 < tol < 1.
func WithTolerance(tol float64) SpectralOption {
	if !(tol > 0 && tol < 1) {
		panic(fmt.Sprintf("entropy: WithTolerance(%g): need 0 < tol < 1", tol))
	}

	return func(o *spectralOptions) { o.tol = tol }
}

// WithMaxIterations caps power iteration. Panics if n < 1.
func WithMaxIterations(n int) SpectralOption {
	if n < 1 {
		panic(fmt.Sprintf("entropy: WithMaxIterations(%d): need >= 1", n))
	}

	return func(o *spectralOptions) { o.maxIter = n }
}

func gatherSpectral(opts ...SpectralOption) spectralOptions {
	o := spectralOptions{tol: DefaultTolerance, maxIter: DefaultMaxIterations}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// SPDX-License-Identifier: MIT

package builder

import "math/rand"

// builderConfig is the resolved, immutable view of all options.
type builderConfig struct {
	idFn IDFn
	rng  *rand.Rand

	// Expression only.
	dropout    float64 // probability an entry is 0
	scale      float64 // multiplies every magnitude
	noiseSigma float64 // log-normal sigma
	cellPrefix string
}

const (
	defaultDropout    = 0.0
	defaultScale      = 1.0
	defaultNoiseSigma = 1.0
)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:       DefaultIDFn,
		dropout:    defaultDropout,
		scale:      defaultScale,
		noiseSigma: defaultNoiseSigma,
		cellPrefix: DefaultCellPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

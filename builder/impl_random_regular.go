// SPDX-License-Identifier: MIT
//
// impl_random_regular.go - d-regular simple graphs by stub matching.
//
// Every gene gets d stubs; a seeded shuffle pairs consecutive stubs. A pairing
// with a self-loop or a repeated pair is rejected and reshuffled, up to a
// bounded number of attempts. Regular graphs are useful fixtures: uniform
// expression on them reaches the maximal entropy rate log(d) exactly.

package builder

import "fmt"

const maxStubMatchingAttempts = 100

// RandomRegular samples a d-regular simple graph on n genes. Requires
// 0 ≤ d < n, n·d even and an RNG.
// Complexity: O(n·d) per attempt.
func RandomRegular(n, d int) Constructor {
	return func(dr *draft, cfg builderConfig) error {
		if err := validateMin(MethodRandomRegular, n, 1); err != nil {
			return err
		}
		if d < 0 || d >= n {
			return fmt.Errorf("%s: degree must be in [0,%d), got %d: %w", MethodRandomRegular, n, d, ErrTooFewVertices)
		}
		if (n*d)%2 != 0 {
			return fmt.Errorf("%s: n*d must be even (n=%d, d=%d): %w", MethodRandomRegular, n, d, ErrTooFewVertices)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", MethodRandomRegular, ErrNeedRandSource)
		}
		dr.addGenes(n, cfg.idFn)

		stubs := make([]int, 0, n*d)
		for i := 0; i < n; i++ {
			for k := 0; k < d; k++ {
				stubs = append(stubs, i)
			}
		}
		if len(stubs) == 0 {
			return nil
		}

		for attempt := 1; attempt <= maxStubMatchingAttempts; attempt++ {
			cfg.rng.Shuffle(len(stubs), func(i, j int) { stubs[i], stubs[j] = stubs[j], stubs[i] })
			if !simplePairing(stubs) {
				continue
			}
			for i := 0; i < len(stubs); i += 2 {
				dr.addEdge(cfg.idFn(stubs[i]), cfg.idFn(stubs[i+1]))
			}

			return nil
		}

		return fmt.Errorf("%s: no simple pairing after %d attempts: %w", MethodRandomRegular, maxStubMatchingAttempts, ErrConstructFailed)
	}
}

// simplePairing reports whether consecutive stub pairs form a simple graph.
func simplePairing(stubs []int) bool {
	seen := make(map[[2]int]struct{}, len(stubs)/2)
	for i := 0; i < len(stubs); i += 2 {
		u, v := stubs[i], stubs[i+1]
		if u == v {
			return false
		}
		if u > v {
			u, v = v, u
		}
		if _, dup := seen[[2]int{u, v}]; dup {
			return false
		}
		seen[[2]int{u, v}] = struct{}{}
	}

	return true
}

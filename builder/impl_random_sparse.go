// Package: wareflow/builder
//
// impl_random_sparse.go - RandomSparse(n, p) constructor.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewFlags); 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - An RNG is required when 0 < p < 1 (else ErrNeedRandSource).
//   - Flags are laid out on a square block ⌈√n⌉ wide, row-major.
//   - Every unordered pair {i,j}, i<j in index order, gets a road with
//     probability p. The result need not be connected.
//
// Complexity: O(n²) Bernoulli trials.

package builder

import (
	"fmt"
	"math"
)

const (
	methodRandomSparse   = "RandomSparse"
	minRandomSparseFlags = 1
	probMin              = 0.0
	probMax              = 1.0
)

// RandomSparse returns a Constructor that samples roads between n flags.
func RandomSparse(n int, p float64) Constructor {
	return func(t Target, cfg *builderConfig, l *Layout) error {
		if n < minRandomSparseFlags {
			return fmt.Errorf("%s: n=%d < min=%d: %w",
				methodRandomSparse, n, minRandomSparseFlags, ErrTooFewFlags)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				methodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		if cfg.rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: rng is required: %w", methodRandomSparse, ErrNeedRandSource)
		}

		width := int(math.Ceil(math.Sqrt(float64(n))))
		base := len(l.Flags)
		for i := 0; i < n; i++ {
			if _, err := l.addFlag(t, cfg, methodRandomSparse, cfg.nextID(), i%width, i/width); err != nil {
				return err
			}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				switch {
				case p == probMin:
					continue
				case p < probMax && cfg.rng.Float64() > p:
					continue
				}
				if err := l.addRoad(t, cfg, methodRandomSparse, l.Flags[base+i], l.Flags[base+j]); err != nil {
					return err
				}
			}
		}
		cfg.shift(width)

		return nil
	}
}

// Package: wareflow/builder
//
// impl_star.go - Star(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewFlags).
//   - The hub is the first flag, at the origin; the n-1 leaves follow in a
//     row one step below, leaf i at origin+(i,1)*spacing.
//   - Spokes hub-leaf in increasing leaf order.

package builder

import "fmt"

const (
	methodStar   = "Star"
	minStarFlags = 2
)

// Star returns a Constructor that builds one hub with n-1 leaves.
func Star(n int) Constructor {
	return func(t Target, cfg *builderConfig, l *Layout) error {
		if n < minStarFlags {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarFlags, ErrTooFewFlags)
		}

		hub, err := l.addFlag(t, cfg, methodStar, cfg.nextID(), 0, 0)
		if err != nil {
			return err
		}
		for i := 0; i < n-1; i++ {
			leaf, err := l.addFlag(t, cfg, methodStar, cfg.nextID(), i, 1)
			if err != nil {
				return err
			}
			if err = l.addRoad(t, cfg, methodStar, hub, leaf); err != nil {
				return err
			}
		}
		cfg.shift(n - 1)

		return nil
	}
}

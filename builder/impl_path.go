// Package: wareflow/builder
//
// impl_path.go - Path(n) constructor.
//
// Contract:
//   - n ≥ 2 (else ErrTooFewFlags).
//   - Flags i=0..n-1 at origin+(i,0)*spacing, named via cfg.idFn.
//   - Roads (i-1)-i for i=1..n-1 in increasing order.

package builder

import "fmt"

const (
	methodPath   = "Path"
	minPathFlags = 2
)

// Path returns a Constructor that builds a straight chain of n flags.
func Path(n int) Constructor {
	return func(t Target, cfg *builderConfig, l *Layout) error {
		if n < minPathFlags {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathFlags, ErrTooFewFlags)
		}

		prev, err := l.addFlag(t, cfg, methodPath, cfg.nextID(), 0, 0)
		if err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			f, err := l.addFlag(t, cfg, methodPath, cfg.nextID(), i, 0)
			if err != nil {
				return err
			}
			if err = l.addRoad(t, cfg, methodPath, prev, f); err != nil {
				return err
			}
			prev = f
		}
		cfg.shift(n)

		return nil
	}
}

// Package: wareflow/builder
//
// impl_grid.go - Grid(rows, cols) constructor.
//
// Contract:
//   - rows ≥ 1 and cols ≥ 1 (else ErrTooFewFlags).
//   - Flags in row-major order at origin+(c,r)*spacing, named via cfg.idFn.
//   - For each (r,c) a road to the Right neighbour, then to the Bottom one.
//
// Complexity: O(rows*cols) flags and roads.

package builder

import (
	"fmt"

	"github.com/katalvlaran/wareflow/core"
)

const (
	methodGrid = "Grid"
	minGridDim = 1
)

// Grid returns a Constructor that builds a rows×cols orthogonal grid.
func Grid(rows, cols int) Constructor {
	return func(t Target, cfg *builderConfig, l *Layout) error {
		if rows < minGridDim || cols < minGridDim {
			return fmt.Errorf("%s: rows=%d, cols=%d (each must be ≥ %d): %w",
				methodGrid, rows, cols, minGridDim, ErrTooFewFlags)
		}

		// 1) Flags, row-major.
		base := len(l.Flags)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if _, err := l.addFlag(t, cfg, methodGrid, cfg.nextID(), c, r); err != nil {
					return err
				}
			}
		}
		at := func(r, c int) *core.Flag { return l.Flags[base+r*cols+c] }

		// 2) Right then Bottom neighbour per cell.
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				u := at(r, c)
				if c+1 < cols {
					if err := l.addRoad(t, cfg, methodGrid, u, at(r, c+1)); err != nil {
						return err
					}
				}
				if r+1 < rows {
					if err := l.addRoad(t, cfg, methodGrid, u, at(r+1, c)); err != nil {
						return err
					}
				}
			}
		}
		cfg.shift(cols)

		return nil
	}
}

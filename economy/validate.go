package economy

import (
	"fmt"

	"github.com/katalvlaran/wareflow/core"
)

// Validate checks that the economies of each kind partition the live flags
// and that every registered object sits in the economy of its flag.
// Connectivity is not checked: splits are resolved lazily.
func (s *Session) Validate() error {
	flags := s.net.Flags()
	for _, k := range core.Kinds {
		total := 0
		for _, e := range s.economies {
			if e.kind != k {
				continue
			}
			if len(e.flags) == 0 {
				return fmt.Errorf("%w: economy %d has no flags", ErrCorrupt, e.serial)
			}
			for _, f := range e.flags {
				if !f.Alive() || !e.Contains(f) {
					return fmt.Errorf("%w: economy %d lists flag %d it does not own", ErrCorrupt, e.serial, f.Serial())
				}
			}
			total += len(e.flags)
		}
		if total != len(flags) {
			return fmt.Errorf("%w: %s economies hold %d flags, network has %d", ErrCorrupt, k, total, len(flags))
		}
		for _, f := range flags {
			e := s.EconomyOf(f, k)
			if e == nil || e.dead {
				return fmt.Errorf("%w: flag %d has no %s economy", ErrCorrupt, f.Serial(), k)
			}
		}
	}

	for r := range s.requests {
		if e := s.EconomyOf(r.flag, r.kind); e != r.economy {
			return fmt.Errorf("%w: request %d is outside its flag's economy", ErrCorrupt, r.serial)
		}
	}
	for sup := range s.supplies {
		u := sup.(unitHolder).unit()
		if e := s.EconomyOf(u.flag, u.kind); e != u.econ || !e.hasSupply(sup) {
			return fmt.Errorf("%w: supply %d is outside its flag's economy", ErrCorrupt, u.serial)
		}
	}
	for _, w := range s.warehouses {
		for _, k := range core.Kinds {
			e := s.EconomyOf(w.BaseFlag(), k)
			if e == nil || !e.hasSupply(w.Supply()) {
				return fmt.Errorf("%w: warehouse %d is outside its flag's %s economy", ErrCorrupt, w.Serial(), k)
			}
		}
	}

	return nil
}

package economy

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wareflow/core"
)

// ErrUnknownEconomy indicates a snapshot naming no live economy.
var ErrUnknownEconomy = errors.New("economy: no such economy")

// Snapshot is the persistent state of one economy: targets with their
// timestamps and the request-timer serial. Everything else is rebuilt from
// the buildings and roads on load.
type Snapshot struct {
	Serial      core.Serial
	Owner       core.Player
	Kind        core.Kind
	TimerSerial uint32
	Targets     []TargetQuantity
}

// Snapshot captures e.
func (e *Economy) Snapshot() Snapshot {
	targets := make([]TargetQuantity, len(e.targets))
	copy(targets, e.targets)

	return Snapshot{
		Serial:      e.serial,
		Owner:       e.owner,
		Kind:        e.kind,
		TimerSerial: e.timer,
		Targets:     targets,
	}
}

// Restore loads targets and timer serial from sn and re-arms the timer.
func (e *Economy) Restore(sn Snapshot) error {
	if sn.Kind != e.kind {
		return fmt.Errorf("%w: economy %d is %s, snapshot is %s", ErrCorrupt, e.serial, e.kind, sn.Kind)
	}
	if len(sn.Targets) != len(e.targets) {
		return fmt.Errorf("%w: economy %d has %d types, snapshot has %d", ErrCorrupt, e.serial, len(e.targets), len(sn.Targets))
	}
	copy(e.targets, sn.Targets)
	e.timer = sn.TimerSerial
	e.rearm()

	return nil
}

// Snapshot captures every live economy in serial order.
func (s *Session) Snapshot() []Snapshot {
	econs := s.Economies()
	out := make([]Snapshot, 0, len(econs))
	for _, e := range econs {
		out = append(out, e.Snapshot())
	}

	return out
}

// Restore applies each snapshot to the economy with the same serial. It stops
// at the first snapshot that cannot be applied.
func (s *Session) Restore(snaps []Snapshot) error {
	for _, sn := range snaps {
		e, ok := s.economies[sn.Serial]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownEconomy, sn.Serial)
		}
		if err := e.Restore(sn); err != nil {
			return err
		}
	}

	return nil
}

// Package: wareflow/builder
//
// api.go - public entry point, Target and Layout.
//
// Design contract:
//   - One orchestrator: BuildNetwork(target, bopts, cons...). Resolves cfg once
//     and runs cons in order against one Layout.
//   - Constructors place flags relative to cfg.origin and shift it right past
//     what they built, so composed topologies never collide.

package builder

import (
	"fmt"

	"github.com/katalvlaran/wareflow/core"
)

// Target is where flags and roads are created. Both *core.Network and
// *economy.Session satisfy it; building through a session keeps economies
// up to date.
type Target interface {
	AddFlag(pos core.Coords, player core.Player) (*core.Flag, error)
	AddRoad(a, b *core.Flag, cost int64, opts ...core.RoadOption) (*core.Road, error)
}

// Layout records what a build created, in creation order.
type Layout struct {
	Flags []*core.Flag
	Roads []*core.Road

	byID map[string]*core.Flag
}

// Flag returns the flag generated under id.
func (l *Layout) Flag(id string) (*core.Flag, bool) {
	f, ok := l.byID[id]

	return f, ok
}

// MustFlag is Flag for fixtures; it panics on unknown ids.
func (l *Layout) MustFlag(id string) *core.Flag {
	f, ok := l.byID[id]
	if !ok {
		panic(fmt.Sprintf("builder: no flag %q", id))
	}

	return f
}

// Constructor adds one topology to the layout. Constructors validate their
// parameters before touching the target.
type Constructor func(t Target, cfg *builderConfig, l *Layout) error

// BuildNetwork resolves bopts and applies cons in order. Errors are wrapped
// with "BuildNetwork: %w"; flags and roads created before the failure stay
// in the target.
func BuildNetwork(t Target, bopts []BuilderOption, cons ...Constructor) (*Layout, error) {
	if t == nil {
		return nil, fmt.Errorf("BuildNetwork: nil target: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	l := &Layout{byID: make(map[string]*core.Flag)}

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildNetwork: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(t, &cfg, l); err != nil {
			return nil, fmt.Errorf("BuildNetwork: %w", err)
		}
	}

	return l, nil
}

// addFlag places a flag at origin+(dx,dy)*spacing and records it under id.
func (l *Layout) addFlag(t Target, cfg *builderConfig, method, id string, dx, dy int) (*core.Flag, error) {
	if _, dup := l.byID[id]; dup {
		return nil, fmt.Errorf("%s: flag %q: %w", method, id, ErrDuplicateID)
	}
	pos := core.Coords{X: cfg.origin.X + dx*cfg.spacing, Y: cfg.origin.Y + dy*cfg.spacing}
	f, err := t.AddFlag(pos, cfg.player)
	if err != nil {
		return nil, fmt.Errorf("%s: AddFlag(%s@%v): %w", method, id, pos, err)
	}
	l.byID[id] = f
	l.Flags = append(l.Flags, f)

	return f, nil
}

// addRoad joins a and b at the geometric bound plus a drawn slack.
func (l *Layout) addRoad(t Target, cfg *builderConfig, method string, a, b *core.Flag) error {
	cost := cfg.costPerField*int64(core.Distance(a.Position(), b.Position())) + cfg.slackFn(cfg.rng)
	r, err := t.AddRoad(a, b, cost, cfg.roadOpts...)
	if err != nil {
		return fmt.Errorf("%s: AddRoad(%d-%d, cost=%d): %w", method, a.Serial(), b.Serial(), cost, err)
	}
	l.Roads = append(l.Roads, r)

	return nil
}

// Package: wareflow/builder
//
// options.go - functional options.
//
// Option constructors validate and panic on meaningless inputs; constructors
// themselves never panic.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/wareflow/core"
)

// BuilderOption mutates the configuration before any constructor runs.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the flag naming scheme. Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithPrefixIDs names flags prefix+index ("f0","f1",...).
func WithPrefixIDs(prefix string) BuilderOption {
	return WithIDScheme(SymbolNumberIDFn(prefix))
}

// WithRand provides an explicit RNG. Panics on nil; prefer WithSeed.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a seeded RNG for RandomSparse and random slack.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithSlackFn sets the per-road slack above the geometric bound. Panics on nil.
func WithSlackFn(fn SlackFn) BuilderOption {
	if fn == nil {
		panic("builder: WithSlackFn(nil)")
	}
	return func(c *builderConfig) { c.slackFn = fn }
}

// WithSpacing sets the distance in fields between neighbouring flags.
// Panics if fields < 1.
func WithSpacing(fields int) BuilderOption {
	if fields < 1 {
		panic("builder: WithSpacing(fields<1)")
	}
	return func(c *builderConfig) { c.spacing = fields }
}

// WithCostPerField must match the target network's setting. Panics if cost < 1.
func WithCostPerField(cost int64) BuilderOption {
	if cost < 1 {
		panic("builder: WithCostPerField(cost<1)")
	}
	return func(c *builderConfig) { c.costPerField = cost }
}

// WithPlayer sets the owner of every created flag.
func WithPlayer(p core.Player) BuilderOption {
	return func(c *builderConfig) { c.player = p }
}

// WithOrigin sets where the first topology is placed.
func WithOrigin(pos core.Coords) BuilderOption {
	return func(c *builderConfig) { c.origin = pos }
}

// WithRoadOptions passes opts to every AddRoad (carried kinds, waterways).
func WithRoadOptions(opts ...core.RoadOption) BuilderOption {
	return func(c *builderConfig) { c.roadOpts = append(c.roadOpts, opts...) }
}

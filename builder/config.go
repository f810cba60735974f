// Package: wareflow/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   - idFn         = DefaultIDFn   ("0","1","2",...)
//   - rng          = nil           (deterministic unless seeded)
//   - slackFn      = zero slack    (every road costs exactly its bound)
//   - spacing      = 2 fields between neighbouring flags
//   - costPerField = 1
//   - player       = 0, origin = (0,0)

package builder

import (
	"math/rand"

	"github.com/katalvlaran/wareflow/core"
)

const (
	defaultSpacing      = 2
	defaultCostPerField = int64(1)
)

// builderConfig aggregates the knobs shared by constructors. Constructors
// advance origin so consecutive topologies sit side by side.
type builderConfig struct {
	idFn    IDFn
	rng     *rand.Rand
	slackFn SlackFn

	spacing      int
	costPerField int64
	player       core.Player
	origin       core.Coords
	roadOpts     []core.RoadOption

	// next is the index handed to idFn for the next flag.
	next int
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:         DefaultIDFn,
		slackFn:      ZeroSlack,
		spacing:      defaultSpacing,
		costPerField: defaultCostPerField,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// nextID draws the name of the next flag.
func (c *builderConfig) nextID() string {
	id := c.idFn(c.next)
	c.next++

	return id
}

// shift moves the origin past a block cols cells wide, plus one gap.
func (c *builderConfig) shift(cols int) {
	c.origin.X += (cols + 1) * c.spacing
}

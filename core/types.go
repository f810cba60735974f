// File: types.go
// Role: Kind, Serial, Coords, Flag, Road, Network declarations, options and
// sentinel errors.

package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/katalvlaran/wareflow/astar"
)

// Sentinel errors for network operations.
var (
	// ErrFlagNotFound indicates an operation referenced a flag that is not
	// part of this network (never added or already removed).
	ErrFlagNotFound = errors.New("core: flag not found")

	// ErrRoadNotFound indicates an operation referenced an unknown road.
	ErrRoadNotFound = errors.New("core: road not found")

	// ErrPositionTaken indicates AddFlag on coordinates that already hold a flag.
	ErrPositionTaken = errors.New("core: position already holds a flag")

	// ErrSelfRoad indicates a road whose two ends are the same flag.
	ErrSelfRoad = errors.New("core: road must join two distinct flags")

	// ErrForeignFlag indicates a road between flags of different players.
	ErrForeignFlag = errors.New("core: road must join flags of one player")

	// ErrRoadTooCheap indicates a road cost below CostPerField times the
	// distance of its ends, which would make the geometric estimator inadmissible.
	ErrRoadTooCheap = errors.New("core: road cost below geometric lower bound")

	// ErrNoKinds indicates a road that carries no commodity class at all.
	ErrNoKinds = errors.New("core: road carries no commodity class")
)

// Kind is a commodity class. Each class has its own economies and its own
// search state on every flag.
type Kind uint8

const (
	// KindWare is the class of wares carried along roads.
	KindWare Kind = iota
	// KindWorker is the class of workers walking along roads.
	KindWorker

	// KindCount is the number of commodity classes.
	KindCount = 2
)

// Kinds lists every commodity class in index order.
var Kinds = [KindCount]Kind{KindWare, KindWorker}

// String returns "ware" or "worker".
func (k Kind) String() string {
	switch k {
	case KindWare:
		return "ware"
	case KindWorker:
		return "worker"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// KindMask is a set of commodity classes.
type KindMask uint8

// CarriesAll is the mask of every class.
const CarriesAll = KindMask(1<<KindWare | 1<<KindWorker)

// MaskOf returns the mask holding exactly the given kinds.
func MaskOf(kinds ...Kind) KindMask {
	var m KindMask
	for _, k := range kinds {
		m |= 1 << k
	}

	return m
}

// Has reports whether k is in the mask.
func (m KindMask) Has(k Kind) bool { return m&(1<<k) != 0 }

// Player identifies the owner of flags and economies.
type Player uint8

// Serial is a session-unique object identifier. Zero means "none".
type Serial uint32

// SerialCounter hands out serials. It replaces a process-wide "last serial"
// global: the session owns one and resets it when a scenario is loaded.
type SerialCounter struct {
	last Serial
}

// NewSerialCounter returns a counter whose first serial is 1.
func NewSerialCounter() *SerialCounter { return &SerialCounter{} }

// Next returns a fresh serial.
func (c *SerialCounter) Next() Serial {
	c.last++

	return c.last
}

// Last returns the most recently issued serial.
func (c *SerialCounter) Last() Serial { return c.last }

// Reset makes the next serial last+1 (scenario load).
func (c *SerialCounter) Reset(last Serial) { c.last = last }

// Coords is a map position.
type Coords struct {
	X, Y int
}

// Distance returns the birds-eye (Chebyshev) distance between a and b in fields.
// It orders candidates heuristically and never replaces real route costs.
func Distance(a, b Coords) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}

	return dy
}

// Owner is the economy a flag belongs to for one Kind.
type Owner interface {
	Serial() Serial
}

// Flag is a vertex where roads meet.
type Flag struct {
	serial   Serial
	pos      Coords
	player   Player
	alive    bool
	roads    []*Road
	owners   [KindCount]Owner
	district [KindCount]Serial
	search   [KindCount]astar.State[*Flag]
}

// Road is an undirected connection between two flags.
type Road struct {
	serial   Serial
	a, b     *Flag
	cost     int64
	carries  KindMask
	waterway bool
}

// RoadOption configures a road when added.
type RoadOption func(*Road)

// WithCarries restricts the road to the given classes.
func WithCarries(mask KindMask) RoadOption {
	return func(r *Road) { r.carries = mask }
}

// AsWaterway marks the road as a ship or ferry connection.
func AsWaterway() RoadOption {
	return func(r *Road) { r.waterway = true }
}

// NetworkOption configures a Network before creation.
type NetworkOption func(*Network)

// WithSerials shares a serial counter with the network.
func WithSerials(c *SerialCounter) NetworkOption {
	return func(n *Network) {
		if c != nil {
			n.serials = c
		}
	}
}

// WithCostPerField sets the geometric lower bound per field of distance.
// Values below 1 are ignored.
func WithCostPerField(cost int64) NetworkOption {
	return func(n *Network) {
		if cost > 0 {
			n.costPerField = cost
		}
	}
}

// WithCycleLimit lowers the search-cycle wraparound limit of both kinds.
func WithCycleLimit(limit uint32) NetworkOption {
	return func(n *Network) { n.cycleLimit = limit }
}

// Network is the routing graph of one session.
//
// mu guards flags, roads and byPos; search state on flags is unguarded.
type Network struct {
	mu sync.RWMutex

	serials      *SerialCounter
	costPerField int64
	cycleLimit   uint32

	flags map[Serial]*Flag
	roads map[Serial]*Road
	byPos map[Coords]*Flag

	cycles [KindCount]*astar.Cycle
}

// NewNetwork creates an empty network.
func NewNetwork(opts ...NetworkOption) *Network {
	n := &Network{
		serials:      NewSerialCounter(),
		costPerField: 1,
		flags:        make(map[Serial]*Flag),
		roads:        make(map[Serial]*Road),
		byPos:        make(map[Coords]*Flag),
	}
	for _, opt := range opts {
		opt(n)
	}

	for _, k := range Kinds {
		kind := k
		var copts []astar.CycleOption
		if n.cycleLimit > 0 {
			copts = append(copts, astar.WithLimit(n.cycleLimit))
		}
		n.cycles[k] = astar.NewCycle(func() { n.resetSearch(kind) }, copts...)
	}

	return n
}

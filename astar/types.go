package astar

import (
	"errors"
	"math"

	"github.com/katalvlaran/wareflow/prioq"
)

// Unbounded disables the cost cutoff of FindRoute.
const Unbounded int64 = -1

// Sentinel errors. Both indicate programming errors and are raised by panic.
var (
	// ErrUnsettled indicates RouteTo on a node that was not settled by the
	// current search.
	ErrUnsettled = errors.New("astar: node is not settled in the current cycle")

	// ErrNilReset indicates NewCycle without a reset callback.
	ErrNilReset = errors.New("astar: cycle reset callback is nil")
)

// State is the transient search state a node carries for one commodity class.
// The zero value is an unseen node; NewState returns one ready to be queued.
type State[N comparable] struct {
	cycle     uint32
	realCost  int64
	estimate  int64
	backlink  N
	heapIndex int
}

// NewState returns a State that has never been searched.
func NewState[N comparable]() State[N] {
	return State[N]{heapIndex: prioq.NotQueued}
}

// Reset clears the cycle stamp. Cycle reset callbacks call this on every node.
func (s *State[N]) Reset() {
	var zero N
	s.cycle = 0
	s.backlink = zero
	s.heapIndex = prioq.NotQueued
}

// Stamp returns the cycle value last written into this state.
func (s *State[N]) Stamp() uint32 { return s.cycle }

// RealCost returns the cost from the search root(s) recorded in this state.
// Only meaningful when Stamp equals the current cycle.
func (s *State[N]) RealCost() int64 { return s.realCost }

// Backlink returns the predecessor recorded in this state (zero for roots).
func (s *State[N]) Backlink() N { return s.backlink }

func (s *State[N]) total() int64 { return s.realCost + s.estimate }

// Graph is a per-class view of a routing graph. The zero value of N is
// reserved to mean "no node" (roots have a zero backlink).
type Graph[N comparable] interface {
	// State returns the node's search state for the class of this view.
	State(n N) *State[N]

	// Neighbours calls visit for every neighbour reachable from n in this class,
	// in a deterministic order, with the non-negative cost of the connection.
	Neighbours(n N, visit func(to N, cost int64))
}

// Estimator returns a lower bound of the remaining cost from n to the goal.
type Estimator[N comparable] func(n N) int64

// ZeroEstimator turns the engine into Dijkstra's algorithm.
func ZeroEstimator[N comparable]() Estimator[N] {
	return func(N) int64 { return 0 }
}

// Positioned is a node with integer map coordinates.
type Positioned interface {
	comparable
	XY() (x, y int)
}

// Geometric returns a goal-directed estimator: scale times the Chebyshev
// distance to goal. It is admissible whenever every connection between two
// nodes costs at least scale times their Chebyshev distance.
func Geometric[N Positioned](goal N, scale int64) Estimator[N] {
	gx, gy := goal.XY()

	return func(n N) int64 {
		x, y := n.XY()

		return scale * int64(chebyshev(x-gx, y-gy))
	}
}

func chebyshev(dx, dy int) int {
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

// Route is an ordered node sequence from a search root to a destination.
type Route[N comparable] struct {
	Nodes []N
	Cost  int64
}

// Len returns the number of nodes on the route.
func (r Route[N]) Len() int { return len(r.Nodes) }

// Start returns the first node; the zero value for an empty route.
func (r Route[N]) Start() N {
	var zero N
	if len(r.Nodes) == 0 {
		return zero
	}

	return r.Nodes[0]
}

// End returns the last node; the zero value for an empty route.
func (r Route[N]) End() N {
	var zero N
	if len(r.Nodes) == 0 {
		return zero
	}

	return r.Nodes[len(r.Nodes)-1]
}

// CycleOption configures a Cycle.
type CycleOption func(*Cycle)

// WithLimit lowers the wraparound limit. Tests use it to exercise the reset
// path without four billion searches.
func WithLimit(limit uint32) CycleOption {
	return func(c *Cycle) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// Cycle is the monotonically increasing search counter shared by all nodes of
// one graph and class. See the package documentation for the reset contract.
type Cycle struct {
	value  uint32
	limit  uint32
	resets int
	reset  func()
}

// NewCycle returns a counter whose wraparound calls reset. reset must reset
// the State of every node that searches on this counter can reach.
func NewCycle(reset func(), opts ...CycleOption) *Cycle {
	if reset == nil {
		panic(ErrNilReset)
	}
	c := &Cycle{limit: math.MaxUint32, reset: reset}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Begin advances the counter for a new search and returns the new value.
// Stamp 0 is reserved for "never seen", so values run from 1 to the limit.
func (c *Cycle) Begin() uint32 {
	if c.value >= c.limit {
		c.reset()
		c.resets++
		c.value = 0
	}
	c.value++

	return c.value
}

// Current returns the value of the search in flight (0 before the first).
func (c *Cycle) Current() uint32 { return c.value }

// Resets returns how many times the counter wrapped around.
func (c *Cycle) Resets() int { return c.resets }

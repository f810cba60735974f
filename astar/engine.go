package astar

import (
	"fmt"

	"github.com/katalvlaran/wareflow/prioq"
)

// Engine is one search over a Graph. Create a fresh Engine per search; it
// claims a new cycle value on construction.
type Engine[N comparable] struct {
	g     Graph[N]
	cycle uint32
	est   Estimator[N]
	open  *prioq.Heap[N]
}

// New starts a search on g, advancing c. A nil estimator means ZeroEstimator.
func New[N comparable](g Graph[N], c *Cycle, est Estimator[N]) *Engine[N] {
	if est == nil {
		est = ZeroEstimator[N]()
	}
	e := &Engine[N]{g: g, cycle: c.Begin(), est: est}
	e.open = prioq.New(
		func(a, b N) bool { return g.State(a).total() < g.State(b).total() },
		func(n N) *int { return &g.State(n).heapIndex },
	)

	return e
}

// Push offers n at cost, reached from backlink (the zero value for a root).
func (e *Engine[N]) Push(n N, cost int64, backlink N) {
	st := e.g.State(n)

	// 1) Unseen in this cycle: initialise and queue.
	if st.cycle != e.cycle {
		st.cycle = e.cycle
		st.realCost = cost
		st.estimate = e.est(n)
		st.backlink = backlink
		st.heapIndex = prioq.NotQueued
		e.open.Push(n)

		return
	}

	// 2) Closed: its cost is final.
	if !e.open.Contains(n) {
		return
	}

	// 3) Open: accept cheaper-or-equal offers.
	if cost <= st.realCost {
		st.realCost = cost
		st.backlink = backlink
		e.open.DecreaseKey(n)
	}
}

// PushRoot queues n as a search root at cost zero.
func (e *Engine[N]) PushRoot(n N) {
	var zero N
	e.Push(n, 0, zero)
}

// Step settles the open node with the lowest cost plus estimate, relaxes its
// neighbours and returns it. ok is false when no open node remains.
func (e *Engine[N]) Step() (n N, ok bool) {
	if e.open.Empty() {
		return n, false
	}
	n = e.open.Top()
	e.open.Pop(n)

	base := e.g.State(n).realCost
	e.g.Neighbours(n, func(to N, cost int64) {
		e.Push(to, base+cost, n)
	})

	return n, true
}

// Seen reports whether n was pushed during this search.
func (e *Engine[N]) Seen(n N) bool { return e.g.State(n).cycle == e.cycle }

// Settled reports whether n was pushed and popped during this search.
func (e *Engine[N]) Settled(n N) bool { return e.Seen(n) && !e.open.Contains(n) }

// Cost returns n's real cost in this search and whether it was seen at all.
func (e *Engine[N]) Cost(n N) (int64, bool) {
	if !e.Seen(n) {
		return 0, false
	}

	return e.g.State(n).realCost, true
}

// Backlink returns n's predecessor in this search; ok is false for roots and
// nodes not seen in this search.
func (e *Engine[N]) Backlink(n N) (N, bool) {
	var zero N
	if !e.Seen(n) {
		return zero, false
	}
	b := e.g.State(n).backlink

	return b, b != zero
}

// RouteTo walks backlinks from the settled node dest to its root and returns
// the route in root-to-dest order. Panics with ErrUnsettled otherwise.
func (e *Engine[N]) RouteTo(dest N) Route[N] {
	if !e.Settled(dest) {
		panic(fmt.Errorf("%w: cycle %d", ErrUnsettled, e.cycle))
	}

	var zero N
	route := Route[N]{Cost: e.g.State(dest).realCost}
	for n := dest; n != zero; n = e.g.State(n).backlink {
		route.Nodes = append(route.Nodes, n)
	}
	// Reverse into root-to-dest order.
	for i, j := 0, len(route.Nodes)-1; i < j; i, j = i+1, j-1 {
		route.Nodes[i], route.Nodes[j] = route.Nodes[j], route.Nodes[i]
	}

	return route
}

// FindRoute searches the cheapest route from start to end. A non-negative
// cutoff aborts the search with ok == false as soon as the node being settled
// costs more than cutoff, even before end is reached. Use Unbounded to search
// the whole component.
func FindRoute[N comparable](g Graph[N], c *Cycle, start, end N, cutoff int64, est Estimator[N]) (Route[N], bool) {
	e := New(g, c, est)
	e.PushRoot(start)
	for {
		n, ok := e.Step()
		if !ok {
			return Route[N]{}, false
		}
		if cutoff >= 0 && e.g.State(n).realCost > cutoff {
			return Route[N]{}, false
		}
		if n == end {
			return e.RouteTo(end), true
		}
	}
}

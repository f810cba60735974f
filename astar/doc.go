// Package astar implements a reusable A*-style search engine over any graph
// whose nodes embed their own per-search state.
//
// Overview:
//
//   - The engine is generic over the node type N. A Graph[N] exposes, for one
//     commodity class, the node's State[N] and its cost-weighted neighbours.
//     One node may therefore carry several independent State values (one per
//     class) and a search in one class never touches another class's fields.
//   - With ZeroEstimator the engine is plain Dijkstra (flood fills, nearest
//     warehouse, multi-source district seeding). With Geometric it is a
//     goal-directed A* search. The estimator must never overestimate the true
//     remaining cost; otherwise routes are no longer optimal.
//
// The cycle-stamp closed set:
//
//	Instead of clearing every node before each search, a Cycle counter is
//	advanced once per search and stamped into each node the search touches.
//	A node's State is valid for the current search only if its stamp equals
//	the current cycle value; anything else reads as "unseen". This makes the
//	setup cost of a search O(1) regardless of graph size.
//
//	IMPORTANT: the counter is finite. When it reaches its limit the Cycle calls
//	the reset callback supplied to NewCycle, which MUST reset the stamp of every
//	node that could ever be searched with that counter (State.Reset). Failing
//	to reset all nodes lets a stale stamp from an earlier search alias the new
//	cycle value and silently corrupts the closed set. Callers never observe the
//	wraparound; it is handled inside Cycle.Begin.
//
//	At most one search per Cycle may be in flight at any time: starting a new
//	Engine invalidates the state of every older engine sharing the counter.
//
// Operations:
//
//	Push(n, cost, backlink)
//	  - n unseen this cycle: initialise its state and queue it.
//	  - n open and cost <= its current cost: update cost/backlink, decrease-key.
//	  - n closed (settled) or offered at a higher cost: ignored.
//	Step()
//	  - pops the open node with the lowest cost+estimate, relaxes its
//	    neighbours through Push and returns it; ok == false once exhausted.
//	RouteTo(dest)
//	  - walks backlinks from a settled node to the root it was reached from.
//	    Calling it on a node that is still open (or unseen) is a programming
//	    error and panics with ErrUnsettled.
//	FindRoute(g, cycle, start, end, cutoff, estimator)
//	  - single-pair query that gives up as soon as the real cost of the node
//	    being settled exceeds a non-negative cutoff.
//
// Complexity:
//
//   - Time:  O((V + E) log V) per search, each node settled at most once.
//   - Space: O(V) for the open heap; node state lives in the nodes themselves.
//
// Thread safety:
//
//   - Not safe for concurrent use on the same Cycle. Independent Cycles (for
//     example one per commodity class or per session) may be used in parallel.
package astar

// File: view.go
// Role: per-Kind astar views over the network, route queries and
// connected components.

package core

import (
	"sort"

	"github.com/katalvlaran/wareflow/astar"
)

// kindView is the astar.Graph of one commodity class.
type kindView struct {
	kind Kind
}

func (v kindView) State(f *Flag) *astar.State[*Flag] { return &f.search[v.kind] }

func (v kindView) Neighbours(f *Flag, visit func(*Flag, int64)) { f.Neighbours(v.kind, visit) }

// View returns the search view of kind.
func (n *Network) View(kind Kind) astar.Graph[*Flag] { return kindView{kind: kind} }

// Cycle returns the search counter of kind. Every engine over View(kind) must
// be created with this counter.
func (n *Network) Cycle(kind Kind) *astar.Cycle { return n.cycles[kind] }

// Estimator returns the admissible geometric estimator toward goal.
func (n *Network) Estimator(goal *Flag) astar.Estimator[*Flag] {
	return astar.Geometric(goal, n.costPerField)
}

// NewSearch starts a search of kind. A nil estimator means Dijkstra.
func (n *Network) NewSearch(kind Kind, est astar.Estimator[*Flag]) *astar.Engine[*Flag] {
	return astar.New(n.View(kind), n.cycles[kind], est)
}

// FindRoute returns the cheapest route of kind from start to end, giving up
// once the settled cost exceeds a non-negative cutoff (astar.Unbounded for none).
func (n *Network) FindRoute(kind Kind, start, end *Flag, cutoff int64) (astar.Route[*Flag], bool) {
	return astar.FindRoute(n.View(kind), n.cycles[kind], start, end, cutoff, n.Estimator(end))
}

// Components partitions the live flags into connected components of kind.
// Components are ordered by their lowest flag serial; flags inside one
// component are ordered by serial too.
//
// Time:   O(F + R) plus sorting.
// Memory: O(F) for the seen set and output.
func (n *Network) Components(kind Kind) [][]*Flag {
	flags := n.Flags()
	seen := make(map[*Flag]bool, len(flags))
	var comps [][]*Flag

	for _, start := range flags {
		if seen[start] {
			continue
		}
		// BFS to collect the component.
		queue := []*Flag{start}
		seen[start] = true
		for qi := 0; qi < len(queue); qi++ {
			queue[qi].Neighbours(kind, func(to *Flag, _ int64) {
				if !seen[to] {
					seen[to] = true
					queue = append(queue, to)
				}
			})
		}
		sortBySerial(queue)
		comps = append(comps, queue)
	}

	return comps
}

func (n *Network) resetSearch(kind Kind) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, f := range n.flags {
		f.search[kind].Reset()
	}
}

func sortBySerial(flags []*Flag) {
	sort.Slice(flags, func(i, j int) bool { return flags[i].serial < flags[j].serial })
}

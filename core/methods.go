// File: methods.go
// Role: flag and road lifecycle on Network.
// Determinism:
//   - Serials are drawn from the shared SerialCounter in call order.
//   - Flags() and Roads() sort by serial ascending.

package core

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/wareflow/astar"
)

// AddFlag places a new flag for player at pos.
// Returns ErrPositionTaken if pos already holds a flag.
// Complexity: O(1).
func (n *Network) AddFlag(pos Coords, player Player) (*Flag, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if other, ok := n.byPos[pos]; ok {
		return nil, fmt.Errorf("%w: %v holds flag %d", ErrPositionTaken, pos, other.serial)
	}
	f := &Flag{
		serial: n.serials.Next(),
		pos:    pos,
		player: player,
		alive:  true,
	}
	for _, k := range Kinds {
		f.search[k] = astar.NewState[*Flag]()
	}
	n.flags[f.serial] = f
	n.byPos[pos] = f

	return f, nil
}

// RemoveFlag removes f and every road incident to it. The removed roads are
// returned (in creation order) so callers can schedule connectivity checks
// for the flags at their other ends.
// Returns ErrFlagNotFound if f is not part of the network.
// Complexity: O(deg(f) · deg(neighbour)).
func (n *Network) RemoveFlag(f *Flag) ([]*Road, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.hasFlagLocked(f) {
		return nil, ErrFlagNotFound
	}
	removed := make([]*Road, len(f.roads))
	copy(removed, f.roads)
	for _, r := range removed {
		n.unlinkLocked(r)
	}
	delete(n.flags, f.serial)
	delete(n.byPos, f.pos)
	f.alive = false

	return removed, nil
}

// AddRoad joins a and b with a road of the given cost.
// Returns ErrFlagNotFound, ErrSelfRoad, ErrForeignFlag, ErrRoadTooCheap or ErrNoKinds.
// Complexity: O(1).
func (n *Network) AddRoad(a, b *Flag, cost int64, opts ...RoadOption) (*Road, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	// 1) Endpoints must be live flags of this network.
	if !n.hasFlagLocked(a) || !n.hasFlagLocked(b) {
		return nil, ErrFlagNotFound
	}
	// 2) Shape constraints.
	if a == b {
		return nil, ErrSelfRoad
	}
	if a.player != b.player {
		return nil, fmt.Errorf("%w: players %d and %d", ErrForeignFlag, a.player, b.player)
	}
	// 3) Cost must respect the geometric lower bound.
	if bound := n.costPerField * int64(Distance(a.pos, b.pos)); cost < bound {
		return nil, fmt.Errorf("%w: cost %d < %d", ErrRoadTooCheap, cost, bound)
	}
	// 4) Canonical end order: lower serial first.
	if b.serial < a.serial {
		a, b = b, a
	}
	r := &Road{serial: n.serials.Next(), a: a, b: b, cost: cost, carries: CarriesAll}
	for _, opt := range opts {
		opt(r)
	}
	if r.carries&CarriesAll == 0 {
		return nil, ErrNoKinds
	}
	// 5) Register and link both ends.
	n.roads[r.serial] = r
	a.roads = append(a.roads, r)
	b.roads = append(b.roads, r)

	return r, nil
}

// RemoveRoad deletes r from the network.
// Returns ErrRoadNotFound if r is unknown.
func (n *Network) RemoveRoad(r *Road) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if r == nil || n.roads[r.serial] != r {
		return ErrRoadNotFound
	}
	n.unlinkLocked(r)

	return nil
}

// HasFlag reports whether f is a live flag of this network.
func (n *Network) HasFlag(f *Flag) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.hasFlagLocked(f)
}

// Flag returns the flag with the given serial.
func (n *Network) Flag(serial Serial) (*Flag, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	f, ok := n.flags[serial]

	return f, ok
}

// FlagAt returns the flag at pos.
func (n *Network) FlagAt(pos Coords) (*Flag, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	f, ok := n.byPos[pos]

	return f, ok
}

// Road returns the road with the given serial.
func (n *Network) Road(serial Serial) (*Road, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	r, ok := n.roads[serial]

	return r, ok
}

// RoadBetween returns the cheapest road joining a and b, if any.
func (n *Network) RoadBetween(a, b *Flag) (*Road, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var best *Road
	for _, r := range a.roads {
		if r.Other(a) == b && (best == nil || r.cost < best.cost) {
			best = r
		}
	}

	return best, best != nil
}

// Flags returns all live flags ordered by serial.
// Complexity: O(F log F).
func (n *Network) Flags() []*Flag {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*Flag, 0, len(n.flags))
	for _, f := range n.flags {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].serial < out[j].serial })

	return out
}

// Roads returns all roads ordered by serial.
func (n *Network) Roads() []*Road {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*Road, 0, len(n.roads))
	for _, r := range n.roads {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].serial < out[j].serial })

	return out
}

// FlagCount returns the number of live flags.
func (n *Network) FlagCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.flags)
}

// RoadCount returns the number of roads.
func (n *Network) RoadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.roads)
}

// Serials returns the counter the network draws serials from.
func (n *Network) Serials() *SerialCounter { return n.serials }

// CostPerField returns the geometric lower bound per field of distance.
func (n *Network) CostPerField() int64 { return n.costPerField }

func (n *Network) hasFlagLocked(f *Flag) bool {
	return f != nil && f.alive && n.flags[f.serial] == f
}

// unlinkLocked detaches r from both ends and the catalog.
func (n *Network) unlinkLocked(r *Road) {
	r.a.roads = dropRoad(r.a.roads, r)
	r.b.roads = dropRoad(r.b.roads, r)
	delete(n.roads, r.serial)
}

// dropRoad removes r preserving creation order.
func dropRoad(list []*Road, r *Road) []*Road {
	for i, x := range list {
		if x == r {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil

			return list[:len(list)-1]
		}
	}

	return list
}

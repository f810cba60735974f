// File: flag.go
// Role: Flag and Road accessors.

package core

import "github.com/katalvlaran/wareflow/astar"

// Serial returns the flag's identifier.
func (f *Flag) Serial() Serial { return f.serial }

// Position returns the flag's map coordinates.
func (f *Flag) Position() Coords { return f.pos }

// XY implements astar.Positioned.
func (f *Flag) XY() (int, int) { return f.pos.X, f.pos.Y }

// Player returns the owning player.
func (f *Flag) Player() Player { return f.player }

// Alive reports whether the flag is still part of its network.
func (f *Flag) Alive() bool { return f != nil && f.alive }

// Owner returns the economy the flag belongs to for kind (nil if none yet).
func (f *Flag) Owner(kind Kind) Owner { return f.owners[kind] }

// SetOwner records the economy the flag belongs to for kind.
func (f *Flag) SetOwner(kind Kind, o Owner) { f.owners[kind] = o }

// District returns the serial of the warehouse anchoring the flag's district
// in its economy of kind, or 0 when that economy has no warehouse.
func (f *Flag) District(kind Kind) Serial { return f.district[kind] }

// SetDistrict stores the district-center back-pointer for kind.
func (f *Flag) SetDistrict(kind Kind, center Serial) { f.district[kind] = center }

// Search returns the flag's transient search state for kind.
func (f *Flag) Search(kind Kind) *astar.State[*Flag] { return &f.search[kind] }

// Roads returns a copy of the flag's incident roads in creation order.
func (f *Flag) Roads() []*Road {
	out := make([]*Road, len(f.roads))
	copy(out, f.roads)

	return out
}

// Neighbours calls visit for every flag joined to f by a road carrying kind,
// in road creation order, with the road's cost.
func (f *Flag) Neighbours(kind Kind, visit func(to *Flag, cost int64)) {
	for _, r := range f.roads {
		if !r.carries.Has(kind) {
			continue
		}
		visit(r.Other(f), r.cost)
	}
}

// Serial returns the road's identifier.
func (r *Road) Serial() Serial { return r.serial }

// Ends returns the two flags joined by the road, lower serial first.
func (r *Road) Ends() (*Flag, *Flag) { return r.a, r.b }

// Other returns the end of r that is not f.
func (r *Road) Other(f *Flag) *Flag {
	if r.a == f {
		return r.b
	}

	return r.a
}

// Cost returns the abstract travel cost of the road.
func (r *Road) Cost() int64 { return r.cost }

// Carries reports whether the road carries kind.
func (r *Road) Carries(kind Kind) bool { return r.carries.Has(kind) }

// Waterway reports whether the road is a ship or ferry connection.
func (r *Road) Waterway() bool { return r.waterway }

// Package core provides the routing graph of the transport network: flags
// (the sole node type) joined by roads (cost-weighted edges), owned by one
// Network per session.
//
// The Network N = (F,R) supports:
//
//   - Flags at unique map coordinates, each owned by one player.
//   - Undirected roads with an abstract travel cost; parallel roads allowed.
//   - Per-road commodity-class filtering (WithCarries): a ferry may carry
//     wares but not workers, so the ware and worker views of one network can
//     partition the same flags into different connected components.
//   - Two independent transient search states per flag, one per Kind, so a
//     ware search never mutates worker search state (see package astar).
//   - One astar.Cycle per Kind whose wraparound callback resets every flag's
//     stamp for that Kind.
//   - Deterministic iteration: Flags() and Roads() are ordered by serial,
//     Neighbours visits roads in creation order.
//
// Why a dedicated graph instead of a generic string-keyed one?
//
//   - Search state lives in the node (no per-search maps), which the
//     cycle-stamp closed set depends on.
//   - Flags are referenced by pointer and identified by Serial, so economies,
//     requests and supplies can point at them directly.
//
// Configuration Options (NetworkOption):
//
//	– WithSerials(*SerialCounter)
//	    Share the session's serial counter (flags, roads and economies draw
//	    from one sequence). Default: a private counter.
//
//	– WithCostPerField(c)
//	    Minimum cost per field of Chebyshev distance. AddRoad rejects cheaper
//	    roads with ErrRoadTooCheap, which keeps the geometric estimator
//	    admissible. Default: 1.
//
//	– WithCycleLimit(n)
//	    Lower the search-cycle wraparound limit (tests).
//
// Core Methods:
//
//	AddFlag(pos Coords, player Player) (*Flag, error)   // O(1)
//	RemoveFlag(f *Flag) ([]*Road, error)                // O(deg(f))
//	AddRoad(a, b *Flag, cost int64, ...RoadOption) (*Road, error)
//	RemoveRoad(r *Road) error                            // O(deg)
//	Flag(serial) / FlagAt(pos) / Flags() / Roads()
//	View(kind) astar.Graph[*Flag]
//	FindRoute(kind, start, end, cutoff) (astar.Route[*Flag], bool)
//	Components(kind) [][]*Flag
//
// Thread safety:
//
//   - The flag and road catalogs are guarded by a sync.RWMutex, so read-only
//     queries (Flags, Roads, FlagAt) may run beside the simulation goroutine.
//   - Search state is NOT guarded: searches on one Kind must be serialized,
//     which the single-threaded simulation tick guarantees.
package core

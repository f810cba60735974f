package district

import (
	"sort"

	"github.com/katalvlaran/wareflow/core"
)

// Classify computes the districts of the economy of kind made of flags,
// anchored at the given warehouses. flags should be in serial order.
func Classify(net *core.Network, kind core.Kind, flags []*core.Flag, anchors []Anchor, opts ...Option) Result {
	cfg := Options{Threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&cfg)
	}

	res := Result{
		Center:  make(map[*core.Flag]core.Serial, len(flags)),
		Members: make(map[core.Serial][]core.Serial),
	}
	if len(flags) == 0 {
		return res
	}
	if len(anchors) == 0 {
		for _, f := range flags {
			res.Center[f] = 0
		}

		return res
	}

	// 1) Seed every warehouse at once, lowest serial first.
	sorted := make([]Anchor, len(anchors))
	copy(sorted, anchors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Serial < sorted[j].Serial })
	sorted = dedupe(sorted)

	seeds := make(map[*core.Flag]core.Serial, len(sorted))
	var shared []Link
	search := net.NewSearch(kind, nil)
	for _, a := range sorted {
		if owner, taken := seeds[a.Flag]; taken {
			shared = append(shared, Link{A: owner, B: a.Serial})
			continue
		}
		seeds[a.Flag] = a.Serial
		search.PushRoot(a.Flag)
	}

	// 2) Settle flags; each inherits the center of the flag it was reached from.
	cost := make(map[*core.Flag]int64, len(flags))
	for {
		f, ok := search.Step()
		if !ok {
			break
		}
		cost[f], _ = search.Cost(f)
		if center, root := seeds[f]; root {
			res.Center[f] = center
			continue
		}
		back, _ := search.Backlink(f)
		res.Center[f] = res.Center[back]
	}

	// 3) Record the cheapest crossing per warehouse pair.
	type pair struct{ a, b core.Serial }
	best := make(map[pair]int64)
	var order []pair
	for _, f := range flags {
		cf, ok := res.Center[f]
		if !ok {
			continue
		}
		f.Neighbours(kind, func(to *core.Flag, road int64) {
			ct, ok := res.Center[to]
			if !ok || ct == cf {
				return
			}
			p := pair{cf, ct}
			if p.b < p.a {
				p.a, p.b = p.b, p.a
			}
			c := cost[f] + road + cost[to]
			if old, seen := best[p]; !seen {
				best[p] = c
				order = append(order, p)
			} else if c < old {
				best[p] = c
			}
		})
	}
	for _, p := range order {
		res.Links = append(res.Links, Link{A: p.a, B: p.b, Cost: best[p]})
	}
	sort.Slice(res.Links, func(i, j int) bool {
		if res.Links[i].A != res.Links[j].A {
			return res.Links[i].A < res.Links[j].A
		}

		return res.Links[i].B < res.Links[j].B
	})

	// 4) Cluster close warehouses; the lowest serial represents its cluster.
	uf := newUnionFind(sorted)
	for _, l := range shared {
		uf.union(l.A, l.B)
	}
	for _, l := range res.Links {
		if l.Cost < cfg.Threshold {
			uf.union(l.A, l.B)
		}
	}
	for _, a := range sorted {
		rep := uf.find(a.Serial)
		res.Members[rep] = append(res.Members[rep], a.Serial)
	}
	res.Count = len(res.Members)

	// 5) Reassign every flag to its representative.
	for f, c := range res.Center {
		res.Center[f] = uf.find(c)
	}
	for _, f := range flags {
		if _, ok := res.Center[f]; !ok {
			res.Center[f] = 0
		}
	}

	return res
}

// unionFind keeps the lowest serial as the root of every set.
type unionFind struct {
	parent map[core.Serial]core.Serial
}

func newUnionFind(anchors []Anchor) *unionFind {
	uf := &unionFind{parent: make(map[core.Serial]core.Serial, len(anchors))}
	for _, a := range anchors {
		uf.parent[a.Serial] = a.Serial
	}

	return uf
}

func (uf *unionFind) find(x core.Serial) core.Serial {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}

	return root
}

func (uf *unionFind) union(a, b core.Serial) {
	ra, rb := uf.find(a), uf.find(b)
	switch {
	case ra == rb:
	case ra < rb:
		uf.parent[rb] = ra
	default:
		uf.parent[ra] = rb
	}
}

// dedupe drops repeated serials from a sorted anchor list.
func dedupe(anchors []Anchor) []Anchor {
	out := anchors[:0]
	for _, a := range anchors {
		if len(out) > 0 && a.Serial == out[len(out)-1].Serial {
			continue
		}
		out = append(out, a)
	}

	return out
}

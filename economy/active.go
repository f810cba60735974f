package economy

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/wareflow/astar"
	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/syncstream"
)

// handleActiveSupplies sends unclaimed units on the network to storage.
// A warehouse preferring the type wins, lowest stock first; otherwise the
// nearest warehouse with a normal policy. Don't-stock and remove policies
// never receive units.
func (e *Economy) handleActiveSupplies() {
	if len(e.warehouses) == 0 {
		return
	}

	type assignment struct {
		u    *unitSupply
		wh   Warehouse
		cost int64
	}
	var out []assignment
	for _, sup := range e.Supplies() {
		h, ok := sup.(unitHolder)
		if !ok {
			continue
		}
		u := h.unit()
		if u.gone || u.transfer != nil {
			continue
		}

		var prefer Warehouse
		preferStock := math.MaxInt
		normal := false
		for _, w := range e.warehouses {
			switch w.Policy(e.kind, u.typ) {
			case PolicyPrefer:
				if n := w.Supply().Stock(e.kind, u.typ); n < preferStock {
					prefer, preferStock = w, n
				}
			case PolicyNormal:
				normal = true
			}
		}

		var (
			wh   Warehouse
			cost int64
		)
		switch {
		case prefer != nil:
			route, found := e.s.net.FindRoute(e.kind, u.flag, prefer.BaseFlag(), astar.Unbounded)
			if found {
				wh, cost = prefer, route.Cost
			}
		case normal:
			wh, cost = e.closestWarehouse(u.flag, func(w Warehouse) bool {
				return w.Policy(e.kind, u.typ) == PolicyNormal
			})
		default:
			continue
		}
		if wh == nil {
			e.s.log.Error("no warehouse reachable for active supply",
				slog.Any("economy", e.serial),
				slog.Any("supply", u.serial),
				slog.String("type", e.s.cat.TypeName(e.kind, u.typ)))
			e.s.opts.recorder.Unreachable(e.kind)
			continue
		}
		out = append(out, assignment{u: u, wh: wh, cost: cost})
	}

	// Launch in a second phase so the supply list is stable while scanning.
	st := e.s.opts.stream
	st.Uint8(syncstream.MarkerHandleActiveSupplies)
	st.Uint32(uint32(len(out)))
	for _, a := range out {
		st.Uint32(uint32(a.u.serial))
		st.Uint32(uint32(a.wh.Serial()))
		e.sendToStorage(a.u, a.wh, a.cost)
	}
}

// closestWarehouse runs Dijkstra from start and returns the first accepted
// warehouse settled, lowest serial first on a shared flag.
func (e *Economy) closestWarehouse(start *core.Flag, accept func(Warehouse) bool) (Warehouse, int64) {
	at := make(map[*core.Flag][]Warehouse, len(e.warehouses))
	for _, w := range e.warehouses {
		if accept(w) {
			at[w.BaseFlag()] = append(at[w.BaseFlag()], w)
		}
	}
	if len(at) == 0 {
		return nil, 0
	}

	search := e.s.net.NewSearch(e.kind, nil)
	search.PushRoot(start)
	for {
		f, ok := search.Step()
		if !ok {
			return nil, 0
		}
		if ws := at[f]; len(ws) > 0 {
			cost, _ := search.Cost(f)

			return ws[0], cost
		}
	}
}

func (e *Economy) sendToStorage(u *unitSupply, wh Warehouse, cost int64) {
	s := e.s
	t := &Transfer{
		serial:   s.serials.Next(),
		s:        s,
		kind:     u.kind,
		typ:      u.typ,
		storage:  wh,
		supply:   u.outer,
		from:     u.flag.District(e.kind),
		cost:     cost,
		launched: s.now,
	}
	t.experience = u.claim(t)
	s.track(t)
	s.opts.recorder.TransferLaunched(e.kind, false)
}

// checkImports replaces transfers that cross districts with local ones when
// the request's own district can now serve it. At most one substitution per
// request per pass.
func (e *Economy) checkImports() {
	st := e.s.opts.stream
	st.Uint8(syncstream.MarkerCheckImports)
	for _, r := range e.Requests() {
		home := r.flag.District(e.kind)
		for _, t := range r.Transfers() {
			if t.supply.Flag().District(e.kind) == home {
				continue
			}
			sup, cost := e.findBestSupply(r, true)
			if sup == nil {
				break
			}
			_ = t.Cancel()
			nt := e.launch(r, sup, cost)
			st.Uint32(uint32(r.serial))
			st.Uint32(uint32(t.serial))
			st.Uint32(uint32(nt.serial))
			e.s.log.Debug("import replaced",
				slog.Any("request", r.serial),
				slog.Any("old", t.supply.Serial()),
				slog.Any("new", sup.Serial()))
			break
		}
	}
}

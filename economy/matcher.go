package economy

import (
	"log/slog"
	"sort"

	"github.com/katalvlaran/wareflow/astar"
	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/prioq"
	"github.com/katalvlaran/wareflow/syncstream"
)

// candidate orders supplies for routing. Distance is a heuristic; the key
// only has to be total and independent of container order.
type candidate struct {
	sup    Supply
	dist   int
	flag   core.Serial
	prov   Provider
	serial core.Serial
}

func sortCandidates(c []candidate) {
	sort.Slice(c, func(i, j int) bool {
		a, b := c[i], c[j]
		switch {
		case a.dist != b.dist:
			return a.dist < b.dist
		case a.flag != b.flag:
			return a.flag < b.flag
		case a.prov != b.prov:
			return a.prov < b.prov
		}

		return a.serial < b.serial
	})
}

// findBestSupply returns the supply with the cheapest route to r and that
// cost. Same-district supplies are tried first; other districts only when
// none of those is reachable and r allows imports. localOnly skips the second
// pass. A nil supply means no match this pass.
func (e *Economy) findBestSupply(r *Request, localOnly bool) (Supply, int64) {
	home := r.flag.District(e.kind)
	sup, cost, seen := e.bestSupply(r, func(s Supply) bool { return s.Flag().District(e.kind) == home })
	if sup == nil && r.imports && !localOnly {
		var more int
		sup, cost, more = e.bestSupply(r, func(s Supply) bool { return s.Flag().District(e.kind) != home })
		seen += more
	}
	if sup == nil && seen > 0 {
		e.s.log.Error("no reachable supply",
			slog.Any("economy", e.serial),
			slog.Any("request", r.serial),
			slog.String("type", e.s.cat.TypeName(e.kind, r.typ)),
			slog.Int("candidates", seen))
		e.s.opts.recorder.Unreachable(e.kind)
	}

	return sup, cost
}

// bestSupply routes every matching candidate, cutting each search off at the
// best cost found so far. It returns the number of candidates considered.
func (e *Economy) bestSupply(r *Request, keep func(Supply) bool) (Supply, int64, int) {
	var cands []candidate
	for _, s := range e.supplies {
		if s.ShipBorne() || !keep(s) || s.Available(e.kind, r.typ, r.minExperience) == 0 {
			continue
		}
		cands = append(cands, candidate{
			sup:    s,
			dist:   core.Distance(s.Flag().Position(), r.flag.Position()),
			flag:   s.Flag().Serial(),
			prov:   s.Provider(),
			serial: s.Serial(),
		})
	}
	sortCandidates(cands)

	var best Supply
	bestCost := int64(-1)
	for _, c := range cands {
		cutoff := astar.Unbounded
		if best != nil {
			if bestCost == 0 {
				break
			}
			cutoff = bestCost - 1
		}
		route, ok := e.s.net.FindRoute(e.kind, c.sup.Flag(), r.flag, cutoff)
		if !ok {
			continue
		}
		best, bestCost = c.sup, route.Cost
	}

	return best, bestCost, len(cands)
}

// pairing is one request/supply match waiting in the global queue.
type pairing struct {
	req     *Request
	sup     Supply
	cost    int64
	idle    bool
	urgency float64
	tie     uint64
	pos     int
}

// balanceRequestSupply matches every open request with its best supply.
// Pairings are committed most urgent first, zero-priority requests after all
// others; equal urgency falls back to the order pairings were offered in,
// which follows request registration.
// Each request gets at most one transfer per pass.
func (e *Economy) balanceRequestSupply() {
	st := e.s.opts.stream
	st.Uint8(syncstream.MarkerProcessRequests)
	now := e.s.now

	queue := prioq.New(func(a, b *pairing) bool {
		if a.idle != b.idle {
			return b.idle
		}
		if a.urgency != b.urgency {
			return a.urgency > b.urgency
		}

		return a.tie < b.tie
	}, func(p *pairing) *int { return &p.pos })

	var tie uint64
	wait := Duration(-1)
	offer := func(r *Request) {
		sup, cost := e.findBestSupply(r, false)
		if sup == nil {
			return
		}
		// Fetching from stock now would leave the unit idling at the
		// requester; come back when it is due.
		if !sup.Active() {
			idle := Duration(r.RequiredTime()-(now+Time(cost))) - e.s.opts.IdleSlack
			if idle > 0 {
				if wait < 0 || idle < wait {
					wait = idle
				}

				return
			}
		}
		tie++
		queue.Push(&pairing{
			req:     r,
			sup:     sup,
			cost:    cost,
			idle:    r.priority == 0,
			urgency: r.Urgency(now, cost),
			tie:     tie,
			pos:     prioq.NotQueued,
		})
	}
	for _, r := range e.Requests() {
		if r.Open() {
			offer(r)
		}
	}

	retry := false
	launched := uint32(0)
	for !queue.Empty() {
		p := queue.Top()
		queue.Pop(p)
		r := p.req
		if !r.Open() || r.economy != e {
			continue
		}
		// An earlier pop may have taken the unit.
		if !e.hasSupply(p.sup) || p.sup.Available(e.kind, r.typ, r.minExperience) == 0 {
			offer(r)
			continue
		}
		e.launch(r, p.sup, p.cost)
		launched++
		st.Uint32(uint32(r.serial))
		st.Uint32(uint32(p.sup.Serial()))
		st.Int64(p.cost)
		if r.Open() {
			retry = true
		}
	}
	st.Uint32(launched)

	delay := Duration(-1)
	if retry {
		delay = e.s.opts.RetryFloor
	}
	if wait >= 0 {
		if wait < e.s.opts.RetryFloor {
			wait = e.s.opts.RetryFloor
		}
		if delay < 0 || wait < delay {
			delay = wait
		}
	}
	if delay >= 0 {
		e.startTimer(delay)
	}
}

// launch starts a transfer of one unit from sup to r.
func (e *Economy) launch(r *Request, sup Supply, cost int64) *Transfer {
	s := e.s
	if h, ok := sup.(unitHolder); ok {
		if u := h.unit(); u.transfer != nil && u.transfer.storage != nil {
			u.transfer.abandon()
			u.transfer = nil
		}
	}
	t := &Transfer{
		serial:   s.serials.Next(),
		s:        s,
		kind:     e.kind,
		typ:      r.typ,
		request:  r,
		supply:   sup,
		from:     sup.Flag().District(e.kind),
		cost:     cost,
		launched: s.now,
	}
	t.imported = t.from != r.flag.District(e.kind)
	t.experience = sup.claim(t)
	r.transfers = append(r.transfers, t)
	s.track(t)
	s.opts.recorder.TransferLaunched(e.kind, t.imported)

	return t
}

package economy

import (
	"log/slog"

	"github.com/katalvlaran/wareflow/core"
)

// splitCheck records that a and b may have been disconnected.
type splitCheck struct {
	a, b *core.Flag
}

// checkSplit queues a connectivity check between a and b for the next
// balance. Removing several roads at once queues several checks that are
// resolved together.
func (e *Economy) checkSplit(a, b *core.Flag) {
	e.splits = append(e.splits, splitCheck{a: a, b: b})
	e.rearm()
}

// PendingSplits returns the number of queued connectivity checks.
func (e *Economy) PendingSplits() int { return len(e.splits) }

// checkSplits resolves queued checks, most recent first.
//
// A pair with both ends in e gets a search from one end biased toward the
// other. A pair with only one end left in e (the other removed, or already
// split off) gets a flood fill from that end instead. Pairs with neither end
// in e are stale.
func (e *Economy) checkSplits() {
	net := e.s.net
	for len(e.splits) > 0 {
		c := e.splits[len(e.splits)-1]
		e.splits = e.splits[:len(e.splits)-1]

		inA := c.a.Alive() && e.Contains(c.a)
		inB := c.b.Alive() && e.Contains(c.b)
		switch {
		case !inA && !inB:
			continue
		case inA != inB:
			start := c.a
			if inB {
				start = c.b
			}
			if reachable := e.flood(start); len(reachable) != len(e.flags) {
				e.split(reachable)
			}
			continue
		}

		// Reaching b proves connectivity; otherwise the settled set is one
		// connected part and leaves.
		search := net.NewSearch(e.kind, net.Estimator(c.b))
		search.PushRoot(c.a)
		var reachable []*core.Flag
		connected := false
		for {
			f, ok := search.Step()
			if !ok {
				break
			}
			if f == c.b {
				connected = true
				break
			}
			reachable = append(reachable, f)
		}
		if !connected {
			e.split(reachable)
		}
	}
}

// flood returns every flag reachable from start.
func (e *Economy) flood(start *core.Flag) []*core.Flag {
	search := e.s.net.NewSearch(e.kind, nil)
	search.PushRoot(start)
	var out []*core.Flag
	for {
		f, ok := search.Step()
		if !ok {
			return out
		}
		out = append(out, f)
	}
}

// split moves flags and everything on them into a new economy with a copy of
// e's targets.
func (e *Economy) split(flags []*core.Flag) *Economy {
	n := e.s.newEconomy(e.owner, e.kind)
	copy(n.targets, e.targets)

	moved := make(map[*core.Flag]bool, len(flags))
	for _, f := range flags {
		moved[f] = true
	}
	e.moveObjects(n, moved)
	for _, f := range flags {
		delete(e.flags, f.Serial())
		n.addFlag(f)
	}

	// Checks with no end left behind follow the moved part.
	keep := e.splits[:0]
	for _, c := range e.splits {
		inA, inB := moved[c.a] || !c.a.Alive(), moved[c.b] || !c.b.Alive()
		if inA && inB {
			n.splits = append(n.splits, c)
			continue
		}
		keep = append(keep, c)
	}
	e.splits = keep

	n.recalcDistricts()
	e.s.log.Debug("economy split",
		slog.Any("economy", e.serial), slog.Any("new", n.serial),
		slog.String("kind", e.kind.String()), slog.Int("moved", len(flags)))
	e.rearm()
	n.rearm()

	return n
}

// merge absorbs o into e. Targets keep whichever side changed last; pending
// checks carry over since o may not have been connected either.
func (e *Economy) merge(o *Economy) {
	for i := range e.targets {
		if e.targets[i].LastModified < o.targets[i].LastModified {
			e.targets[i] = o.targets[i]
		}
	}
	if o.observed && !e.observed {
		e.observed = true
		e.s.notify(Note{Action: NoteMerged, Economy: o.serial, To: e.serial})
	}

	all := make(map[*core.Flag]bool, len(o.flags))
	for _, f := range o.flags {
		all[f] = true
	}
	o.moveObjects(e, all)
	for _, f := range o.Flags() {
		delete(o.flags, f.Serial())
		e.addFlag(f)
	}
	e.splits = append(e.splits, o.splits...)
	o.splits = nil

	e.s.log.Debug("economy merged",
		slog.Any("economy", o.serial), slog.Any("into", e.serial),
		slog.String("kind", e.kind.String()))
	o.destroy()
	e.rearm()
}

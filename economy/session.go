package economy

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/prioq"
)

// command is a scheduled call, ordered by time then scheduling order.
type command struct {
	at  Time
	seq uint64
	pos int
	run func()
}

// Session owns the routing network and every economy on it. It is driven by
// one goroutine: all methods must be called from the simulation loop.
type Session struct {
	opts    Options
	cat     Catalog
	log     *slog.Logger
	net     *core.Network
	serials *core.SerialCounter

	now    Time
	queue  *prioq.Heap[*command]
	cmdSeq uint64
	reqSeq uint64

	economies  map[core.Serial]*Economy
	warehouses map[core.Serial]Warehouse
	requests   map[*Request]struct{}
	supplies   map[Supply]struct{}
	transfers  map[core.Serial]*Transfer
}

// NewSession creates an empty session over cat.
func NewSession(cat Catalog, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	serials := core.NewSerialCounter()
	s := &Session{
		opts:       o,
		cat:        cat,
		log:        o.logger,
		serials:    serials,
		net:        core.NewNetwork(append([]core.NetworkOption{core.WithSerials(serials)}, o.netOpts...)...),
		economies:  make(map[core.Serial]*Economy),
		warehouses: make(map[core.Serial]Warehouse),
		requests:   make(map[*Request]struct{}),
		supplies:   make(map[Supply]struct{}),
		transfers:  make(map[core.Serial]*Transfer),
	}
	s.queue = prioq.New(func(a, b *command) bool {
		if a.at != b.at {
			return a.at < b.at
		}

		return a.seq < b.seq
	}, func(c *command) *int { return &c.pos })

	return s
}

// Now returns the current game time.
func (s *Session) Now() Time { return s.now }

// Network returns the routing graph.
func (s *Session) Network() *core.Network { return s.net }

// Catalog returns the ware and worker types.
func (s *Session) Catalog() Catalog { return s.cat }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.log }

// Options returns the tuning the session was created with.
func (s *Session) Options() Options { return s.opts }

// Serials returns the counter every session object draws from.
func (s *Session) Serials() *core.SerialCounter { return s.serials }

// NextSerial hands out a serial for an object created by building logic.
func (s *Session) NextSerial() core.Serial { return s.serials.Next() }

// Pending returns the number of scheduled commands.
func (s *Session) Pending() int { return s.queue.Len() }

func (s *Session) schedule(at Time, run func()) {
	s.cmdSeq++
	s.queue.Push(&command{at: at, seq: s.cmdSeq, pos: prioq.NotQueued, run: run})
}

// Advance runs every command due up to and including to, then sets the
// clock to to.
func (s *Session) Advance(to Time) error {
	if to < s.now {
		return fmt.Errorf("%w: now %d, to %d", ErrTimeReversed, s.now, to)
	}
	for !s.queue.Empty() && s.queue.Top().at <= to {
		c := s.queue.Top()
		s.queue.Pop(c)
		s.now = c.at
		c.run()
	}
	s.now = to

	return nil
}

func (s *Session) newEconomy(owner core.Player, kind core.Kind) *Economy {
	e := &Economy{
		s:         s,
		serial:    s.serials.Next(),
		owner:     owner,
		kind:      kind,
		flags:     make(map[core.Serial]*core.Flag),
		supplyIdx: make(map[Supply]int),
		targets:   make([]TargetQuantity, s.cat.TypeCount(kind)),
	}
	for i := range e.targets {
		e.targets[i].Quantity = s.cat.DefaultTarget(kind, TypeIndex(i))
	}
	s.economies[e.serial] = e
	s.countEconomies(kind)

	return e
}

func (s *Session) notify(n Note) {
	if s.opts.observer != nil {
		s.opts.observer(n)
	}
}

func (s *Session) countEconomies(kind core.Kind) {
	n := 0
	for _, e := range s.economies {
		if e.kind == kind {
			n++
		}
	}
	s.opts.recorder.Economies(kind, n)
}

func (s *Session) track(t *Transfer) {
	s.transfers[t.serial] = t
	if s.opts.AutoDeliver {
		s.schedule(s.now+Time(t.cost), func() {
			if !t.done {
				_ = t.Complete()
			}
		})
	}
}

// Economy returns the live economy with the given serial.
func (s *Session) Economy(serial core.Serial) (*Economy, bool) {
	e, ok := s.economies[serial]

	return e, ok
}

// EconomyOf returns the economy of kind that f belongs to, or nil.
func (s *Session) EconomyOf(f *core.Flag, kind core.Kind) *Economy {
	if f == nil {
		return nil
	}
	e, _ := f.Owner(kind).(*Economy)

	return e
}

// Economies returns every live economy in serial order.
func (s *Session) Economies() []*Economy {
	out := make([]*Economy, 0, len(s.economies))
	for _, e := range s.economies {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].serial < out[j].serial })

	return out
}

// Transfers returns the pending transfers in serial order.
func (s *Session) Transfers() []*Transfer {
	out := make([]*Transfer, 0, len(s.transfers))
	for _, t := range s.transfers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].serial < out[j].serial })

	return out
}

// Warehouse returns the registered warehouse with the given serial.
func (s *Session) Warehouse(serial core.Serial) (Warehouse, bool) {
	w, ok := s.warehouses[serial]

	return w, ok
}

// AddFlag places a flag. It starts out in a fresh economy of each kind.
func (s *Session) AddFlag(pos core.Coords, player core.Player) (*core.Flag, error) {
	f, err := s.net.AddFlag(pos, player)
	if err != nil {
		return nil, err
	}
	for _, k := range core.Kinds {
		s.newEconomy(player, k).addFlag(f)
	}

	return f, nil
}

// RemoveFlag removes f with its roads. Requests, supplies and warehouses on
// f must be removed first.
func (s *Session) RemoveFlag(f *core.Flag) error {
	if !s.net.HasFlag(f) {
		return ErrUnknownFlag
	}
	for _, k := range core.Kinds {
		if e := s.EconomyOf(f, k); e != nil && e.busy(f) {
			return fmt.Errorf("%w: flag %d", ErrFlagInUse, f.Serial())
		}
	}
	roads, err := s.net.RemoveFlag(f)
	if err != nil {
		return err
	}
	for _, k := range core.Kinds {
		e := s.EconomyOf(f, k)
		if e == nil {
			panic(fmt.Errorf("%w: flag %d has no %s economy", ErrCorrupt, f.Serial(), k))
		}
		for _, r := range roads {
			if r.Carries(k) {
				e.checkSplit(f, r.Other(f))
			}
		}
		e.removeFlag(f)
	}

	return nil
}

// AddRoad connects a and b and merges their economies where the road
// carries a kind. The economy with more flags absorbs the other; on a tie the
// economy of the lower-serial end survives.
func (s *Session) AddRoad(a, b *core.Flag, cost int64, opts ...core.RoadOption) (*core.Road, error) {
	r, err := s.net.AddRoad(a, b, cost, opts...)
	if err != nil {
		return nil, err
	}
	a, b = r.Ends()
	for _, k := range core.Kinds {
		if !r.Carries(k) {
			continue
		}
		ea, eb := s.EconomyOf(a, k), s.EconomyOf(b, k)
		if ea == eb {
			continue
		}
		if ea.FlagCount() < eb.FlagCount() {
			ea, eb = eb, ea
		}
		ea.merge(eb)
	}

	return r, nil
}

// RemoveRoad deletes r. Splits are detected lazily at the next balance.
func (s *Session) RemoveRoad(r *core.Road) error {
	if r == nil {
		return core.ErrRoadNotFound
	}
	a, b := r.Ends()
	if err := s.net.RemoveRoad(r); err != nil {
		return err
	}
	for _, k := range core.Kinds {
		if r.Carries(k) {
			s.EconomyOf(a, k).checkSplit(a, b)
		}
	}

	return nil
}

// AddWarehouse registers w with the economies of its flag.
func (s *Session) AddWarehouse(w Warehouse) error {
	if _, dup := s.warehouses[w.Serial()]; dup {
		return fmt.Errorf("%w: warehouse %d", ErrDuplicate, w.Serial())
	}
	f := w.BaseFlag()
	if !s.net.HasFlag(f) {
		return ErrUnknownFlag
	}
	s.warehouses[w.Serial()] = w
	for _, k := range core.Kinds {
		e := s.EconomyOf(f, k)
		e.addWarehouse(w)
		e.rearm()
	}

	return nil
}

// RemoveWarehouse unregisters w. Units heading there for storage are
// reassigned at the next balance; units already sent out keep going.
func (s *Session) RemoveWarehouse(w Warehouse) error {
	if s.warehouses[w.Serial()] != w {
		return fmt.Errorf("%w: warehouse %d", ErrUnknownWarehouse, w.Serial())
	}
	delete(s.warehouses, w.Serial())
	for _, t := range s.Transfers() {
		if t.storage == w {
			_ = t.Cancel()
		}
	}
	for _, k := range core.Kinds {
		if e := s.EconomyOf(w.BaseFlag(), k); e != nil {
			e.removeWarehouse(w)
			e.rearm()
		}
	}

	return nil
}

// AddRequest registers r with the economy of its flag.
func (s *Session) AddRequest(r *Request) error {
	if r.registered || r.s != nil {
		return fmt.Errorf("%w: request %d", ErrDuplicate, r.serial)
	}
	if !s.net.HasFlag(r.flag) {
		return ErrUnknownFlag
	}
	if r.typ < 0 || int(r.typ) >= s.cat.TypeCount(r.kind) {
		return fmt.Errorf("%w: %s %d", ErrBadType, r.kind, r.typ)
	}
	if r.count <= 0 {
		return fmt.Errorf("%w: %d", ErrBadCount, r.count)
	}
	s.reqSeq++
	r.serial = s.serials.Next()
	r.seq = s.reqSeq
	r.s = s
	r.registered = true
	if !r.requiredSet {
		r.requiredTime = s.now
	}
	s.requests[r] = struct{}{}
	e := s.EconomyOf(r.flag, r.kind)
	e.addRequest(r)
	e.rearm()

	return nil
}

// RemoveRequest unregisters r and cancels its transfers. Removing a request
// that was already fulfilled is a no-op.
func (s *Session) RemoveRequest(r *Request) error {
	if r.s != s {
		return fmt.Errorf("%w: request %d", ErrUnknownRequest, r.serial)
	}
	if !r.registered {
		return nil
	}
	for _, t := range r.Transfers() {
		_ = t.Cancel()
	}
	r.economy.removeRequest(r)
	r.registered = false
	delete(s.requests, r)

	return nil
}

// AddSupply registers an idle worker or a loose item. Warehouse stock joins
// with its warehouse.
func (s *Session) AddSupply(sup Supply) error {
	h, ok := sup.(unitHolder)
	if !ok {
		return fmt.Errorf("%w: warehouse stock is registered by AddWarehouse", ErrUnknownSupply)
	}
	u := h.unit()
	if u.s != nil {
		return fmt.Errorf("%w: supply %d", ErrDuplicate, u.serial)
	}
	if !s.net.HasFlag(u.flag) {
		return ErrUnknownFlag
	}
	if u.typ < 0 || int(u.typ) >= s.cat.TypeCount(u.kind) {
		return fmt.Errorf("%w: %s %d", ErrBadType, u.kind, u.typ)
	}
	u.serial = s.serials.Next()
	u.s = s
	s.supplies[sup] = struct{}{}
	e := s.EconomyOf(u.flag, u.kind)
	e.addSupply(sup)
	e.rearm()

	return nil
}

// RemoveSupply unregisters an idle worker or item. A transfer moving it
// fails and its request reopens.
func (s *Session) RemoveSupply(sup Supply) error {
	if _, ok := s.supplies[sup]; !ok {
		return ErrUnknownSupply
	}
	u := sup.(unitHolder).unit()
	if u.transfer != nil {
		u.transfer.fail()
		u.transfer = nil
	}
	u.gone = true
	delete(s.supplies, sup)
	if u.econ != nil {
		e := u.econ
		e.removeSupply(sup)
		e.rearm()
	}

	return nil
}

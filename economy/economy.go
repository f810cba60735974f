package economy

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/wareflow/core"
)

// Warehouse is a building that stores wares and workers. The economy reads
// its policy and plans worker creation through it.
type Warehouse interface {
	Serial() core.Serial
	BaseFlag() *core.Flag
	Supply() *WarehouseSupply
	Policy(kind core.Kind, t TypeIndex) StockPolicy
	PlannedWorkers(t TypeIndex) int
	PlanWorkers(t TypeIndex, n int)
}

// Economy is a connected set of flags of one player and one Kind together
// with the warehouses, requests and supplies located on them.
type Economy struct {
	s      *Session
	serial core.Serial
	owner  core.Player
	kind   core.Kind

	flags      map[core.Serial]*core.Flag
	warehouses []Warehouse
	requests   []*Request
	supplies   []Supply
	supplyIdx  map[Supply]int
	targets    []TargetQuantity

	timer     uint32
	splits    []splitCheck
	districts int
	observed  bool
	dead      bool
}

// Serial identifies the economy; merges keep the serial of the absorbing side.
func (e *Economy) Serial() core.Serial { return e.serial }

// Owner returns the player whose flags the economy spans.
func (e *Economy) Owner() core.Player { return e.owner }

// Kind returns the commodity class the economy balances.
func (e *Economy) Kind() core.Kind { return e.kind }

// FlagCount returns the number of flags in the economy.
func (e *Economy) FlagCount() int { return len(e.flags) }

// Districts is the district count of the last balance.
func (e *Economy) Districts() int { return e.districts }

// TimerSerial is the serial the next balance firing must carry.
func (e *Economy) TimerSerial() uint32 { return e.timer }

// Alive reports whether the economy still exists.
func (e *Economy) Alive() bool { return !e.dead }

// Observed reports whether a viewer watches the economy.
func (e *Economy) Observed() bool { return e.observed }

// SetObserved marks the economy as watched; merges carry the mark over.
func (e *Economy) SetObserved(on bool) { e.observed = on }

// Flags returns the member flags in serial order.
func (e *Economy) Flags() []*core.Flag {
	out := make([]*core.Flag, 0, len(e.flags))
	for _, f := range e.flags {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Serial() < out[j].Serial() })

	return out
}

// Warehouses returns the warehouses in serial order.
func (e *Economy) Warehouses() []Warehouse {
	out := make([]Warehouse, len(e.warehouses))
	copy(out, e.warehouses)

	return out
}

// Requests returns the registered requests in registration order.
func (e *Economy) Requests() []*Request {
	out := make([]*Request, len(e.requests))
	copy(out, e.requests)

	return out
}

// Supplies returns the supplies in serial order.
func (e *Economy) Supplies() []Supply {
	out := make([]Supply, len(e.supplies))
	copy(out, e.supplies)
	sort.Slice(out, func(i, j int) bool { return out[i].Serial() < out[j].Serial() })

	return out
}

// Contains reports whether f belongs to e.
func (e *Economy) Contains(f *core.Flag) bool {
	o := f.Owner(e.kind)

	return o != nil && o == core.Owner(e)
}

// TargetQuantity returns the target of type t.
func (e *Economy) TargetQuantity(t TypeIndex) TargetQuantity {
	if t < 0 || int(t) >= len(e.targets) {
		return TargetQuantity{}
	}

	return e.targets[t]
}

// SetTargetQuantity changes the target of type t, stamping it with the
// current game time.
func (e *Economy) SetTargetQuantity(t TypeIndex, q int) error {
	if t < 0 || int(t) >= len(e.targets) {
		return ErrBadType
	}
	if q < 0 {
		return ErrBadCount
	}
	e.targets[t] = TargetQuantity{Quantity: q, LastModified: e.s.now}
	e.rearm()

	return nil
}

// Stock sums the warehouse stock of type t.
func (e *Economy) Stock(t TypeIndex) int {
	n := 0
	for _, w := range e.warehouses {
		n += w.Supply().Stock(e.kind, t)
	}

	return n
}

// NeedsType reports whether warehouse stock of t is below its target.
// A zero target is never needed.
func (e *Economy) NeedsType(t TypeIndex) bool {
	target := e.TargetQuantity(t).Quantity
	if target == 0 {
		return false
	}
	n := 0
	for _, w := range e.warehouses {
		n += w.Supply().Stock(e.kind, t)
		if n >= target {
			return false
		}
	}

	return true
}

// addFlag takes f into e.
func (e *Economy) addFlag(f *core.Flag) {
	e.flags[f.Serial()] = f
	f.SetOwner(e.kind, e)
}

// removeFlag releases f. An economy without flags is destroyed.
func (e *Economy) removeFlag(f *core.Flag) {
	if _, ok := e.flags[f.Serial()]; !ok {
		panic(fmt.Errorf("%w: flag %d in economy %d", ErrUnknownFlag, f.Serial(), e.serial))
	}
	delete(e.flags, f.Serial())
	if e.Contains(f) {
		f.SetOwner(e.kind, nil)
	}
	f.SetDistrict(e.kind, 0)
	if len(e.flags) == 0 {
		e.destroy()
	}
}

func (e *Economy) addWarehouse(w Warehouse) {
	i := sort.Search(len(e.warehouses), func(i int) bool { return e.warehouses[i].Serial() >= w.Serial() })
	e.warehouses = append(e.warehouses, nil)
	copy(e.warehouses[i+1:], e.warehouses[i:])
	e.warehouses[i] = w
	e.addSupply(w.Supply())
}

func (e *Economy) removeWarehouse(w Warehouse) {
	for i, x := range e.warehouses {
		if x == w {
			e.warehouses = append(e.warehouses[:i], e.warehouses[i+1:]...)
			break
		}
	}
	e.removeSupply(w.Supply())
}

// addRequest keeps e.requests in registration order.
func (e *Economy) addRequest(r *Request) {
	i := sort.Search(len(e.requests), func(i int) bool { return e.requests[i].seq >= r.seq })
	e.requests = append(e.requests, nil)
	copy(e.requests[i+1:], e.requests[i:])
	e.requests[i] = r
	r.economy = e
}

func (e *Economy) removeRequest(r *Request) {
	for i, x := range e.requests {
		if x == r {
			e.requests = append(e.requests[:i], e.requests[i+1:]...)

			return
		}
	}
}

func (e *Economy) addSupply(s Supply) {
	e.supplyIdx[s] = len(e.supplies)
	e.supplies = append(e.supplies, s)
	s.setEconomy(e.kind, e)
}

// removeSupply swaps the last supply into the freed slot.
func (e *Economy) removeSupply(s Supply) {
	i, ok := e.supplyIdx[s]
	if !ok {
		return
	}
	last := len(e.supplies) - 1
	if i != last {
		e.supplies[i] = e.supplies[last]
		e.supplyIdx[e.supplies[i]] = i
	}
	e.supplies = e.supplies[:last]
	delete(e.supplyIdx, s)
	s.setEconomy(e.kind, nil)
}

func (e *Economy) hasSupply(s Supply) bool {
	_, ok := e.supplyIdx[s]

	return ok
}

// busy reports whether anything of e is located at f.
func (e *Economy) busy(f *core.Flag) bool {
	for _, w := range e.warehouses {
		if w.BaseFlag() == f {
			return true
		}
	}
	for _, r := range e.requests {
		if r.flag == f {
			return true
		}
	}
	for _, s := range e.supplies {
		if s.Flag() == f {
			return true
		}
	}

	return false
}

// moveObjects hands everything located on moved over to to.
func (e *Economy) moveObjects(to *Economy, moved map[*core.Flag]bool) {
	for _, w := range e.Warehouses() {
		if moved[w.BaseFlag()] {
			e.removeWarehouse(w)
			to.addWarehouse(w)
		}
	}
	for _, r := range e.Requests() {
		if moved[r.flag] {
			e.removeRequest(r)
			to.addRequest(r)
		}
	}
	for _, s := range e.Supplies() {
		if _, wh := s.(*WarehouseSupply); wh {
			continue
		}
		if moved[s.Flag()] {
			e.removeSupply(s)
			to.addSupply(s)
		}
	}
}

// rearm schedules a balance after the request delay.
func (e *Economy) rearm() { e.startTimer(e.s.opts.RequestDelay) }

// startTimer schedules a balance carrying the current timer serial. Any
// balance run increments the serial, so only the first firing of a burst
// does work.
func (e *Economy) startTimer(d Duration) {
	if e.dead {
		return
	}
	timer := e.timer
	e.s.schedule(e.s.now+Time(d), func() { e.balance(timer) })
}

func (e *Economy) destroy() {
	e.dead = true
	e.splits = nil
	delete(e.s.economies, e.serial)
	e.s.notify(Note{Action: NoteDeleted, Economy: e.serial})
	e.s.countEconomies(e.kind)
}

// Rebalance arms the request timer, e.g. after a stock policy changed.
func (e *Economy) Rebalance() { e.rearm() }

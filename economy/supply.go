package economy

import (
	"fmt"

	"github.com/katalvlaran/wareflow/core"
)

// Supply offers units to requests. The variant set is closed:
// *WarehouseSupply, *IdleWorkerSupply and *ItemSupply.
type Supply interface {
	Serial() core.Serial
	Flag() *core.Flag
	Provider() Provider

	// Active supplies sit on the road network and must end up somewhere;
	// warehouse stock is inactive.
	Active() bool

	// ShipBorne supplies have no reliable ETA and are not matched.
	ShipBorne() bool

	// Available counts units of kind/t with at least minExperience.
	Available(kind core.Kind, t TypeIndex, minExperience int) int

	claim(t *Transfer) (experience int)
	release(t *Transfer)
	delivered(t *Transfer)
	setEconomy(kind core.Kind, e *Economy)
}

// WarehouseSupply is the stock of a warehouse. One WarehouseSupply serves the
// ware and the worker economy of its warehouse's flag.
type WarehouseSupply struct {
	wh    Warehouse
	stock [core.KindCount][]int
	econ  [core.KindCount]*Economy
}

// NewWarehouseSupply creates empty stock for w sized by cat.
func NewWarehouseSupply(w Warehouse, cat Catalog) *WarehouseSupply {
	ws := &WarehouseSupply{wh: w}
	for _, k := range core.Kinds {
		ws.stock[k] = make([]int, cat.TypeCount(k))
	}

	return ws
}

// Serial is the serial of the warehouse.
func (ws *WarehouseSupply) Serial() core.Serial { return ws.wh.Serial() }

// Flag is the base flag of the warehouse.
func (ws *WarehouseSupply) Flag() *core.Flag { return ws.wh.BaseFlag() }

// Provider is always ProviderWarehouse.
func (ws *WarehouseSupply) Provider() Provider { return ProviderWarehouse }

// Active is false: stock needs no storage.
func (ws *WarehouseSupply) Active() bool { return false }

// ShipBorne is false.
func (ws *WarehouseSupply) ShipBorne() bool { return false }

// Warehouse returns the building holding the stock.
func (ws *WarehouseSupply) Warehouse() Warehouse { return ws.wh }

// Stock returns the units of kind/t held.
func (ws *WarehouseSupply) Stock(kind core.Kind, t TypeIndex) int {
	if t < 0 || int(t) >= len(ws.stock[kind]) {
		return 0
	}

	return ws.stock[kind][t]
}

// Available counts stock. Stored workers are rookies, so any experience
// requirement excludes them.
func (ws *WarehouseSupply) Available(kind core.Kind, t TypeIndex, minExperience int) int {
	if minExperience > 0 {
		return 0
	}

	return ws.Stock(kind, t)
}

// AddStock changes the stock of kind/t by n, which may be negative, and
// re-arms the economies of the warehouse.
func (ws *WarehouseSupply) AddStock(kind core.Kind, t TypeIndex, n int) error {
	if t < 0 || int(t) >= len(ws.stock[kind]) {
		return fmt.Errorf("%w: %s %d", ErrBadType, kind, t)
	}
	if ws.stock[kind][t]+n < 0 {
		return fmt.Errorf("%w: stock %d, change %d", ErrBadCount, ws.stock[kind][t], n)
	}
	ws.stock[kind][t] += n
	ws.touch()

	return nil
}

func (ws *WarehouseSupply) touch() {
	for _, e := range ws.econ {
		if e != nil {
			e.rearm()
		}
	}
}

func (ws *WarehouseSupply) claim(t *Transfer) int {
	ws.stock[t.kind][t.typ]--

	return 0
}

func (ws *WarehouseSupply) release(t *Transfer) {
	if ws.econ[t.kind] == nil {
		return // warehouse is gone; the unit is lost with it
	}
	ws.stock[t.kind][t.typ]++
	ws.touch()
}

func (ws *WarehouseSupply) delivered(*Transfer) {}

func (ws *WarehouseSupply) setEconomy(kind core.Kind, e *Economy) { ws.econ[kind] = e }

func (ws *WarehouseSupply) canCreate(cost []BuildCost) bool {
	for _, c := range cost {
		if ws.Stock(c.Kind, c.Type) < c.Amount {
			return false
		}
	}

	return true
}

func (ws *WarehouseSupply) createWorker(t TypeIndex, cost []BuildCost) {
	for _, c := range cost {
		ws.stock[c.Kind][c.Type] -= c.Amount
	}
	ws.stock[core.KindWorker][t]++
	ws.touch()
}

// unitSupply is a single unit standing on a flag.
type unitSupply struct {
	serial     core.Serial
	flag       *core.Flag
	kind       core.Kind
	typ        TypeIndex
	experience int
	ship       bool

	outer    Supply
	s        *Session
	econ     *Economy
	transfer *Transfer
	gone     bool
}

// Serial is assigned on registration.
func (u *unitSupply) Serial() core.Serial { return u.serial }

// Flag returns where the unit stands.
func (u *unitSupply) Flag() *core.Flag { return u.flag }

// Active is true: a loose unit must end up somewhere.
func (u *unitSupply) Active() bool { return true }

// ShipBorne reports whether the unit travels by ship.
func (u *unitSupply) ShipBorne() bool { return u.ship }

// Kind returns the commodity class of the unit.
func (u *unitSupply) Kind() core.Kind { return u.kind }

// Type returns the ware or worker type of the unit.
func (u *unitSupply) Type() TypeIndex { return u.typ }

// Claimed reports whether a transfer is moving the unit.
func (u *unitSupply) Claimed() bool { return u.transfer != nil }

// Available counts the unit unless a request already claimed it. A unit on
// its way to storage stays available and is redirected when matched.
func (u *unitSupply) Available(kind core.Kind, t TypeIndex, minExperience int) int {
	if u.gone || (u.transfer != nil && u.transfer.request != nil) || kind != u.kind || t != u.typ || u.experience < minExperience {
		return 0
	}

	return 1
}

func (u *unitSupply) claim(t *Transfer) int {
	u.transfer = t

	return u.experience
}

func (u *unitSupply) release(*Transfer) {
	u.transfer = nil
	if u.econ != nil {
		u.econ.rearm()
	}
}

func (u *unitSupply) delivered(*Transfer) {
	u.transfer = nil
	u.gone = true
	if u.econ != nil {
		u.econ.removeSupply(u.outer)
	}
	if u.s != nil {
		delete(u.s.supplies, u.outer)
	}
}

func (u *unitSupply) setEconomy(kind core.Kind, e *Economy) {
	if kind == u.kind {
		u.econ = e
	}
}

func (u *unitSupply) unit() *unitSupply { return u }

// unitHolder is implemented by the single-unit variants.
type unitHolder interface {
	Supply
	unit() *unitSupply
}

// IdleWorkerSupply is a worker without a job standing on a flag.
type IdleWorkerSupply struct {
	unitSupply
}

// NewIdleWorker creates an unregistered idle worker of type t.
func NewIdleWorker(flag *core.Flag, t TypeIndex, experience int) *IdleWorkerSupply {
	w := &IdleWorkerSupply{unitSupply{flag: flag, kind: core.KindWorker, typ: t, experience: experience}}
	w.outer = w

	return w
}

// Provider is always ProviderIdleWorker.
func (w *IdleWorkerSupply) Provider() Provider { return ProviderIdleWorker }

// Experience returns the worker's experience.
func (w *IdleWorkerSupply) Experience() int { return w.experience }

// ItemSupply is a ware lying on a flag or carried on a ship.
type ItemSupply struct {
	unitSupply
}

// ItemOption configures an ItemSupply.
type ItemOption func(*ItemSupply)

// OnShip marks the item as ship-borne.
func OnShip() ItemOption {
	return func(i *ItemSupply) { i.ship = true }
}

// NewItem creates an unregistered ware item of type t at flag.
func NewItem(flag *core.Flag, t TypeIndex, opts ...ItemOption) *ItemSupply {
	i := &ItemSupply{unitSupply{flag: flag, kind: core.KindWare, typ: t}}
	i.outer = i
	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Provider is always ProviderItem.
func (i *ItemSupply) Provider() Provider { return ProviderItem }

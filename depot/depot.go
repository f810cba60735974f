package depot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/economy"
)

// ErrRemoved indicates an operation on a removed depot.
var ErrRemoved = errors.New("depot: depot has been removed")

// Depot is a warehouse at one flag.
type Depot struct {
	serial core.Serial
	flag   *core.Flag
	s      *economy.Session
	supply *economy.WarehouseSupply

	policies [core.KindCount]map[economy.TypeIndex]economy.StockPolicy
	plans    map[economy.TypeIndex]*plan
	removed  bool
}

// plan is the planned count of one worker type and the requests for its
// build costs.
type plan struct {
	count    int
	requests []*economy.Request
}

// Option configures a Depot before it is registered.
type Option func(*Depot) error

// WithStock starts the depot with n units of kind/t.
func WithStock(kind core.Kind, t economy.TypeIndex, n int) Option {
	return func(d *Depot) error { return d.supply.AddStock(kind, t, n) }
}

// WithPolicy sets the stock policy of kind/t.
func WithPolicy(kind core.Kind, t economy.TypeIndex, p economy.StockPolicy) Option {
	return func(d *Depot) error {
		d.policies[kind][t] = p

		return nil
	}
}

// New builds a depot at flag and registers it with s.
func New(s *economy.Session, flag *core.Flag, opts ...Option) (*Depot, error) {
	d := &Depot{
		serial: s.NextSerial(),
		flag:   flag,
		s:      s,
		plans:  make(map[economy.TypeIndex]*plan),
	}
	for _, k := range core.Kinds {
		d.policies[k] = make(map[economy.TypeIndex]economy.StockPolicy)
	}
	d.supply = economy.NewWarehouseSupply(d, s.Catalog())
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("depot: option: %w", err)
		}
	}
	if err := s.AddWarehouse(d); err != nil {
		return nil, err
	}

	return d, nil
}

// Serial identifies the depot.
func (d *Depot) Serial() core.Serial { return d.serial }

// BaseFlag returns the flag in front of the depot.
func (d *Depot) BaseFlag() *core.Flag { return d.flag }

// Supply returns the stock the economy draws from.
func (d *Depot) Supply() *economy.WarehouseSupply { return d.supply }

// Stock returns the units of kind/t held.
func (d *Depot) Stock(kind core.Kind, t economy.TypeIndex) int { return d.supply.Stock(kind, t) }

// Policy returns the stock policy of kind/t; PolicyNormal unless set.
func (d *Depot) Policy(kind core.Kind, t economy.TypeIndex) economy.StockPolicy {
	return d.policies[kind][t]
}

// SetPolicy changes the stock policy of kind/t and rebalances the economy.
func (d *Depot) SetPolicy(kind core.Kind, t economy.TypeIndex, p economy.StockPolicy) {
	d.policies[kind][t] = p
	if e := d.s.EconomyOf(d.flag, kind); e != nil {
		e.Rebalance()
	}
}

// PlannedWorkers returns how many workers of type t are planned.
func (d *Depot) PlannedWorkers(t economy.TypeIndex) int {
	if p, ok := d.plans[t]; ok {
		return p.count
	}

	return 0
}

// PlanWorkers sets the planned count of worker type t and re-issues the
// requests for its build costs, less what is already in stock.
func (d *Depot) PlanWorkers(t economy.TypeIndex, n int) {
	if d.removed || n < 0 || d.PlannedWorkers(t) == n {
		return
	}
	p, ok := d.plans[t]
	if !ok {
		p = &plan{}
		d.plans[t] = p
	}
	d.dropRequests(p)
	p.count = n
	if n == 0 {
		delete(d.plans, t)

		return
	}

	for _, c := range d.s.Catalog().BuildCost(t) {
		need := n*c.Amount - d.supply.Stock(c.Kind, c.Type)
		if need <= 0 {
			continue
		}
		r := economy.NewRequest(d.flag, c.Kind, c.Type, need, economy.WithDelivery(d.receive))
		if err := d.s.AddRequest(r); err != nil {
			d.s.Logger().Error("depot: plan request rejected", "depot", d.serial, "err", err)
			continue
		}
		p.requests = append(p.requests, r)
	}
}

// Remove unregisters the depot and drops its plans. Stock is lost.
func (d *Depot) Remove() error {
	if d.removed {
		return ErrRemoved
	}
	types := make([]economy.TypeIndex, 0, len(d.plans))
	for t := range d.plans {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		d.dropRequests(d.plans[t])
	}
	d.plans = make(map[economy.TypeIndex]*plan)
	d.removed = true

	return d.s.RemoveWarehouse(d)
}

func (d *Depot) receive(t *economy.Transfer) {
	_ = d.supply.AddStock(t.Kind(), t.Type(), 1)
}

func (d *Depot) dropRequests(p *plan) {
	for _, r := range p.requests {
		_ = d.s.RemoveRequest(r)
	}
	p.requests = nil
}

package scenario

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/wareflow/builder"
	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/depot"
	"github.com/katalvlaran/wareflow/economy"
)

// World is a built scenario: a live session plus name lookups.
type World struct {
	Session *economy.Session
	Catalog *economy.Table

	flags    map[string]*core.Flag
	depots   map[string]*depot.Depot
	requests map[string]*economy.Request
	supplies map[string]economy.Supply

	events []EventSpec
	next   int
}

// Build creates a session from doc. Objects are registered section by
// section in file order: flags, topologies, roads, warehouses, supplies,
// requests.
func Build(doc *Document, opts ...economy.Option) (*World, error) {
	cat, err := buildCatalog(doc.Catalog)
	if err != nil {
		return nil, err
	}
	w := &World{
		Session:  economy.NewSession(cat, opts...),
		Catalog:  cat,
		flags:    make(map[string]*core.Flag),
		depots:   make(map[string]*depot.Depot),
		requests: make(map[string]*economy.Request),
		supplies: make(map[string]economy.Supply),
	}

	// 1) Flags, generated topologies and roads.
	for _, fs := range doc.Flags {
		if _, dup := w.flags[fs.Name]; dup {
			return nil, fmt.Errorf("%w: flag %q", ErrDuplicateName, fs.Name)
		}
		f, err := w.Session.AddFlag(core.Coords{X: fs.X, Y: fs.Y}, core.Player(fs.Player))
		if err != nil {
			return nil, fmt.Errorf("flag %q: %w", fs.Name, err)
		}
		w.flags[fs.Name] = f
	}
	for i, ts := range doc.Topologies {
		if err := w.addTopology(i, ts); err != nil {
			return nil, err
		}
	}
	for _, rs := range doc.Roads {
		if err := w.addRoad(rs); err != nil {
			return nil, err
		}
	}

	// 2) Buildings and units.
	for _, ws := range doc.Warehouses {
		if err := w.addWarehouse(ws); err != nil {
			return nil, err
		}
	}
	for i, ss := range doc.Supplies {
		if err := w.addSupply(i, ss); err != nil {
			return nil, err
		}
	}
	for _, rs := range doc.Requests {
		if err := w.addRequest(rs); err != nil {
			return nil, err
		}
	}

	// 3) Events in time order, file order within one time.
	w.events = append(w.events, doc.Events...)
	sort.SliceStable(w.events, func(i, j int) bool { return w.events[i].At < w.events[j].At })

	return w, nil
}

// Run plays every event due up to until and advances the session to until.
// Commands scheduled for an event's time run before the event.
func (w *World) Run(until economy.Time) error {
	for w.next < len(w.events) && w.events[w.next].At <= until {
		ev := w.events[w.next]
		w.next++
		if err := w.Session.Advance(ev.At); err != nil {
			return err
		}
		if err := w.apply(ev); err != nil {
			return fmt.Errorf("event at %d: %w", ev.At, err)
		}
	}

	return w.Session.Advance(until)
}

// Flag returns the flag called name, or nil.
func (w *World) Flag(name string) *core.Flag { return w.flags[name] }

// Depot returns the warehouse called name, or nil.
func (w *World) Depot(name string) *depot.Depot { return w.depots[name] }

// Request returns the request called name, or nil.
func (w *World) Request(name string) *economy.Request { return w.requests[name] }

// Supply returns the named loose supply, or nil.
func (w *World) Supply(name string) economy.Supply { return w.supplies[name] }

// RequestNames returns the names of all requests, sorted.
func (w *World) RequestNames() []string { return sortedKeys(w.requests) }

func buildCatalog(cs CatalogSpec) (*economy.Table, error) {
	cat := &economy.Table{}
	for _, ts := range cs.Wares {
		if cat.Index(core.KindWare, ts.Name) >= 0 {
			return nil, fmt.Errorf("%w: ware %q", ErrDuplicateName, ts.Name)
		}
		cat.Wares = append(cat.Wares, economy.TypeSpec{Name: ts.Name, Target: ts.Target})
	}
	for _, ts := range cs.Workers {
		if cat.Index(core.KindWorker, ts.Name) >= 0 {
			return nil, fmt.Errorf("%w: worker %q", ErrDuplicateName, ts.Name)
		}
		cat.Workers = append(cat.Workers, economy.TypeSpec{Name: ts.Name, Target: ts.Target, Buildable: ts.Buildable})
	}
	// Costs may name workers defined later in the list.
	for i, ts := range cs.Workers {
		for _, c := range ts.Cost {
			kind, t, err := lookupType(cat, c.Ware, c.Worker)
			if err != nil {
				return nil, fmt.Errorf("worker %q cost: %w", ts.Name, err)
			}
			cat.Workers[i].Cost = append(cat.Workers[i].Cost, economy.BuildCost{Kind: kind, Type: t, Amount: c.Amount})
		}
	}

	return cat, nil
}

// lookupType resolves a ware or worker name; exactly one must be given.
func lookupType(cat *economy.Table, ware, worker string) (core.Kind, economy.TypeIndex, error) {
	kind, name := core.KindWare, ware
	switch {
	case ware != "" && worker != "", ware == "" && worker == "":
		return 0, 0, ErrTypeChoice
	case worker != "":
		kind, name = core.KindWorker, worker
	}
	t := cat.Index(kind, name)
	if t < 0 {
		return 0, 0, fmt.Errorf("%w: %s %q", ErrUnknownName, kind, name)
	}

	return kind, t, nil
}

func parsePolicy(s string) (economy.StockPolicy, error) {
	for _, p := range []economy.StockPolicy{economy.PolicyNormal, economy.PolicyPrefer, economy.PolicyDontStock, economy.PolicyRemove} {
		if p.String() == s {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: policy %q", ErrUnknownName, s)
}

func (w *World) flag(name string) (*core.Flag, error) {
	f, ok := w.flags[name]
	if !ok {
		return nil, fmt.Errorf("%w: flag %q", ErrUnknownName, name)
	}

	return f, nil
}

func (w *World) depot(name string) (*depot.Depot, error) {
	d, ok := w.depots[name]
	if !ok {
		return nil, fmt.Errorf("%w: warehouse %q", ErrUnknownName, name)
	}

	return d, nil
}

func (w *World) roadEnds(rs RoadSpec) (*core.Flag, *core.Flag, error) {
	a, err := w.flag(rs.From)
	if err != nil {
		return nil, nil, err
	}
	b, err := w.flag(rs.To)
	if err != nil {
		return nil, nil, err
	}

	return a, b, nil
}

func (w *World) addRoad(rs RoadSpec) error {
	a, b, err := w.roadEnds(rs)
	if err != nil {
		return err
	}
	opts := carries(rs.Carries)
	if rs.Waterway {
		opts = append(opts, core.AsWaterway())
	}
	if _, err := w.Session.AddRoad(a, b, rs.Cost, opts...); err != nil {
		return fmt.Errorf("road %s-%s: %w", rs.From, rs.To, err)
	}

	return nil
}

// carries converts kind names into a road option; none means every kind.
func carries(names []string) []core.RoadOption {
	if len(names) == 0 {
		return nil
	}
	var kinds []core.Kind
	for _, c := range names {
		if c == core.KindWorker.String() {
			kinds = append(kinds, core.KindWorker)
		} else {
			kinds = append(kinds, core.KindWare)
		}
	}

	return []core.RoadOption{core.WithCarries(core.MaskOf(kinds...))}
}

func (w *World) addTopology(i int, ts TopologySpec) error {
	ids := builder.SymbolNumberIDFn(ts.Prefix)
	if ts.IDs == "excel" {
		ids = func(idx int) string { return ts.Prefix + builder.ExcelColumnIDFn(idx) }
	}
	opts := []builder.BuilderOption{
		builder.WithIDScheme(ids),
		builder.WithOrigin(core.Coords{X: ts.X, Y: ts.Y}),
		builder.WithPlayer(core.Player(ts.Player)),
		builder.WithSeed(ts.Seed),
		builder.WithCostPerField(w.Session.Network().CostPerField()),
		builder.WithUniformSlack(ts.SlackMin, ts.SlackMax),
		builder.WithRoadOptions(carries(ts.Carries)...),
	}
	if ts.Spacing > 0 {
		opts = append(opts, builder.WithSpacing(ts.Spacing))
	}

	var (
		shape builder.Constructor
		n     int
	)
	switch {
	case ts.Path != nil:
		shape, n = builder.Path(ts.Path.N), ts.Path.N
	case ts.Star != nil:
		shape, n = builder.Star(ts.Star.N), ts.Star.N
	case ts.Grid != nil:
		shape, n = builder.Grid(ts.Grid.Rows, ts.Grid.Cols), ts.Grid.Rows*ts.Grid.Cols
	default:
		shape, n = builder.RandomSparse(ts.Sparse.N, ts.Sparse.P), ts.Sparse.N
	}
	// Names must be free before any flag is placed.
	for idx := 0; idx < n; idx++ {
		if _, dup := w.flags[ids(idx)]; dup {
			return fmt.Errorf("topologies[%d]: %w: flag %q", i, ErrDuplicateName, ids(idx))
		}
	}

	layout, err := builder.BuildNetwork(w.Session, opts, shape)
	if err != nil {
		return fmt.Errorf("topologies[%d]: %w", i, err)
	}
	for idx, f := range layout.Flags {
		w.flags[ids(idx)] = f
	}

	return nil
}

func (w *World) addWarehouse(ws WarehouseSpec) error {
	if _, dup := w.depots[ws.Name]; dup {
		return fmt.Errorf("%w: warehouse %q", ErrDuplicateName, ws.Name)
	}
	f, err := w.flag(ws.Flag)
	if err != nil {
		return err
	}

	var opts []depot.Option
	for _, kind := range core.Kinds {
		stock, policies := ws.Wares, ws.WarePolicies
		if kind == core.KindWorker {
			stock, policies = ws.Workers, ws.WorkerPolicies
		}
		for _, name := range sortedKeys(stock) {
			t := w.Catalog.Index(kind, name)
			if t < 0 {
				return fmt.Errorf("warehouse %q: %w: %s %q", ws.Name, ErrUnknownName, kind, name)
			}
			opts = append(opts, depot.WithStock(kind, t, stock[name]))
		}
		for _, name := range sortedKeys(policies) {
			t := w.Catalog.Index(kind, name)
			if t < 0 {
				return fmt.Errorf("warehouse %q: %w: %s %q", ws.Name, ErrUnknownName, kind, name)
			}
			p, err := parsePolicy(policies[name])
			if err != nil {
				return err
			}
			opts = append(opts, depot.WithPolicy(kind, t, p))
		}
	}

	d, err := depot.New(w.Session, f, opts...)
	if err != nil {
		return fmt.Errorf("warehouse %q: %w", ws.Name, err)
	}
	w.depots[ws.Name] = d

	return nil
}

func (w *World) addSupply(i int, ss SupplySpec) error {
	f, err := w.flag(ss.Flag)
	if err != nil {
		return err
	}
	kind, t, err := lookupType(w.Catalog, ss.Ware, ss.Worker)
	if err != nil {
		return fmt.Errorf("supplies[%d]: %w", i, err)
	}

	var sup economy.Supply
	if kind == core.KindWorker {
		sup = economy.NewIdleWorker(f, t, ss.Experience)
	} else {
		var opts []economy.ItemOption
		if ss.Ship {
			opts = append(opts, economy.OnShip())
		}
		sup = economy.NewItem(f, t, opts...)
	}
	if err := w.Session.AddSupply(sup); err != nil {
		return fmt.Errorf("supplies[%d]: %w", i, err)
	}
	if ss.Name != "" {
		if _, dup := w.supplies[ss.Name]; dup {
			return fmt.Errorf("%w: supply %q", ErrDuplicateName, ss.Name)
		}
		w.supplies[ss.Name] = sup
	}

	return nil
}

func (w *World) addRequest(rs RequestSpec) error {
	if _, dup := w.requests[rs.Name]; dup {
		return fmt.Errorf("%w: request %q", ErrDuplicateName, rs.Name)
	}
	f, err := w.flag(rs.Flag)
	if err != nil {
		return err
	}
	kind, t, err := lookupType(w.Catalog, rs.Ware, rs.Worker)
	if err != nil {
		return fmt.Errorf("request %q: %w", rs.Name, err)
	}

	opts := []economy.RequestOption{
		economy.WithRequiredInterval(economy.Duration(rs.Interval)),
		economy.WithMinExperience(rs.MinExperience),
		economy.WithImports(!rs.NoImports),
	}
	if rs.Priority != nil {
		opts = append(opts, economy.WithPriority(*rs.Priority))
	}
	if rs.RequiredTime != nil {
		opts = append(opts, economy.WithRequiredTime(*rs.RequiredTime))
	}
	r := economy.NewRequest(f, kind, t, rs.Count, opts...)
	if err := w.Session.AddRequest(r); err != nil {
		return fmt.Errorf("request %q: %w", rs.Name, err)
	}
	w.requests[rs.Name] = r

	return nil
}

func (w *World) apply(ev EventSpec) error {
	switch {
	case ev.AddStock != nil:
		d, err := w.depot(ev.AddStock.Warehouse)
		if err != nil {
			return err
		}
		kind, t, err := lookupType(w.Catalog, ev.AddStock.Ware, ev.AddStock.Worker)
		if err != nil {
			return err
		}
		return d.Supply().AddStock(kind, t, ev.AddStock.Amount)

	case ev.SetTarget != nil:
		f, err := w.flag(ev.SetTarget.Flag)
		if err != nil {
			return err
		}
		kind, t, err := lookupType(w.Catalog, ev.SetTarget.Ware, ev.SetTarget.Worker)
		if err != nil {
			return err
		}
		return w.Session.EconomyOf(f, kind).SetTargetQuantity(t, ev.SetTarget.Quantity)

	case ev.SetPolicy != nil:
		d, err := w.depot(ev.SetPolicy.Warehouse)
		if err != nil {
			return err
		}
		kind, t, err := lookupType(w.Catalog, ev.SetPolicy.Ware, ev.SetPolicy.Worker)
		if err != nil {
			return err
		}
		p, err := parsePolicy(ev.SetPolicy.Policy)
		if err != nil {
			return err
		}
		d.SetPolicy(kind, t, p)

	case ev.RemoveRoad != nil:
		a, b, err := w.roadEnds(*ev.RemoveRoad)
		if err != nil {
			return err
		}
		r, ok := w.Session.Network().RoadBetween(a, b)
		if !ok {
			return fmt.Errorf("%w: road %s-%s", ErrUnknownName, ev.RemoveRoad.From, ev.RemoveRoad.To)
		}
		return w.Session.RemoveRoad(r)

	case ev.AddRoad != nil:
		return w.addRoad(*ev.AddRoad)

	case ev.RemoveWarehouse != "":
		d, err := w.depot(ev.RemoveWarehouse)
		if err != nil {
			return err
		}
		return d.Remove()

	case ev.CancelRequest != "":
		r, ok := w.requests[ev.CancelRequest]
		if !ok {
			return fmt.Errorf("%w: request %q", ErrUnknownName, ev.CancelRequest)
		}
		return r.Cancel()

	case ev.CompleteAll:
		for _, t := range w.Session.Transfers() {
			if t.Done() {
				continue
			}
			if err := t.Complete(); err != nil {
				return err
			}
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

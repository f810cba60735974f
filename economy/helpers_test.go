package economy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/depot"
	"github.com/katalvlaran/wareflow/economy"
)

// Ware and worker types of testCatalog.
const (
	wareLog economy.TypeIndex = 0
	wareAxe economy.TypeIndex = 1

	workerCarrier    economy.TypeIndex = 0
	workerLumberjack economy.TypeIndex = 1
	workerSoldier    economy.TypeIndex = 2
)

func testCatalog() *economy.Table {
	return &economy.Table{
		Wares: []economy.TypeSpec{
			{Name: "log", Target: 5},
			{Name: "axe", Target: 0},
		},
		Workers: []economy.TypeSpec{
			{Name: "carrier", Buildable: true},
			{Name: "lumberjack", Buildable: true, Cost: []economy.BuildCost{
				{Kind: core.KindWorker, Type: workerCarrier, Amount: 1},
				{Kind: core.KindWare, Type: wareAxe, Amount: 1},
			}},
			{Name: "soldier"},
		},
	}
}

type fixture struct {
	t     *testing.T
	s     *economy.Session
	notes []economy.Note
}

func newFixture(t *testing.T, opts ...economy.Option) *fixture {
	t.Helper()
	fx := &fixture{t: t}
	opts = append([]economy.Option{economy.WithObserver(func(n economy.Note) { fx.notes = append(fx.notes, n) })}, opts...)
	fx.s = economy.NewSession(testCatalog(), opts...)

	return fx
}

func (fx *fixture) flag(x, y int) *core.Flag {
	fx.t.Helper()
	f, err := fx.s.AddFlag(core.Coords{X: x, Y: y}, 1)
	require.NoError(fx.t, err)

	return f
}

func (fx *fixture) road(a, b *core.Flag, cost int64, opts ...core.RoadOption) *core.Road {
	fx.t.Helper()
	r, err := fx.s.AddRoad(a, b, cost, opts...)
	require.NoError(fx.t, err)

	return r
}

// chain places n flags one field apart starting at (x, 0), joined by roads
// of cost 1.
func (fx *fixture) chain(x, n int) []*core.Flag {
	fx.t.Helper()
	flags := make([]*core.Flag, n)
	for i := range flags {
		flags[i] = fx.flag(x+i, 0)
		if i > 0 {
			fx.road(flags[i-1], flags[i], 1)
		}
	}

	return flags
}

func (fx *fixture) depot(f *core.Flag, opts ...depot.Option) *depot.Depot {
	fx.t.Helper()
	d, err := depot.New(fx.s, f, opts...)
	require.NoError(fx.t, err)

	return d
}

func (fx *fixture) request(f *core.Flag, kind core.Kind, t economy.TypeIndex, n int, opts ...economy.RequestOption) *economy.Request {
	fx.t.Helper()
	r := economy.NewRequest(f, kind, t, n, opts...)
	require.NoError(fx.t, fx.s.AddRequest(r))

	return r
}

func (fx *fixture) supply(s economy.Supply) {
	fx.t.Helper()
	require.NoError(fx.t, fx.s.AddSupply(s))
}

func (fx *fixture) advance(to economy.Time) {
	fx.t.Helper()
	require.NoError(fx.t, fx.s.Advance(to))
}

func (fx *fixture) wares(f *core.Flag) *economy.Economy {
	return fx.s.EconomyOf(f, core.KindWare)
}

func (fx *fixture) workers(f *core.Flag) *economy.Economy {
	return fx.s.EconomyOf(f, core.KindWorker)
}

func (fx *fixture) notesFor(serial core.Serial) []economy.Note {
	var out []economy.Note
	for _, n := range fx.notes {
		if n.Economy == serial {
			out = append(out, n)
		}
	}

	return out
}

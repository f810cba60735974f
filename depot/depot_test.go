package depot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/depot"
	"github.com/katalvlaran/wareflow/economy"
)

const (
	wareLog    economy.TypeIndex = 0
	wareAxe    economy.TypeIndex = 1
	carrier    economy.TypeIndex = 0
	lumberjack economy.TypeIndex = 1
)

func newSession(t *testing.T) (*economy.Session, *core.Flag) {
	t.Helper()
	s := economy.NewSession(&economy.Table{
		Wares: []economy.TypeSpec{{Name: "log"}, {Name: "axe"}},
		Workers: []economy.TypeSpec{
			{Name: "carrier", Buildable: true},
			{Name: "lumberjack", Buildable: true, Cost: []economy.BuildCost{
				{Kind: core.KindWorker, Type: carrier, Amount: 1},
				{Kind: core.KindWare, Type: wareAxe, Amount: 2},
			}},
		},
	})
	f, err := s.AddFlag(core.Coords{}, 1)
	require.NoError(t, err)

	return s, f
}

func TestNew(t *testing.T) {
	s, f := newSession(t)
	d, err := depot.New(s, f,
		depot.WithStock(core.KindWare, wareLog, 4),
		depot.WithPolicy(core.KindWare, wareAxe, economy.PolicyPrefer))
	require.NoError(t, err)

	assert.Same(t, f, d.BaseFlag())
	assert.Equal(t, 4, d.Stock(core.KindWare, wareLog))
	assert.Equal(t, economy.PolicyPrefer, d.Policy(core.KindWare, wareAxe))
	assert.Equal(t, economy.PolicyNormal, d.Policy(core.KindWare, wareLog))
	got, ok := s.Warehouse(d.Serial())
	require.True(t, ok)
	assert.Same(t, d, got)
	assert.Equal(t, 4, s.EconomyOf(f, core.KindWare).Stock(wareLog))
}

func TestNew_Errors(t *testing.T) {
	s, f := newSession(t)
	_, err := depot.New(s, f, depot.WithStock(core.KindWare, 7, 1))
	assert.ErrorIs(t, err, economy.ErrBadType)
	_, err = depot.New(s, f, depot.WithStock(core.KindWare, wareLog, -1))
	assert.ErrorIs(t, err, economy.ErrBadCount)

	require.NoError(t, s.RemoveFlag(f))
	_, err = depot.New(s, f)
	assert.ErrorIs(t, err, economy.ErrUnknownFlag)
}

func TestPlanWorkers(t *testing.T) {
	s, f := newSession(t)
	d, err := depot.New(s, f, depot.WithStock(core.KindWare, wareAxe, 1))
	require.NoError(t, err)

	d.PlanWorkers(lumberjack, 2)
	assert.Equal(t, 2, d.PlannedWorkers(lumberjack))
	workers := s.EconomyOf(f, core.KindWorker).Requests()
	wares := s.EconomyOf(f, core.KindWare).Requests()
	require.Len(t, workers, 1)
	require.Len(t, wares, 1)
	assert.Equal(t, carrier, workers[0].Type())
	assert.Equal(t, 2, workers[0].Count())
	assert.Equal(t, wareAxe, wares[0].Type())
	assert.Equal(t, 3, wares[0].Count(), "two workers need four axes, one is in stock")

	d.PlanWorkers(lumberjack, 1)
	wares = s.EconomyOf(f, core.KindWare).Requests()
	require.Len(t, wares, 1)
	assert.Equal(t, 1, wares[0].Count())

	d.PlanWorkers(lumberjack, 0)
	assert.Equal(t, 0, d.PlannedWorkers(lumberjack))
	assert.Empty(t, s.EconomyOf(f, core.KindWare).Requests())
	assert.Empty(t, s.EconomyOf(f, core.KindWorker).Requests())
}

func TestPlanWorkers_DeliveryStocks(t *testing.T) {
	s, f := newSession(t)
	d, err := depot.New(s, f)
	require.NoError(t, err)
	d.PlanWorkers(lumberjack, 1)

	item := economy.NewItem(f, wareAxe)
	require.NoError(t, s.AddSupply(item))
	require.NoError(t, s.Advance(200))

	var axes []*economy.Transfer
	for _, tr := range s.Transfers() {
		if tr.Kind() == core.KindWare {
			axes = append(axes, tr)
		}
	}
	require.Len(t, axes, 1)
	assert.Same(t, item, axes[0].Supply())
	require.NoError(t, axes[0].Complete())
	assert.Equal(t, 1, d.Stock(core.KindWare, wareAxe))
}

func TestSetPolicy(t *testing.T) {
	s, f := newSession(t)
	d, err := depot.New(s, f)
	require.NoError(t, err)

	require.NoError(t, s.Advance(1000))
	require.Zero(t, s.Pending())

	d.SetPolicy(core.KindWare, wareLog, economy.PolicyDontStock)
	assert.Equal(t, economy.PolicyDontStock, d.Policy(core.KindWare, wareLog))
	assert.Equal(t, 1, s.Pending(), "policy change arms the balance timer")
}

func TestRemove(t *testing.T) {
	s, f := newSession(t)
	d, err := depot.New(s, f)
	require.NoError(t, err)
	d.PlanWorkers(lumberjack, 1)

	require.NoError(t, d.Remove())
	_, ok := s.Warehouse(d.Serial())
	assert.False(t, ok)
	assert.Empty(t, s.EconomyOf(f, core.KindWare).Requests())
	assert.ErrorIs(t, d.Remove(), depot.ErrRemoved)

	d.PlanWorkers(lumberjack, 3)
	assert.Equal(t, 0, d.PlannedWorkers(lumberjack))
	require.NoError(t, s.RemoveFlag(f))
}

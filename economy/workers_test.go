package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/depot"
	"github.com/katalvlaran/wareflow/economy"
)

func TestWorkers_CreatedFromStock(t *testing.T) {
	fx := newFixture(t)
	w, site := fx.flag(0, 0), fx.flag(10, 0)
	fx.road(w, site, 10)
	d := fx.depot(w,
		depot.WithStock(core.KindWorker, workerCarrier, 2),
		depot.WithStock(core.KindWare, wareAxe, 2))
	r := fx.request(site, core.KindWorker, workerLumberjack, 1)

	fx.advance(200)
	require.Len(t, r.Transfers(), 1)
	assert.Same(t, d.Supply(), r.Transfers()[0].Supply())
	assert.Equal(t, 1, d.Stock(core.KindWorker, workerCarrier))
	assert.Equal(t, 1, d.Stock(core.KindWare, wareAxe))
	assert.Equal(t, 0, d.Stock(core.KindWorker, workerLumberjack), "the new worker is on its way")
	assert.Equal(t, 0, d.PlannedWorkers(workerLumberjack))
}

func TestWorkers_PlannedWhenIngredientMissing(t *testing.T) {
	fx := newFixture(t)
	w, site := fx.flag(0, 0), fx.flag(10, 0)
	fx.road(w, site, 10)
	d := fx.depot(w, depot.WithStock(core.KindWorker, workerCarrier, 1))
	fx.request(site, core.KindWorker, workerLumberjack, 3)

	fx.advance(200)
	// Axes have a zero target, so one worker is planned to pull one in.
	assert.Equal(t, 1, d.PlannedWorkers(workerLumberjack))
	reqs := fx.wares(w).Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, wareAxe, reqs[0].Type())
	assert.Equal(t, 1, reqs[0].Count())
	assert.Same(t, w, reqs[0].Flag())
	assert.Equal(t, 1, d.Stock(core.KindWorker, workerCarrier))
}

func TestWorkers_ExperiencedDemandIgnored(t *testing.T) {
	fx := newFixture(t)
	w, site := fx.flag(0, 0), fx.flag(10, 0)
	fx.road(w, site, 10)
	d := fx.depot(w,
		depot.WithStock(core.KindWorker, workerCarrier, 1),
		depot.WithStock(core.KindWare, wareAxe, 1))
	r := fx.request(site, core.KindWorker, workerLumberjack, 1, economy.WithMinExperience(1))

	fx.advance(1000)
	assert.Empty(t, r.Transfers())
	assert.Equal(t, 1, d.Stock(core.KindWorker, workerCarrier))
	assert.Equal(t, 1, d.Stock(core.KindWare, wareAxe))
	assert.Equal(t, 0, d.PlannedWorkers(workerLumberjack))
}

func TestWorkers_IdleWorkerBeatsCreation(t *testing.T) {
	fx := newFixture(t)
	w, site, m := fx.flag(0, 0), fx.flag(10, 0), fx.flag(20, 0)
	fx.road(w, site, 10)
	fx.road(site, m, 10)
	d := fx.depot(w,
		depot.WithStock(core.KindWorker, workerCarrier, 1),
		depot.WithStock(core.KindWare, wareAxe, 1))
	idle := economy.NewIdleWorker(m, workerLumberjack, 0)
	fx.supply(idle)
	r := fx.request(site, core.KindWorker, workerLumberjack, 1)

	fx.advance(200)
	require.Len(t, r.Transfers(), 1)
	assert.Same(t, idle, r.Transfers()[0].Supply())
	assert.Equal(t, 1, d.Stock(core.KindWare, wareAxe))
}

// TestWorkers_PlanCompletes runs the full loop: one lumberjack is made from
// stock, the second is planned, its axe arrives as a stray item and the plan
// is fulfilled.
func TestWorkers_PlanCompletes(t *testing.T) {
	fx := newFixture(t, economy.WithAutoDelivery())
	w, m, site := fx.flag(0, 0), fx.flag(5, 0), fx.flag(10, 0)
	fx.road(w, m, 5)
	fx.road(m, site, 5)
	d := fx.depot(w,
		depot.WithStock(core.KindWorker, workerCarrier, 1),
		depot.WithStock(core.KindWare, wareAxe, 1))
	fx.supply(economy.NewItem(m, wareAxe))
	r := fx.request(site, core.KindWorker, workerLumberjack, 2)

	fx.advance(1000)
	assert.Equal(t, 2, r.Delivered())
	assert.False(t, r.Registered())
	assert.Equal(t, 0, d.PlannedWorkers(workerLumberjack))
	assert.Equal(t, 0, d.Stock(core.KindWare, wareAxe))
	assert.Empty(t, fx.s.Transfers())
	assert.NoError(t, fx.s.Validate())
}

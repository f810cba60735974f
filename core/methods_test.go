package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/core"
)

func mustFlag(t *testing.T, n *core.Network, x, y int) *core.Flag {
	t.Helper()
	f, err := n.AddFlag(core.Coords{X: x, Y: y}, 1)
	require.NoError(t, err)

	return f
}

func mustRoad(t *testing.T, n *core.Network, a, b *core.Flag, cost int64, opts ...core.RoadOption) *core.Road {
	t.Helper()
	r, err := n.AddRoad(a, b, cost, opts...)
	require.NoError(t, err)

	return r
}

func TestNetwork_FlagLifecycle(t *testing.T) {
	n := core.NewNetwork()
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 3, 0)
	assert.Equal(t, core.Serial(1), a.Serial())
	assert.Equal(t, core.Serial(2), b.Serial())
	assert.True(t, a.Alive())

	_, err := n.AddFlag(core.Coords{X: 3, Y: 0}, 1)
	assert.ErrorIs(t, err, core.ErrPositionTaken)

	got, ok := n.FlagAt(core.Coords{X: 3, Y: 0})
	require.True(t, ok)
	assert.Same(t, b, got)

	r := mustRoad(t, n, b, a, 5)
	x, y := r.Ends()
	assert.Same(t, a, x, "lower serial first")
	assert.Same(t, b, y)

	removed, err := n.RemoveFlag(a)
	require.NoError(t, err)
	assert.Equal(t, []*core.Road{r}, removed)
	assert.False(t, a.Alive())
	assert.Empty(t, b.Roads())
	assert.Equal(t, 0, n.RoadCount())

	_, err = n.RemoveFlag(a)
	assert.ErrorIs(t, err, core.ErrFlagNotFound)
}

func TestNetwork_AddRoadValidation(t *testing.T) {
	n := core.NewNetwork(core.WithCostPerField(2))
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 4, 1)
	c, err := n.AddFlag(core.Coords{X: 1, Y: 1}, 2)
	require.NoError(t, err)

	_, err = n.AddRoad(a, a, 10)
	assert.ErrorIs(t, err, core.ErrSelfRoad)

	_, err = n.AddRoad(a, c, 10)
	assert.ErrorIs(t, err, core.ErrForeignFlag)

	_, err = n.AddRoad(a, b, 7) // bound is 2*4
	assert.ErrorIs(t, err, core.ErrRoadTooCheap)

	_, err = n.AddRoad(a, b, 8, core.WithCarries(0))
	assert.ErrorIs(t, err, core.ErrNoKinds)

	_, err = n.AddRoad(a, b, 8)
	assert.NoError(t, err)

	assert.ErrorIs(t, n.RemoveRoad(nil), core.ErrRoadNotFound)
}

func TestNetwork_SharedSerials(t *testing.T) {
	serials := core.NewSerialCounter()
	serials.Reset(100)
	n := core.NewNetwork(core.WithSerials(serials))
	a := mustFlag(t, n, 0, 0)
	assert.Equal(t, core.Serial(101), a.Serial())
	assert.Equal(t, core.Serial(101), serials.Last())
}

func TestNetwork_ParallelRoads(t *testing.T) {
	n := core.NewNetwork()
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 1, 0)
	slow := mustRoad(t, n, a, b, 9)
	fast := mustRoad(t, n, a, b, 4)

	best, ok := n.RoadBetween(a, b)
	require.True(t, ok)
	assert.Same(t, fast, best)

	require.NoError(t, n.RemoveRoad(fast))
	best, _ = n.RoadBetween(b, a)
	assert.Same(t, slow, best)
	assert.Equal(t, []*core.Road{slow}, n.Roads())
}

func TestKindMask(t *testing.T) {
	m := core.MaskOf(core.KindWare)
	assert.True(t, m.Has(core.KindWare))
	assert.False(t, m.Has(core.KindWorker))
	assert.True(t, core.CarriesAll.Has(core.KindWorker))
	assert.Equal(t, "worker", core.KindWorker.String())
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 4, core.Distance(core.Coords{X: 0, Y: 0}, core.Coords{X: -4, Y: 3}))
	assert.Equal(t, 0, core.Distance(core.Coords{X: 2, Y: 2}, core.Coords{X: 2, Y: 2}))
}

package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/astar"
	"github.com/katalvlaran/wareflow/core"
)

// ferryNetwork builds two road islands joined by a wares-only ferry:
//
//	a─b ~~ferry~~ c─d
func ferryNetwork(t *testing.T) (*core.Network, []*core.Flag) {
	t.Helper()
	n := core.NewNetwork()
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 2, 0)
	c := mustFlag(t, n, 6, 0)
	d := mustFlag(t, n, 8, 0)
	mustRoad(t, n, a, b, 2)
	mustRoad(t, n, b, c, 10, core.WithCarries(core.MaskOf(core.KindWare)), core.AsWaterway())
	mustRoad(t, n, c, d, 2)

	return n, []*core.Flag{a, b, c, d}
}

func TestComponents_PerKind(t *testing.T) {
	n, f := ferryNetwork(t)

	wares := n.Components(core.KindWare)
	require.Len(t, wares, 1)
	assert.Equal(t, f, wares[0])

	workers := n.Components(core.KindWorker)
	require.Len(t, workers, 2)
	assert.Equal(t, []*core.Flag{f[0], f[1]}, workers[0])
	assert.Equal(t, []*core.Flag{f[2], f[3]}, workers[1])
}

func TestFindRoute_PerKind(t *testing.T) {
	n, f := ferryNetwork(t)

	r, ok := n.FindRoute(core.KindWare, f[0], f[3], astar.Unbounded)
	require.True(t, ok)
	assert.Equal(t, int64(14), r.Cost)
	assert.Equal(t, f, r.Nodes)

	_, ok = n.FindRoute(core.KindWorker, f[0], f[3], astar.Unbounded)
	assert.False(t, ok)

	_, ok = n.FindRoute(core.KindWare, f[0], f[3], 13)
	assert.False(t, ok, "cutoff below true cost must fail")
	_, ok = n.FindRoute(core.KindWare, f[0], f[3], 14)
	assert.True(t, ok, "cutoff equal to true cost must succeed")
}

func TestCycleWraparound_ResetsEveryFlag(t *testing.T) {
	n := core.NewNetwork(core.WithCycleLimit(2))
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 1, 0)
	c := mustFlag(t, n, 2, 0)
	mustRoad(t, n, a, b, 1)
	mustRoad(t, n, b, c, 1)

	for i := 0; i < 5; i++ {
		r, ok := n.FindRoute(core.KindWare, a, c, astar.Unbounded)
		require.True(t, ok)
		assert.Equal(t, int64(2), r.Cost)
	}
	assert.Equal(t, 2, n.Cycle(core.KindWare).Resets())
	assert.Equal(t, 0, n.Cycle(core.KindWorker).Resets())
	assert.Equal(t, uint32(0), c.Search(core.KindWorker).Stamp())
}

func TestFlag_NeighboursOrder(t *testing.T) {
	n := core.NewNetwork()
	hub := mustFlag(t, n, 5, 5)
	var spokes []*core.Flag
	for i := 0; i < 4; i++ {
		s := mustFlag(t, n, i, 0)
		mustRoad(t, n, s, hub, 10)
		spokes = append(spokes, s)
	}
	var seen []*core.Flag
	hub.Neighbours(core.KindWorker, func(to *core.Flag, _ int64) { seen = append(seen, to) })
	assert.Equal(t, spokes, seen)
}

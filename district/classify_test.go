package district_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/district"
)

func mustFlag(t *testing.T, n *core.Network, x, y int) *core.Flag {
	t.Helper()
	f, err := n.AddFlag(core.Coords{X: x, Y: y}, 1)
	require.NoError(t, err)

	return f
}

func mustRoad(t *testing.T, n *core.Network, a, b *core.Flag, cost int64) {
	t.Helper()
	_, err := n.AddRoad(a, b, cost)
	require.NoError(t, err)
}

// lineOfThree places warehouses 10 apart and a third 1000 further on:
//
//	W1 ─10─ W2 ─────1000───── W3
func lineOfThree(t *testing.T) (*core.Network, []*core.Flag, []district.Anchor) {
	t.Helper()
	n := core.NewNetwork()
	f1 := mustFlag(t, n, 0, 0)
	f2 := mustFlag(t, n, 10, 0)
	f3 := mustFlag(t, n, 1010, 0)
	mustRoad(t, n, f1, f2, 10)
	mustRoad(t, n, f2, f3, 1000)
	anchors := []district.Anchor{
		{Serial: 100, Flag: f1},
		{Serial: 101, Flag: f2},
		{Serial: 102, Flag: f3},
	}

	return n, []*core.Flag{f1, f2, f3}, anchors
}

func TestClassify_CloseWarehousesMerge(t *testing.T) {
	n, flags, anchors := lineOfThree(t)

	res := district.Classify(n, core.KindWare, flags, anchors)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, core.Serial(100), res.Center[flags[0]])
	assert.Equal(t, core.Serial(100), res.Center[flags[1]], "close pair merges under the lower serial")
	assert.Equal(t, core.Serial(102), res.Center[flags[2]])
	assert.Equal(t, []core.Serial{100, 101}, res.Members[100])
	assert.Equal(t, []core.Serial{102}, res.Members[102])
	assert.Equal(t, []district.Link{
		{A: 100, B: 101, Cost: 10},
		{A: 101, B: 102, Cost: 1000},
	}, res.Links)
}

func TestClassify_Threshold(t *testing.T) {
	n, flags, anchors := lineOfThree(t)

	res := district.Classify(n, core.KindWare, flags, anchors, district.WithThreshold(10))
	assert.Equal(t, 3, res.Count, "costs equal to the threshold do not merge")

	res = district.Classify(n, core.KindWare, flags, anchors, district.WithThreshold(1001))
	assert.Equal(t, 1, res.Count, "merging is transitive")
	for _, f := range flags {
		assert.Equal(t, core.Serial(100), res.Center[f])
	}

	assert.Panics(t, func() { district.WithThreshold(0) })
}

func TestWithThreshold_PanicWrapsSentinel(t *testing.T) {
	defer func() {
		err, ok := recover().(error)
		require.True(t, ok, "panic value is an error")
		assert.ErrorIs(t, err, district.ErrBadThreshold)
		assert.ErrorContains(t, err, "-5")
	}()
	district.WithThreshold(-5)
}

func TestClassify_AnchorOrderIrrelevant(t *testing.T) {
	n, flags, anchors := lineOfThree(t)
	mid := mustFlag(t, n, 500, 1)
	mustRoad(t, n, flags[1], mid, 500)
	mustRoad(t, n, mid, flags[2], 510)
	flags = append(flags, mid)

	want := district.Classify(n, core.KindWare, flags, anchors)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]district.Anchor(nil), anchors...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := district.Classify(n, core.KindWare, flags, shuffled)
		assert.Equal(t, want.Center, got.Center)
		assert.Equal(t, want.Links, got.Links)
		assert.Equal(t, want.Count, got.Count)
	}
	assert.Equal(t, core.Serial(100), want.Center[mid], "mid is reached from W2 first")
}

func TestClassify_SharedFlag(t *testing.T) {
	n := core.NewNetwork()
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 100, 0)
	mustRoad(t, n, a, b, 100)
	anchors := []district.Anchor{{Serial: 9, Flag: a}, {Serial: 4, Flag: a}}

	res := district.Classify(n, core.KindWare, []*core.Flag{a, b}, anchors)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, core.Serial(4), res.Center[a])
	assert.Equal(t, core.Serial(4), res.Center[b])
	assert.Equal(t, []core.Serial{4, 9}, res.Members[4])
}

func TestClassify_Degenerate(t *testing.T) {
	n := core.NewNetwork()
	a := mustFlag(t, n, 0, 0)

	res := district.Classify(n, core.KindWare, []*core.Flag{a}, nil)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, core.Serial(0), res.Center[a])

	res = district.Classify(n, core.KindWare, nil, []district.Anchor{{Serial: 1, Flag: a}})
	assert.Equal(t, 0, res.Count)
	assert.Empty(t, res.Center)
}

func TestClassify_UnreachedFlagsHaveNoCenter(t *testing.T) {
	n := core.NewNetwork()
	a := mustFlag(t, n, 0, 0)
	b := mustFlag(t, n, 4, 0)
	c := mustFlag(t, n, 9, 0)
	_, err := n.AddRoad(a, b, 4, core.WithCarries(core.MaskOf(core.KindWare)))
	require.NoError(t, err)
	mustRoad(t, n, b, c, 5)

	res := district.Classify(n, core.KindWorker, []*core.Flag{a, b, c}, []district.Anchor{{Serial: 1, Flag: c}})
	assert.Equal(t, core.Serial(0), res.Center[a], "wares-only road is invisible to workers")
	assert.Equal(t, core.Serial(1), res.Center[b])
}

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/builder"
	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/economy"
)

func TestBuildNetwork_Topologies(t *testing.T) {
	tests := []struct {
		name         string
		ctor         builder.Constructor
		flags, roads int
	}{
		{"Path(5)", builder.Path(5), 5, 4},
		{"Grid(3,4)", builder.Grid(3, 4), 12, 17},
		{"Grid(1,1)", builder.Grid(1, 1), 1, 0},
		{"Star(6)", builder.Star(6), 6, 5},
		{"RandomSparse(9,0)", builder.RandomSparse(9, 0), 9, 0},
		{"RandomSparse(5,1)", builder.RandomSparse(5, 1), 5, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := core.NewNetwork()
			l, err := builder.BuildNetwork(n, nil, tc.ctor)
			require.NoError(t, err)
			assert.Len(t, l.Flags, tc.flags)
			assert.Len(t, l.Roads, tc.roads)
			assert.Equal(t, tc.flags, n.FlagCount())
			assert.Equal(t, tc.roads, n.RoadCount())
		})
	}
}

func TestPath_CostsAndNames(t *testing.T) {
	n := core.NewNetwork(core.WithCostPerField(3))
	l, err := builder.BuildNetwork(n,
		[]builder.BuilderOption{
			builder.WithPrefixIDs("f"),
			builder.WithSpacing(4),
			builder.WithCostPerField(3),
			builder.WithConstantSlack(2),
			builder.WithPlayer(7),
		},
		builder.Path(3))
	require.NoError(t, err)

	f2 := l.MustFlag("f2")
	assert.Equal(t, core.Coords{X: 8, Y: 0}, f2.Position())
	assert.Equal(t, core.Player(7), f2.Player())
	for _, r := range l.Roads {
		assert.Equal(t, int64(3*4+2), r.Cost())
	}
	_, ok := l.Flag("f3")
	assert.False(t, ok)
	assert.Panics(t, func() { l.MustFlag("nope") })
}

func TestBuildNetwork_ComposedSideBySide(t *testing.T) {
	n := core.NewNetwork()
	l, err := builder.BuildNetwork(n,
		[]builder.BuilderOption{builder.WithIDScheme(builder.ExcelColumnIDFn)},
		builder.Path(3), builder.Star(3), builder.Grid(2, 2))
	require.NoError(t, err)
	require.Len(t, l.Flags, 10)

	// Path occupies x=0..4, the star starts after a one-cell gap.
	assert.Equal(t, core.Coords{X: 8, Y: 0}, l.MustFlag("D").Position())
	assert.Equal(t, core.Coords{X: 14, Y: 0}, l.MustFlag("G").Position())
	assert.Equal(t, core.Coords{X: 16, Y: 2}, l.MustFlag("J").Position())
}

func TestRandomSparse_Deterministic(t *testing.T) {
	build := func() []int64 {
		n := core.NewNetwork()
		l, err := builder.BuildNetwork(n,
			[]builder.BuilderOption{builder.WithSeed(42), builder.WithUniformSlack(0, 5)},
			builder.RandomSparse(12, 0.3))
		require.NoError(t, err)
		out := make([]int64, 0, len(l.Roads))
		for _, r := range l.Roads {
			out = append(out, r.Cost())
		}

		return out
	}
	assert.Equal(t, build(), build())
}

func TestBuildNetwork_Errors(t *testing.T) {
	tests := []struct {
		name string
		ctor builder.Constructor
		want error
	}{
		{"PathTooShort", builder.Path(1), builder.ErrTooFewFlags},
		{"GridEmpty", builder.Grid(0, 3), builder.ErrTooFewFlags},
		{"StarTooSmall", builder.Star(1), builder.ErrTooFewFlags},
		{"SparseProbability", builder.RandomSparse(3, 1.5), builder.ErrInvalidProbability},
		{"SparseNoRNG", builder.RandomSparse(3, 0.5), builder.ErrNeedRandSource},
		{"NilConstructor", nil, builder.ErrConstructFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.BuildNetwork(core.NewNetwork(), nil, tc.ctor)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	t.Run("DuplicateID", func(t *testing.T) {
		same := func(int) string { return "x" }
		_, err := builder.BuildNetwork(core.NewNetwork(),
			[]builder.BuilderOption{builder.WithIDScheme(same)}, builder.Path(2))
		assert.ErrorIs(t, err, builder.ErrDuplicateID)
	})

	t.Run("CostBelowNetworkBound", func(t *testing.T) {
		_, err := builder.BuildNetwork(core.NewNetwork(core.WithCostPerField(5)), nil, builder.Path(2))
		assert.ErrorIs(t, err, core.ErrRoadTooCheap)
	})
}

// TestBuildNetwork_Session builds through a session so economies merge as
// roads appear.
func TestBuildNetwork_Session(t *testing.T) {
	s := economy.NewSession(&economy.Table{Wares: []economy.TypeSpec{{Name: "log"}}})
	l, err := builder.BuildNetwork(s,
		[]builder.BuilderOption{builder.WithRoadOptions(core.WithCarries(core.MaskOf(core.KindWare)))},
		builder.Grid(2, 3))
	require.NoError(t, err)

	first := s.EconomyOf(l.Flags[0], core.KindWare)
	assert.Equal(t, 6, first.FlagCount())
	for _, f := range l.Flags[1:] {
		assert.Same(t, first, s.EconomyOf(f, core.KindWare))
		assert.NotSame(t, s.EconomyOf(l.Flags[0], core.KindWorker), s.EconomyOf(f, core.KindWorker))
	}
}

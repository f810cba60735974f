package economy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/economy"
)

// build replays the same calls on a fresh session.
func build(t *testing.T) (*fixture, []*core.Flag) {
	t.Helper()
	fx := newFixture(t)
	flags := fx.chain(0, 4)
	fx.depot(flags[0])

	return fx, flags
}

func TestSnapshot_RoundTrip(t *testing.T) {
	fx, flags := build(t)
	fx.advance(300)
	e := fx.wares(flags[0])
	require.NoError(t, e.SetTargetQuantity(wareLog, 12))
	fx.advance(700)

	snaps := fx.s.Snapshot()
	require.Len(t, snaps, 2)
	assert.Equal(t, core.KindWare, snaps[0].Kind)
	assert.Equal(t, core.KindWorker, snaps[1].Kind)

	again, again0 := build(t)
	require.NoError(t, again.s.Restore(snaps))
	restored := again.wares(again0[0])
	require.NotNil(t, restored)
	assert.Equal(t, economy.TargetQuantity{Quantity: 12, LastModified: 300}, restored.TargetQuantity(wareLog))
	assert.Equal(t, e.TimerSerial(), restored.TimerSerial())
	assert.Equal(t, snaps, again.s.Snapshot())
}

func TestRestore_Errors(t *testing.T) {
	fx, flags := build(t)
	snaps := fx.s.Snapshot()

	bad := snaps[0]
	bad.Serial = 9999
	assert.ErrorIs(t, fx.s.Restore([]economy.Snapshot{bad}), economy.ErrUnknownEconomy)

	wrongKind := snaps[0]
	wrongKind.Kind = core.KindWorker
	assert.ErrorIs(t, fx.wares(flags[0]).Restore(wrongKind), economy.ErrCorrupt)

	short := snaps[0]
	short.Targets = short.Targets[:1]
	assert.ErrorIs(t, fx.wares(flags[0]).Restore(short), economy.ErrCorrupt)
}

func TestTargets(t *testing.T) {
	fx, flags := build(t)
	e := fx.wares(flags[0])

	assert.Equal(t, 5, e.TargetQuantity(wareLog).Quantity)
	assert.True(t, e.NeedsType(wareLog))
	assert.False(t, e.NeedsType(wareAxe), "zero target never needs stock")
	assert.ErrorIs(t, e.SetTargetQuantity(7, 1), economy.ErrBadType)
	assert.ErrorIs(t, e.SetTargetQuantity(wareLog, -1), economy.ErrBadCount)
	require.NoError(t, e.SetTargetQuantity(wareLog, 0))
	assert.False(t, e.NeedsType(wareLog))
}

package economy

import (
	"github.com/katalvlaran/wareflow/district"
	"github.com/katalvlaran/wareflow/syncstream"
)

// balance is the timer-driven pass. Firings carrying an outdated serial are
// ignored; a run advances the serial.
func (e *Economy) balance(timer uint32) {
	if e.dead || timer != e.timer {
		return
	}
	e.timer++

	st := e.s.opts.stream
	st.Uint8(syncstream.MarkerBalance)
	st.Uint32(uint32(e.serial))
	st.Uint32(timer)

	// Districts are only meaningful once pending splits are resolved.
	e.checkSplits()
	e.recalcDistricts()
	e.createRequestedWorkers()
	e.balanceRequestSupply()
	e.handleActiveSupplies()
	e.checkImports()
	e.s.opts.recorder.BalanceRan(e.kind)
}

// recalcDistricts rebuilds the district of every flag.
func (e *Economy) recalcDistricts() {
	flags := e.Flags()
	anchors := make([]district.Anchor, 0, len(e.warehouses))
	for _, w := range e.warehouses {
		anchors = append(anchors, district.Anchor{Serial: w.Serial(), Flag: w.BaseFlag()})
	}
	res := district.Classify(e.s.net, e.kind, flags, anchors,
		district.WithThreshold(e.s.opts.DistrictThreshold))
	for _, f := range flags {
		f.SetDistrict(e.kind, res.Center[f])
	}
	e.districts = res.Count
}

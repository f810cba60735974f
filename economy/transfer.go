package economy

import (
	"log/slog"

	"github.com/katalvlaran/wareflow/core"
)

// Transfer moves one unit from a supply either to a request or, for stray
// items, into a warehouse. Transfers finish with Complete or Cancel.
type Transfer struct {
	serial core.Serial
	s      *Session

	kind       core.Kind
	typ        TypeIndex
	experience int

	request *Request
	storage Warehouse
	supply  Supply

	from     core.Serial
	imported bool
	cost     int64
	launched Time
	done     bool
}

// Serial identifies the transfer.
func (t *Transfer) Serial() core.Serial { return t.serial }

// Kind returns the commodity class moved.
func (t *Transfer) Kind() core.Kind { return t.kind }

// Type returns the ware or worker type moved.
func (t *Transfer) Type() TypeIndex { return t.typ }

// Experience is the experience of the worker moved, zero for wares.
func (t *Transfer) Experience() int { return t.experience }

// Request returns the destination request, nil for storage trips.
func (t *Transfer) Request() *Request { return t.request }

// Storage returns the destination warehouse of a storage trip.
func (t *Transfer) Storage() Warehouse { return t.storage }

// Supply returns the source of the unit.
func (t *Transfer) Supply() Supply { return t.supply }

// Cost is the route cost when the transfer started.
func (t *Transfer) Cost() int64 { return t.cost }

// Launched is the game time the transfer started.
func (t *Transfer) Launched() Time { return t.launched }

// Done reports whether the transfer completed or was cancelled.
func (t *Transfer) Done() bool { return t.done }

// SourceDistrict is the district of the source when the transfer started.
func (t *Transfer) SourceDistrict() core.Serial { return t.from }

// Imported reports whether the unit came from outside the request's district.
func (t *Transfer) Imported() bool { return t.imported }

// Complete delivers the unit.
func (t *Transfer) Complete() error {
	if t.done {
		return ErrTransferDone
	}
	t.finish()
	t.supply.delivered(t)

	switch {
	case t.request != nil:
		r := t.request
		r.delivered++
		if r.onDeliver != nil {
			r.onDeliver(t)
		}
		if r.registered && r.delivered >= r.count {
			r.economy.removeRequest(r)
			delete(t.s.requests, r)
			r.registered = false
		}
	case t.storage != nil:
		_ = t.storage.Supply().AddStock(t.kind, t.typ, 1)
	}
	t.s.opts.recorder.TransferCompleted(t.kind)

	return nil
}

// Cancel stops the transfer and returns the unit to its source.
func (t *Transfer) Cancel() error {
	if t.done {
		return ErrTransferDone
	}
	t.finish()
	t.supply.release(t)
	if t.request != nil && t.request.registered {
		t.request.economy.rearm()
	}
	t.s.opts.recorder.TransferCancelled(t.kind)

	return nil
}

// abandon ends a storage trip whose unit a request takes over.
func (t *Transfer) abandon() {
	t.finish()
	t.s.opts.recorder.TransferCancelled(t.kind)
}

// fail ends a transfer whose unit vanished.
func (t *Transfer) fail() {
	t.finish()
	t.s.log.Debug("transfer failed", slog.Any("transfer", t.serial), slog.Any("supply", t.supply.Serial()))
	if t.request != nil && t.request.registered {
		t.request.economy.rearm()
	}
	t.s.opts.recorder.TransferCancelled(t.kind)
}

func (t *Transfer) finish() {
	t.done = true
	delete(t.s.transfers, t.serial)
	if t.request != nil {
		t.request.dropTransfer(t)
	}
}

package economy

import (
	"errors"
	"log/slog"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/syncstream"
)

// Sentinel errors. Errors returned to callers wrap one of these; bookkeeping
// violations named as programming errors panic with a wrapped sentinel.
var (
	// ErrUnknownFlag indicates a flag that is not registered with the session.
	ErrUnknownFlag = errors.New("economy: flag is not registered")

	// ErrFlagInUse indicates removal of a flag that still carries requests,
	// supplies or warehouses.
	ErrFlagInUse = errors.New("economy: flag still carries economy objects")

	// ErrUnknownRequest indicates a request that is not registered.
	ErrUnknownRequest = errors.New("economy: request is not registered")

	// ErrUnknownSupply indicates a supply that is not registered.
	ErrUnknownSupply = errors.New("economy: supply is not registered")

	// ErrUnknownWarehouse indicates a warehouse that is not registered.
	ErrUnknownWarehouse = errors.New("economy: warehouse is not registered")

	// ErrDuplicate indicates an object registered twice.
	ErrDuplicate = errors.New("economy: object is already registered")

	// ErrBadType indicates a type index outside the catalog.
	ErrBadType = errors.New("economy: type index out of range")

	// ErrBadCount indicates a non-positive request count.
	ErrBadCount = errors.New("economy: count must be positive")

	// ErrTimeReversed indicates Advance to a time before Now.
	ErrTimeReversed = errors.New("economy: time must not go backwards")

	// ErrTransferDone indicates Complete or Cancel on a finished transfer.
	ErrTransferDone = errors.New("economy: transfer is already finished")

	// ErrCorrupt indicates a failed consistency check.
	ErrCorrupt = errors.New("economy: bookkeeping is inconsistent")
)

// Time is game time in milliseconds.
type Time int64

// Duration is a span of game time in milliseconds.
type Duration int64

// TypeIndex selects a ware or worker type in the Catalog.
type TypeIndex int

// StockPolicy says how a warehouse treats incoming items of one type.
type StockPolicy uint8

const (
	// PolicyNormal accepts items when no preferred warehouse exists.
	PolicyNormal StockPolicy = iota
	// PolicyPrefer attracts items of the type.
	PolicyPrefer
	// PolicyDontStock never receives new items of the type.
	PolicyDontStock
	// PolicyRemove never receives items and wants its stock gone.
	PolicyRemove
)

// String returns the policy name used in scenario files.
func (p StockPolicy) String() string {
	switch p {
	case PolicyNormal:
		return "normal"
	case PolicyPrefer:
		return "prefer"
	case PolicyDontStock:
		return "dontstock"
	case PolicyRemove:
		return "remove"
	}

	return "unknown"
}

// TargetQuantity is the desired standing stock of one type and the time it
// was last changed. Merges keep the newer of two targets.
type TargetQuantity struct {
	Quantity     int
	LastModified Time
}

// Provider orders supply variants when distances tie.
type Provider uint8

const (
	ProviderWarehouse Provider = iota
	ProviderIdleWorker
	ProviderItem
)

// NoteAction says what happened to an economy.
type NoteAction uint8

const (
	// NoteMerged is sent when an economy with an observer was absorbed into one
	// without; To names the survivor.
	NoteMerged NoteAction = iota
	// NoteDeleted is sent when an economy ceases to exist.
	NoteDeleted
)

// Note is delivered to the session observer.
type Note struct {
	Action  NoteAction
	Economy core.Serial
	To      core.Serial
}

// Recorder receives counters from the balancing cycle. Implementations must
// not call back into the session.
type Recorder interface {
	BalanceRan(kind core.Kind)
	TransferLaunched(kind core.Kind, imported bool)
	TransferCancelled(kind core.Kind)
	TransferCompleted(kind core.Kind)
	Unreachable(kind core.Kind)
	Economies(kind core.Kind, n int)
}

type nopRecorder struct{}

func (nopRecorder) BalanceRan(core.Kind)             {}
func (nopRecorder) TransferLaunched(core.Kind, bool) {}
func (nopRecorder) TransferCancelled(core.Kind)      {}
func (nopRecorder) TransferCompleted(core.Kind)      {}
func (nopRecorder) Unreachable(core.Kind)            {}
func (nopRecorder) Economies(core.Kind, int)         {}

// Default tuning values, all in game milliseconds except the threshold.
const (
	DefaultRequestDelay      Duration = 200
	DefaultRetryFloor        Duration = 200
	DefaultIdleSlack         Duration = 15000
	DefaultDistrictThreshold int64    = 40
)

// Options holds session tuning.
type Options struct {
	RequestDelay      Duration
	RetryFloor        Duration
	IdleSlack         Duration
	DistrictThreshold int64
	AutoDeliver       bool

	logger   *slog.Logger
	stream   syncstream.Stream
	recorder Recorder
	observer func(Note)
	netOpts  []core.NetworkOption
}

// Option configures a Session.
type Option func(*Options)

// WithRequestDelay sets the delay between a change and the balance it arms.
func WithRequestDelay(d Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.RequestDelay = d
		}
	}
}

// WithRetryFloor sets the minimum delay before a retry.
func WithRetryFloor(d Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.RetryFloor = d
		}
	}
}

// WithIdleSlack sets how long an early delivery may wait at its requester
// before the pairing is deferred.
func WithIdleSlack(d Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.IdleSlack = d
		}
	}
}

// WithDistrictThreshold sets the inter-warehouse cost below which two
// warehouses share a district.
func WithDistrictThreshold(cost int64) Option {
	return func(o *Options) {
		if cost > 0 {
			o.DistrictThreshold = cost
		}
	}
}

// WithAutoDelivery completes every transfer once its route cost has elapsed.
// Without it, transfers stay pending until Complete is called.
func WithAutoDelivery() Option {
	return func(o *Options) { o.AutoDeliver = true }
}

// WithLogger sets the structured logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStream sets the synchronization stream. Default syncstream.Discard.
func WithStream(s syncstream.Stream) Option {
	return func(o *Options) {
		if s != nil {
			o.stream = s
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithObserver sets the receiver of economy notes.
func WithObserver(fn func(Note)) Option {
	return func(o *Options) { o.observer = fn }
}

// WithNetworkOptions forwards options to the routing network.
func WithNetworkOptions(opts ...core.NetworkOption) Option {
	return func(o *Options) { o.netOpts = append(o.netOpts, opts...) }
}

func defaultOptions() Options {
	return Options{
		RequestDelay:      DefaultRequestDelay,
		RetryFloor:        DefaultRetryFloor,
		IdleSlack:         DefaultIdleSlack,
		DistrictThreshold: DefaultDistrictThreshold,
		logger:            slog.Default(),
		stream:            syncstream.Discard,
		recorder:          nopRecorder{},
	}
}

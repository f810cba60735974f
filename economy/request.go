package economy

import "github.com/katalvlaran/wareflow/core"

// Request is demand for Count units of one type at a flag. Building logic
// creates requests and registers them with Session.AddRequest; a request
// leaves its economy once every unit has been delivered.
type Request struct {
	serial core.Serial
	seq    uint64
	s      *Session

	kind  core.Kind
	typ   TypeIndex
	flag  *core.Flag
	count int

	priority      int
	requiredTime  Time
	requiredSet   bool
	interval      Duration
	minExperience int
	imports       bool
	onDeliver     func(*Transfer)

	delivered  int
	transfers  []*Transfer
	economy    *Economy
	registered bool
}

// RequestOption configures a Request.
type RequestOption func(*Request)

// WithPriority sets the urgency multiplier. Zero-priority requests are served
// only when nothing else can be. Negative values are ignored.
func WithPriority(p int) RequestOption {
	return func(r *Request) {
		if p >= 0 {
			r.priority = p
		}
	}
}

// WithRequiredTime sets when the first unit is needed. Default: the time the
// request is registered.
func WithRequiredTime(t Time) RequestOption {
	return func(r *Request) {
		r.requiredTime = t
		r.requiredSet = true
	}
}

// WithRequiredInterval spaces the required time of consecutive units.
func WithRequiredInterval(d Duration) RequestOption {
	return func(r *Request) {
		if d >= 0 {
			r.interval = d
		}
	}
}

// WithMinExperience restricts a worker request to workers with at least x
// experience. Newly created workers have none.
func WithMinExperience(x int) RequestOption {
	return func(r *Request) {
		if x >= 0 {
			r.minExperience = x
		}
	}
}

// WithImports controls whether supplies from other districts may serve the
// request when its own district has none. Default true.
func WithImports(allow bool) RequestOption {
	return func(r *Request) { r.imports = allow }
}

// WithDelivery sets a callback run when a unit arrives.
func WithDelivery(fn func(*Transfer)) RequestOption {
	return func(r *Request) { r.onDeliver = fn }
}

// NewRequest creates an unregistered request for count units of typ at flag.
func NewRequest(flag *core.Flag, kind core.Kind, typ TypeIndex, count int, opts ...RequestOption) *Request {
	r := &Request{
		kind:     kind,
		typ:      typ,
		flag:     flag,
		count:    count,
		priority: 1,
		imports:  true,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Serial is assigned on registration; zero before.
func (r *Request) Serial() core.Serial { return r.serial }

// Kind returns the commodity class requested.
func (r *Request) Kind() core.Kind { return r.kind }

// Type returns the requested ware or worker type.
func (r *Request) Type() TypeIndex { return r.typ }

// Flag returns where units are delivered.
func (r *Request) Flag() *core.Flag { return r.flag }

// Count returns the total number of units wanted.
func (r *Request) Count() int { return r.count }

// Delivered returns the number of units that arrived.
func (r *Request) Delivered() int { return r.delivered }

// Priority returns the urgency multiplier.
func (r *Request) Priority() int { return r.priority }

// MinExperience returns the experience a worker needs to qualify.
func (r *Request) MinExperience() int { return r.minExperience }

// Imports reports whether other districts may serve the request.
func (r *Request) Imports() bool { return r.imports }

// Registered reports whether the request is known to a session.
func (r *Request) Registered() bool { return r.registered }

// Economy returns the economy holding the request, nil when unregistered.
func (r *Request) Economy() *Economy { return r.economy }

// OpenCount is the number of units neither delivered nor in transit.
func (r *Request) OpenCount() int {
	n := r.count - r.delivered - len(r.transfers)
	if n < 0 {
		return 0
	}

	return n
}

// Open reports whether the request still needs a transfer.
func (r *Request) Open() bool { return r.registered && r.OpenCount() > 0 }

// Transfers returns the pending transfers in launch order.
func (r *Request) Transfers() []*Transfer {
	out := make([]*Transfer, len(r.transfers))
	copy(out, r.transfers)

	return out
}

// RequiredTime is when the next unit is needed: the base time plus one
// interval per unit already delivered or on its way.
func (r *Request) RequiredTime() Time {
	return r.requiredTime + Time(r.interval)*Time(r.delivered+len(r.transfers))
}

// Urgency ranks a pairing of r with a supply cost away at time now. Higher is
// more urgent: priority scaled up by lateness and down by cost. Zero-priority
// requests have zero urgency and are ordered after every other request by the
// matcher, whatever the cost.
func (r *Request) Urgency(now Time, cost int64) float64 {
	if r.priority == 0 {
		return 0
	}
	late := int64(now - r.RequiredTime())
	if late < 0 {
		late = 0
	}
	if cost < 1 {
		cost = 1
	}

	return float64(r.priority) * float64(1000+late) / float64(cost)
}

// Cancel unregisters the request, cancelling its transfers.
func (r *Request) Cancel() error {
	if r.s == nil {
		return ErrUnknownRequest
	}

	return r.s.RemoveRequest(r)
}

func (r *Request) dropTransfer(t *Transfer) {
	for i, x := range r.transfers {
		if x == t {
			r.transfers = append(r.transfers[:i], r.transfers[i+1:]...)

			return
		}
	}
}

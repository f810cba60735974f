package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/economy"
)

const subsystem = "economy"

var _ economy.Recorder = (*Collector)(nil)

// Collector handles all balancing and transfer metrics.
type Collector struct {
	// Balancing metrics
	balances    *prometheus.CounterVec
	unreachable *prometheus.CounterVec
	economies   *prometheus.GaugeVec

	// Transfer metrics
	launched  *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	completed *prometheus.CounterVec
	inFlight  *prometheus.GaugeVec
}

// NewCollector creates a collector whose series live under namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		balances: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "balances_total",
				Help:      "Balancing passes run",
			},
			[]string{"kind"},
		),

		unreachable: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unreachable_total",
				Help:      "Matches abandoned because no candidate could be routed",
			},
			[]string{"kind"},
		),

		economies: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "economies",
				Help:      "Live economies",
			},
			[]string{"kind"},
		),

		launched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_launched_total",
				Help:      "Transfers started, by whether they cross districts",
			},
			[]string{"kind", "imported"},
		),

		cancelled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_cancelled_total",
				Help:      "Transfers cancelled or failed",
			},
			[]string{"kind"},
		),

		completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_completed_total",
				Help:      "Transfers delivered",
			},
			[]string{"kind"},
		),

		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transfers_in_flight",
				Help:      "Transfers launched and not yet finished",
			},
			[]string{"kind"},
		),
	}
}

// Register registers all collectors with reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		c.balances,
		c.unreachable,
		c.economies,
		c.launched,
		c.cancelled,
		c.completed,
		c.inFlight,
	}

	for _, metric := range metrics {
		if err := reg.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *Collector) BalanceRan(kind core.Kind) {
	c.balances.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) TransferLaunched(kind core.Kind, imported bool) {
	c.launched.WithLabelValues(kind.String(), strconv.FormatBool(imported)).Inc()
	c.inFlight.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) TransferCancelled(kind core.Kind) {
	c.cancelled.WithLabelValues(kind.String()).Inc()
	c.inFlight.WithLabelValues(kind.String()).Dec()
}

func (c *Collector) TransferCompleted(kind core.Kind) {
	c.completed.WithLabelValues(kind.String()).Inc()
	c.inFlight.WithLabelValues(kind.String()).Dec()
}

func (c *Collector) Unreachable(kind core.Kind) {
	c.unreachable.WithLabelValues(kind.String()).Inc()
}

func (c *Collector) Economies(kind core.Kind, n int) {
	c.economies.WithLabelValues(kind.String()).Set(float64(n))
}

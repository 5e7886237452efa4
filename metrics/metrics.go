// Package metrics exports component lifecycle and update statistics to
// Prometheus. A *Metrics is installed with relm.Configure(relm.WithHooks(m)).
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elizafairlady/go-relm/relm"
)

// Metrics holds the runtime collectors.
type Metrics struct {
	ComponentsLive   *prometheus.GaugeVec
	UpdatesTotal     *prometheus.CounterVec
	UpdateDuration   *prometheus.HistogramVec
	SlowUpdatesTotal *prometheus.CounterVec
}

var _ relm.Hooks = (*Metrics)(nil)

// New creates the collectors under namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		ComponentsLive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "components",
				Name:      "live",
				Help:      "Number of running components",
			},
			[]string{"component"},
		),

		UpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "updates",
				Name:      "total",
				Help:      "Total number of messages applied by Update",
			},
			[]string{"component", "msg"},
		),

		UpdateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "updates",
				Name:      "duration_seconds",
				Help:      "Duration of Update calls in seconds",
				Buckets:   []float64{.0005, .001, .004, .016, .05, .2, 1},
			},
			[]string{"component"},
		),

		SlowUpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "updates",
				Name:      "slow_total",
				Help:      "Total number of updates slower than the threshold",
			},
			[]string{"component", "msg"},
		),
	}
}

// Register registers every collector with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	var errs []error
	for _, c := range []prometheus.Collector{
		m.ComponentsLive,
		m.UpdatesTotal,
		m.UpdateDuration,
		m.SlowUpdatesTotal,
	} {
		if err := r.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Metrics) ComponentCreated(name string) {
	m.ComponentsLive.WithLabelValues(name).Inc()
}

func (m *Metrics) ComponentDestroyed(name string) {
	m.ComponentsLive.WithLabelValues(name).Dec()
}

func (m *Metrics) UpdateFinished(name, msg string, elapsed time.Duration) {
	m.UpdatesTotal.WithLabelValues(name, msg).Inc()
	m.UpdateDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (m *Metrics) SlowUpdate(name, msg string, _ time.Duration) {
	m.SlowUpdatesTotal.WithLabelValues(name, msg).Inc()
}

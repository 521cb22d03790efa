package reactive

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors of a Runtime.
type MetricsConfig struct {
	Namespace string
	Subsystem string
	Buckets   []float64
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metric namespace (default "signalgraph").
func WithNamespace(ns string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = ns
	}
}

// WithSubsystem sets the metric subsystem (default "reactive").
func WithSubsystem(s string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = s
	}
}

// WithFlushBuckets sets the histogram buckets of the flush duration, in seconds.
func WithFlushBuckets(b []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = b
	}
}

// Metrics holds the collectors updated by a Runtime. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	flushes       prometheus.Counter
	flushDuration prometheus.Histogram
	tasks         *prometheus.CounterVec
	layouts       prometheus.Counter
	removals      prometheus.Counter
	nodes         prometheus.Gauge
}

// NewMetrics registers the runtime collectors with reg.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	cfg := MetricsConfig{
		Namespace: "signalgraph",
		Subsystem: "reactive",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(reg)

	return &Metrics{
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "flushes_total",
			Help:      "Completed flush cycles.",
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "flush_duration_seconds",
			Help:      "Time spent in one flush.",
			Buckets:   cfg.Buckets,
		}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "tasks_total",
			Help:      "Tasks executed by flushes, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		layouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "layout_requests_total",
			Help:      "Layout requests issued to the host.",
		}),
		removals: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "node_removals_total",
			Help:      "Nodes removed from the arena.",
		}),
		nodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "nodes",
			Help:      "Live nodes in the arena.",
		}),
	}
}

func (m *Metrics) setNodes(n int) {
	if m == nil {
		return
	}
	m.nodes.Set(float64(n))
}

func (m *Metrics) addRemovals(n int) {
	if m == nil {
		return
	}
	m.removals.Add(float64(n))
}

func (m *Metrics) observeFlush(d time.Duration, layouts int) {
	if m == nil {
		return
	}
	m.flushes.Inc()
	m.flushDuration.Observe(d.Seconds())
	m.layouts.Add(float64(layouts))
}

func (m *Metrics) countTask(kind TaskKind, outcome string) {
	if m == nil {
		return
	}
	m.tasks.WithLabelValues(kind.String(), outcome).Inc()
}

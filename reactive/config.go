package reactive

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for flush spans.
const defaultTracerName = "signalgraph"

// SignalWritePolicy decides whether Signal.Set notifies subscribers when the new value
// equals the old one.
type SignalWritePolicy uint8

const (
	// NotifyAlways notifies on every Set, equal or not. Downstream memos still stop
	// propagation when their recomputed value is unchanged.
	NotifyAlways SignalWritePolicy = iota

	// NotifyOnChange drops writes whose value equals the current one.
	NotifyOnChange
)

func (p SignalWritePolicy) String() string {
	if p == NotifyOnChange {
		return "notify-on-change"
	}
	return "notify-always"
}

// Config configures a Runtime.
type Config struct {
	// Logger receives debug records about flushes and sweeps (default: discard).
	Logger *slog.Logger

	// Host connects the runtime to layout, widgets, parameters and animations.
	Host Host

	// WritePolicy controls equal writes to signals (default: NotifyAlways).
	WritePolicy SignalWritePolicy

	// AutoFlush flushes after a top-level Set outside Batch (default: false, the
	// host's frame loop calls Flush).
	AutoFlush bool

	// FlushBudget caps the tasks one Flush may run; 0 means unlimited.
	FlushBudget int

	// GoroutineCheck panics when the runtime is used off its creating goroutine
	// (default: true).
	GoroutineCheck bool

	// Metrics records flush and node statistics; nil disables them.
	Metrics *Metrics

	// Tracer starts one span per flush (default: otel.Tracer("signalgraph")).
	Tracer trace.Tracer

	// AfterFlush hooks run at the end of every completed flush.
	AfterFlush []func(*Runtime)
}

// Option configures a Runtime.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Logger:         slog.New(slog.DiscardHandler),
		WritePolicy:    NotifyAlways,
		GoroutineCheck: true,
		Tracer:         otel.Tracer(defaultTracerName),
	}
}

// WithLogger sets the runtime logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHost sets the host collaborators.
func WithHost(host Host) Option {
	return func(c *Config) {
		c.Host = host
	}
}

// WithSignalWritePolicy sets how equal signal writes are handled.
func WithSignalWritePolicy(p SignalWritePolicy) Option {
	return func(c *Config) {
		c.WritePolicy = p
	}
}

// WithAutoFlush enables flushing after every top-level write.
func WithAutoFlush(enabled bool) Option {
	return func(c *Config) {
		c.AutoFlush = enabled
	}
}

// WithFlushBudget caps the number of tasks a single flush may execute.
func WithFlushBudget(n int) Option {
	return func(c *Config) {
		c.FlushBudget = n
	}
}

// WithGoroutineCheck toggles the goroutine affinity check.
func WithGoroutineCheck(enabled bool) Option {
	return func(c *Config) {
		c.GoroutineCheck = enabled
	}
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithTracer sets the tracer used for flush spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

// WithAfterFlush adds a hook run after each completed flush, on the runtime goroutine.
func WithAfterFlush(fn func(*Runtime)) Option {
	return func(c *Config) {
		c.AfterFlush = append(c.AfterFlush, fn)
	}
}

// NodeOption configures a single node at creation.
type NodeOption func(*node)

// WithLabel names a node in snapshots and logs.
func WithLabel(label string) NodeOption {
	return func(n *node) {
		n.label = label
	}
}

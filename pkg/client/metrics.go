package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eim-dev/eim-client/pkg/protocol"
)

// MetricsConfig configures the Prometheus collectors of a Client.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "eim").
	Namespace string

	// Subsystem is the metrics subsystem (default: "client").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "eim",
		Subsystem: "client",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for one or more clients.
// A nil *Metrics records nothing.
type Metrics struct {
	framesReceived  *prometheus.CounterVec
	framesSent      *prometheus.CounterVec
	framesDropped   *prometheus.CounterVec
	framesMalformed *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
	lateReplies     prometheus.Counter
	pending         prometheus.Gauge
	connected       prometheus.Gauge
}

// NewMetrics registers the client collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_received_total",
			Help:        "Frames received from the backend",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode"}),

		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_sent_total",
			Help:        "Command frames sent to the backend",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode"}),

		framesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_dropped_total",
			Help:        "Frames dropped because no handler was registered",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode"}),

		framesMalformed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_malformed_total",
			Help:        "Frames that failed to decode",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Round trip time of correlated commands",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"opcode"}),

		requestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_errors_total",
			Help:        "Correlated commands that failed",
			ConstLabels: config.ConstLabels,
		}, []string{"opcode", "reason"}),

		lateReplies: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "late_replies_total",
			Help:        "Replies that arrived after their request gave up",
			ConstLabels: config.ConstLabels,
		}),

		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pending_requests",
			Help:        "Correlated commands waiting for a reply",
			ConstLabels: config.ConstLabels,
		}),

		connected: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "connected",
			Help:        "1 while the backend channel is open",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) frameReceived(op protocol.Clientbound) {
	if m == nil {
		return
	}
	m.framesReceived.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) frameSent(op protocol.Serverbound) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) frameDropped(op protocol.Clientbound) {
	if m == nil {
		return
	}
	m.framesDropped.WithLabelValues(op.String()).Inc()
}

// frameMalformed takes a label rather than an opcode because an empty
// frame has none.
func (m *Metrics) frameMalformed(label string) {
	if m == nil {
		return
	}
	m.framesMalformed.WithLabelValues(label).Inc()
}

func (m *Metrics) requestDone(op protocol.Serverbound, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(op.String()).Observe(d.Seconds())
}

func (m *Metrics) requestFailed(op protocol.Serverbound, reason string) {
	if m == nil {
		return
	}
	m.requestErrors.WithLabelValues(op.String(), reason).Inc()
}

func (m *Metrics) lateReply() {
	if m == nil {
		return
	}
	m.lateReplies.Inc()
}

func (m *Metrics) pendingAdd(delta float64) {
	if m == nil {
		return
	}
	m.pending.Add(delta)
}

func (m *Metrics) setConnected(up bool) {
	if m == nil {
		return
	}
	if up {
		m.connected.Set(1)
	} else {
		m.connected.Set(0)
	}
}

package monitoring

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/framehost/officebridge/internal/telemetry"
)

// Metrics holds all Prometheus metrics for the embed host.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Relay WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Frame session metrics
	SessionsActive prometheus.Gauge
	SessionsTotal  prometheus.Counter
	FrameMessages  *prometheus.CounterVec
	ReadySent      prometheus.Counter

	// Load milestone metrics
	LoadTime  *prometheus.HistogramVec
	SlowLoads *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "officebridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "officebridge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "officebridge_ws_connections",
				Help: "Open relay WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "officebridge_ws_messages_total",
				Help: "Relay WebSocket messages by direction and type",
			},
			[]string{"direction", "type"},
		),

		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "officebridge_frame_sessions_active",
				Help: "Editor frame sessions currently initialized",
			},
		),
		SessionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "officebridge_frame_sessions_total",
				Help: "Editor frame sessions created",
			},
		),
		FrameMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "officebridge_frame_messages_total",
				Help: "Inbound frame messages by kind",
			},
			[]string{"kind"},
		),
		ReadySent: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "officebridge_ready_messages_total",
				Help: "Host_PostmessageReady messages posted to frames",
			},
		),

		LoadTime: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "officebridge_load_time_seconds",
				Help:    "Editor load milestones measured from session start",
				Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"event", "app_type"},
		),
		SlowLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "officebridge_slow_loads_total",
				Help: "Load milestones that crossed the slow threshold",
			},
			[]string{"event", "app_type"},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "officebridge_uptime_seconds",
				Help: "Host uptime in seconds",
			},
		),
	}
}

// RecordHTTPRequest records one HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// WSConnected marks a relay connection opened.
func (m *Metrics) WSConnected() {
	m.WSConnections.Inc()
}

// WSDisconnected marks a relay connection closed.
func (m *Metrics) WSDisconnected() {
	m.WSConnections.Dec()
}

// RecordWSMessage counts one relay message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SessionStarted marks an editor frame session initialized.
func (m *Metrics) SessionStarted() {
	m.SessionsActive.Inc()
	m.SessionsTotal.Inc()
}

// SessionEnded marks an editor frame session torn down.
func (m *Metrics) SessionEnded() {
	m.SessionsActive.Dec()
}

// RecordFrameMessage counts one inbound frame message by kind.
func (m *Metrics) RecordFrameMessage(kind string) {
	m.FrameMessages.WithLabelValues(kind).Inc()
}

// RecordReadySent counts one posted ready message.
func (m *Metrics) RecordReadySent() {
	m.ReadySent.Inc()
}

// UpdateUptime refreshes the uptime gauge.
func (m *Metrics) UpdateUptime() {
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// observeLoadRecord mirrors one telemetry record into Prometheus.
func (m *Metrics) observeLoadRecord(r telemetry.Record) {
	if event, ok := strings.CutSuffix(r.EventName, telemetry.SlowSuffix); ok {
		m.SlowLoads.WithLabelValues(event, r.AppType).Inc()
		return
	}
	m.LoadTime.WithLabelValues(r.EventName, r.AppType).Observe(float64(r.LoadTimeMs) / 1000)
}

// TelemetryEmitter mirrors telemetry records into Prometheus before passing
// them to the next sink.
type TelemetryEmitter struct {
	metrics *Metrics
	next    telemetry.Emitter
}

// NewTelemetryEmitter decorates next with Prometheus recording.
func NewTelemetryEmitter(metrics *Metrics, next telemetry.Emitter) *TelemetryEmitter {
	if next == nil {
		next = telemetry.Nop{}
	}
	return &TelemetryEmitter{metrics: metrics, next: next}
}

// Emit records the telemetry and forwards it.
func (e *TelemetryEmitter) Emit(r telemetry.Record) {
	e.metrics.observeLoadRecord(r)
	e.next.Emit(r)
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPLatency      *prometheus.HistogramVec
	Intents          *prometheus.CounterVec
	Navigations      *prometheus.CounterVec
	LabelOps         *prometheus.CounterVec
	ImageResolutions *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
}

// New creates the metrics and registers them with reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swipetree_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		Intents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swipetree_gesture_intents_total",
			Help: "Intents emitted by the gesture classifier",
		}, []string{"kind", "direction"}),
		Navigations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swipetree_navigation_outcomes_total",
			Help: "Navigation outcomes by kind",
		}, []string{"outcome"}),
		LabelOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swipetree_label_operations_total",
			Help: "Label reads and writes by result",
		}, []string{"op", "result"}),
		ImageResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "swipetree_image_resolutions_total",
			Help: "Image lookups by the source that answered",
		}, []string{"source"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "swipetree_active_sessions",
			Help: "Open browsing sessions",
		}),
	}
}

// ObserveHTTP records one request.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPLatency.WithLabelValues(route, method, strconv.Itoa(status)).Observe(d.Seconds())
}

// IncIntent counts an emitted intent.
func (m *Metrics) IncIntent(kind, direction string) {
	if m == nil {
		return
	}
	m.Intents.WithLabelValues(kind, direction).Inc()
}

// IncNavigation counts a navigation outcome.
func (m *Metrics) IncNavigation(outcome string) {
	if m == nil {
		return
	}
	m.Navigations.WithLabelValues(outcome).Inc()
}

// IncLabelOp counts a label read or write.
func (m *Metrics) IncLabelOp(op, result string) {
	if m == nil {
		return
	}
	m.LabelOps.WithLabelValues(op, result).Inc()
}

// IncImageResolution counts which image source answered.
func (m *Metrics) IncImageResolution(source string) {
	if m == nil {
		return
	}
	m.ImageResolutions.WithLabelValues(source).Inc()
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

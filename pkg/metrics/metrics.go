package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics коллектор метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	backendCallsTotal   *prometheus.CounterVec
	backendCallDuration *prometheus.HistogramVec

	bookingTransitionsTotal *prometheus.CounterVec
	bookingStepFailures     *prometheus.CounterVec
	orphanResourcesTotal    *prometheus.CounterVec
}

// New создает коллектор и регистрирует его в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает коллектор и регистрирует его в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests handled by the gateway",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests handled by the gateway",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		backendCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "backend_calls_total",
			Help:        "Total number of calls to the meeting backend",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),

		backendCallDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "backend_call_duration_seconds",
			Help:        "Duration of calls to the meeting backend",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		bookingTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_intent_transitions_total",
			Help:        "Booking intent state transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		bookingStepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_intent_step_failures_total",
			Help:        "Failed booking intent steps",
			ConstLabels: constLabels,
		}, []string{"step"}),

		orphanResourcesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "orphan_resources_total",
			Help:        "Upstream resources left behind by partially completed bookings",
			ConstLabels: constLabels,
		}, []string{"resource_type", "reason"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.backendCallsTotal,
		m.backendCallDuration,
		m.bookingTransitionsTotal,
		m.bookingStepFailures,
		m.orphanResourcesTotal,
	)

	return m
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) ObserveBackendCall(operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.backendCallsTotal.WithLabelValues(operation, outcome).Inc()
	m.backendCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) IncBookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.bookingTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *Metrics) IncBookingStepFailure(step string) {
	if m == nil {
		return
	}
	m.bookingStepFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) IncOrphanResource(resourceType, reason string) {
	if m == nil {
		return
	}
	m.orphanResourcesTotal.WithLabelValues(resourceType, reason).Inc()
}

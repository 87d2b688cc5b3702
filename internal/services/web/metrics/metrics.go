// Package metrics holds the Prometheus collectors of the web service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/louisbranch/portfolio-tracker/internal/services/web/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "portfolio_web"

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	GuardOutcomes      *prometheus.CounterVec
	ResolutionDuration *prometheus.HistogramVec
	CallbackExchanges  *prometheus.CounterVec
	BackendRequests    *prometheus.CounterVec
	BackendDuration    *prometheus.HistogramVec
	HandoffDeliveries  *prometheus.CounterVec
}

// New registers the web collectors, plus Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		GuardOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_outcomes_total",
			Help:      "Protected page requests by guard outcome",
		}, []string{"outcome"}),
		ResolutionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_resolution_duration_seconds",
			Help:      "Duration of backend session resolutions by result",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"status"}),
		CallbackExchanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "callback_exchanges_total",
			Help:      "OAuth callback token exchanges by outcome",
		}, []string{"outcome"}),
		BackendRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Backend API calls by operation and status class",
		}, []string{"op", "code"}),
		BackendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API call latency by operation",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		HandoffDeliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handoff_deliveries_total",
			Help:      "Handoff cookie lookups by result",
		}, []string{"result"}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveResolution records one backend session resolution.
func (m *Metrics) ObserveResolution(status session.Status, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ResolutionDuration.WithLabelValues(status.String()).Observe(elapsed.Seconds())
}

// ObserveGuard records the terminal outcome of one guarded request.
func (m *Metrics) ObserveGuard(outcome string) {
	if m == nil {
		return
	}
	m.GuardOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveExchange records one OAuth callback exchange outcome.
func (m *Metrics) ObserveExchange(outcome string) {
	if m == nil {
		return
	}
	m.CallbackExchanges.WithLabelValues(outcome).Inc()
}

// ObserveHandoff records whether a handoff cookie found its identity.
func (m *Metrics) ObserveHandoff(delivered bool) {
	if m == nil {
		return
	}
	result := "missed"
	if delivered {
		result = "delivered"
	}
	m.HandoffDeliveries.WithLabelValues(result).Inc()
}

// ObserveBackendCall records one backend API call. Status 0 means no response.
func (m *Metrics) ObserveBackendCall(op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(op, statusClass(status)).Inc()
	m.BackendDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	if status <= 0 {
		return "error"
	}
	return strconv.Itoa(status/100) + "xx"
}

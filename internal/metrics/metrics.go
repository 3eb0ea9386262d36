// Package metrics exposes Prometheus instrumentation for the timetable
// service. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "timetable"

// Metrics holds the registered collectors.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	persistFailures prometheus.Counter
	imports         *prometheus.CounterVec
	promoted        prometheus.Counter
	records         *prometheus.GaugeVec
}

// New registers the timetable collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mutations_total",
			Help:      "Applied record mutations by entity and operation",
		}, []string{"entity", "operation"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected mutations by error kind",
		}, []string{"kind"}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Snapshots that could not be written to storage",
		}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Import attempts by result",
		}, []string{"result"}),
		promoted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_auto_promoted_total",
			Help:      "Planned bookings promoted to present by the start-up sweep",
		}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Current number of records per collection",
		}, []string{"collection"}),
	}

	registry.MustRegister(
		m.requestDuration, m.requestTotal, m.mutations, m.rejections,
		m.persistFailures, m.imports, m.promoted, m.records,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestTotal.WithLabelValues(method, route, code).Inc()
	m.requestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
}

// RecordMutation counts an applied mutation, e.g. ("booking", "create").
func (m *Metrics) RecordMutation(entity, operation string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(entity, operation).Inc()
}

// RecordRejection counts a mutation refused with the given error kind.
func (m *Metrics) RecordRejection(kind string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(kind).Inc()
}

// RecordPersistFailure counts a failed snapshot write.
func (m *Metrics) RecordPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// RecordImport counts an import attempt.
func (m *Metrics) RecordImport(ok bool) {
	if m == nil {
		return
	}
	result := "applied"
	if !ok {
		result = "rejected"
	}
	m.imports.WithLabelValues(result).Inc()
}

// RecordAutoPromoted adds n promoted bookings.
func (m *Metrics) RecordAutoPromoted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.promoted.Add(float64(n))
}

// SetRecordCounts publishes the current collection sizes.
func (m *Metrics) SetRecordCounts(trainees, sessions, dayBookings int) {
	if m == nil {
		return
	}
	m.records.WithLabelValues("trainees").Set(float64(trainees))
	m.records.WithLabelValues("sessions").Set(float64(sessions))
	m.records.WithLabelValues("day_bookings").Set(float64(dayBookings))
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus метрик сервиса.
// Все метрики регистрируются в собственном реестре, чтобы New можно было
// вызывать несколько раз (например, в тестах).
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	BookingAdmissions *prometheus.CounterVec
	SyncAttempts      *prometheus.CounterVec
	SyncedBookings    *prometheus.CounterVec
	QueueDepth        prometheus.Gauge
	JobsDropped       prometheus.Counter
	Notifications     *prometheus.CounterVec
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool",
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use",
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_idle_connections",
			Help:      "Idle connections in the pool",
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),
		BookingAdmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "booking_admissions_total",
			Help:      "Booking admission decisions by result",
		}, []string{"action", "result"}),
		SyncAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "sheet_sync_attempts_total",
			Help:      "Attempts to push bookings to the spreadsheet",
		}, []string{"result"}),
		SyncedBookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "sheet_synced_bookings_total",
			Help:      "Bookings marked as synced by source",
		}, []string{"source"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "background_queue_depth",
			Help:      "Jobs waiting in the background dispatcher",
		}),
		JobsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "background_jobs_dropped_total",
			Help:      "Jobs dropped because the queue was full or stopped",
		}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "notifications_total",
			Help:      "Outbound emails by kind and result",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.BookingAdmissions,
		m.SyncAttempts,
		m.SyncedBookings,
		m.QueueDepth,
		m.JobsDropped,
		m.Notifications,
	)

	return m
}

// Handler отдает метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для чтения значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Ниже nil-safe хелперы: сервисы вызывают их без проверки, включены ли метрики

func (m *Metrics) ObserveAdmission(action, result string) {
	if m == nil {
		return
	}
	m.BookingAdmissions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ObserveSyncAttempt(result string) {
	if m == nil {
		return
	}
	m.SyncAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) AddSynced(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SyncedBookings.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}

func (m *Metrics) IncJobsDropped() {
	if m == nil {
		return
	}
	m.JobsDropped.Inc()
}

func (m *Metrics) ObserveNotification(kind, result string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(kind, result).Inc()
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов Prometheus сервиса.
// Все методы безопасно вызывать на nil (метрики выключены).
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	storeFetchesTotal *prometheus.CounterVec
	openDrafts        *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled by the service",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		upstreamRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetapi_requests_total",
			Help: "Total number of requests sent to the fleet API",
		}, []string{"service", "method", "endpoint", "status"}),
		upstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetapi_request_duration_seconds",
			Help:    "Fleet API request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "endpoint"}),
		storeFetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "store_fetches_total",
			Help: "Collection fetches by outcome (success, error, skipped, cancelled)",
		}, []string{"service", "collection", "outcome"}),
		openDrafts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "booking_drafts_open",
			Help: "Number of booking drafts currently open",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.upstreamRequestsTotal,
		m.upstreamRequestDuration,
		m.storeFetchesTotal,
		m.openDrafts,
	)

	return m
}

// ObserveHTTPRequest учитывает обработанный входящий запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveUpstream учитывает запрос к fleet API. status = 0 означает сетевую ошибку
func (m *Metrics) ObserveUpstream(method, endpoint string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	statusLabel := "error"
	if status > 0 {
		statusLabel = strconv.Itoa(status)
	}
	m.upstreamRequestsTotal.WithLabelValues(m.serviceName, method, endpoint, statusLabel).Inc()
	m.upstreamRequestDuration.WithLabelValues(m.serviceName, method, endpoint).Observe(duration.Seconds())
}

// IncStoreFetch учитывает исход загрузки коллекции
func (m *Metrics) IncStoreFetch(collection, outcome string) {
	if m == nil {
		return
	}
	m.storeFetchesTotal.WithLabelValues(m.serviceName, collection, outcome).Inc()
}

// SetOpenDrafts выставляет количество открытых черновиков
func (m *Metrics) SetOpenDrafts(n int) {
	if m == nil {
		return
	}
	m.openDrafts.WithLabelValues(m.serviceName).Set(float64(n))
}

package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
// Все методы безопасны для вызова на nil (метрики выключены)
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration    *prometheus.HistogramVec
	dbOpenConnections  *prometheus.GaugeVec
	dbInUseConnections *prometheus.GaugeVec
	dbIdleConnections  *prometheus.GaugeVec
	dbWaitCount        *prometheus.GaugeVec

	availabilityWarnings     *prometheus.CounterVec
	inventoryGuardRejections *prometheus.CounterVec
	reservationsCreated      *prometheus.CounterVec
	productCacheRequests     *prometheus.CounterVec
}

// New регистрирует метрики в глобальном prometheus registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном registry (используется в тестах)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),

		dbOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		dbInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		dbIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		availabilityWarnings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_availability_warnings_total",
			Help: "Number of availability shortfall warnings returned to operators",
		}, []string{"service"}),

		inventoryGuardRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_inventory_guard_rejections_total",
			Help: "Number of product edits rejected by the inventory guard",
		}, []string{"service", "reason"}),

		reservationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_reservations_created_total",
			Help: "Number of created reservations",
		}, []string{"service"}),

		productCacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rental_product_cache_requests_total",
			Help: "Product cache lookups by result",
		}, []string{"service", "result"}),
	}
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(stats.OpenConnections))
	m.dbInUseConnections.WithLabelValues(m.serviceName).Set(float64(stats.InUse))
	m.dbIdleConnections.WithLabelValues(m.serviceName).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(stats.WaitCount))
}

// AddAvailabilityWarnings увеличивает счетчик предупреждений о нехватке
func (m *Metrics) AddAvailabilityWarnings(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.availabilityWarnings.WithLabelValues(m.serviceName).Add(float64(n))
}

// IncInventoryGuardRejection увеличивает счетчик отклоненных изменений товара
func (m *Metrics) IncInventoryGuardRejection(reason string) {
	if m == nil {
		return
	}
	m.inventoryGuardRejections.WithLabelValues(m.serviceName, reason).Inc()
}

// IncReservationsCreated увеличивает счетчик созданных бронирований
func (m *Metrics) IncReservationsCreated() {
	if m == nil {
		return
	}
	m.reservationsCreated.WithLabelValues(m.serviceName).Inc()
}

// IncProductCache фиксирует попадание (hit=true) или промах кеша товаров
func (m *Metrics) IncProductCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.productCacheRequests.WithLabelValues(m.serviceName, result).Inc()
}

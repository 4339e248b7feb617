package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbPoolStats     *prometheus.GaugeVec

	bookingTransitionsTotal *prometheus.CounterVec
	capacityRejectionsTotal *prometheus.CounterVec
	notificationsTotal      *prometheus.CounterVec
	checkinCodesIssuedTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(service string) *Metrics {
	return &Metrics{
		service: service,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation", "success"}),

		dbPoolStats: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_stats",
			Help: "Database connection pool statistics",
		}, []string{"service", "stat"}),

		bookingTransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_transitions_total",
			Help: "Total number of committed booking status transitions",
		}, []string{"service", "from", "to"}),

		capacityRejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_capacity_rejections_total",
			Help: "Total number of bookings rejected by the capacity check",
		}, []string{"service"}),

		notificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notifications_total",
			Help: "Total number of dispatched booking notifications",
		}, []string{"service", "kind", "outcome"}),

		checkinCodesIssuedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_checkin_codes_issued_total",
			Help: "Total number of issued check-in codes",
		}, []string{"service"}),
	}
}

// ObserveRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.service, method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery записывает метрики запроса к БД
func (m *Metrics) ObserveDBQuery(service, operation string, duration time.Duration, success bool) {
	m.dbQueryDuration.WithLabelValues(service, operation, strconv.FormatBool(success)).Observe(duration.Seconds())
}

// SetDBPoolStat записывает значение статистики connection pool
func (m *Metrics) SetDBPoolStat(service, stat string, value float64) {
	m.dbPoolStats.WithLabelValues(service, stat).Set(value)
}

// IncTransition инкрементирует счетчик переходов статусов
func (m *Metrics) IncTransition(from, to string) {
	m.bookingTransitionsTotal.WithLabelValues(m.service, from, to).Inc()
}

// IncCapacityRejection инкрементирует счетчик отказов по вместимости
func (m *Metrics) IncCapacityRejection() {
	m.capacityRejectionsTotal.WithLabelValues(m.service).Inc()
}

// IncNotification инкрементирует счетчик отправленных уведомлений
func (m *Metrics) IncNotification(kind, outcome string) {
	m.notificationsTotal.WithLabelValues(m.service, kind, outcome).Inc()
}

// IncCheckinCodeIssued инкрементирует счетчик выданных кодов визита
func (m *Metrics) IncCheckinCodeIssued() {
	m.checkinCodesIssuedTotal.WithLabelValues(m.service).Inc()
}

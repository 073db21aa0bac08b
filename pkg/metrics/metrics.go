package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллектор прометеус-метрик сервиса
// HTTP-метрики пишутся из middleware, DB-метрики из dbmetrics,
// метрики поиска вариантов - из координатора поиска
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbPoolOpenConns *prometheus.GaugeVec
	dbPoolInUse     *prometheus.GaugeVec
	dbPoolIdle      *prometheus.GaugeVec

	searchesIssued     *prometheus.CounterVec
	searchesSuperseded *prometheus.CounterVec
	searchesSettled    *prometheus.CounterVec
}

// New создает и регистрирует коллектор метрик
// Для production используется prometheus.DefaultRegisterer,
// в тестах передается отдельный prometheus.NewRegistry()
func New(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbPoolOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbPoolInUse: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		dbPoolIdle: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),

		searchesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "option_searches_issued_total",
			Help:        "Total number of availability option searches sent to the resolver",
			ConstLabels: constLabels,
		}, []string{}),

		searchesSuperseded: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "option_searches_superseded_total",
			Help:        "Total number of option searches cancelled by a newer trigger",
			ConstLabels: constLabels,
		}, []string{}),

		searchesSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "option_searches_settled_total",
			Help:        "Total number of settled option searches by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, path, status string, durationSeconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, durationSeconds float64) {
	m.dbQueryDuration.WithLabelValues(operation).Observe(durationSeconds)
}

// SetDBPoolStats записывает состояние connection pool
func (m *Metrics) SetDBPoolStats(dbName string, open, inUse, idle int) {
	m.dbPoolOpenConns.WithLabelValues(dbName).Set(float64(open))
	m.dbPoolInUse.WithLabelValues(dbName).Set(float64(inUse))
	m.dbPoolIdle.WithLabelValues(dbName).Set(float64(idle))
}

// IncSearchIssued увеличивает счетчик отправленных поисков
func (m *Metrics) IncSearchIssued() {
	m.searchesIssued.WithLabelValues().Inc()
}

// IncSearchSuperseded увеличивает счетчик отмененных поисков
func (m *Metrics) IncSearchSuperseded() {
	m.searchesSuperseded.WithLabelValues().Inc()
}

// IncSearchSettled увеличивает счетчик завершенных поисков по исходу
func (m *Metrics) IncSearchSettled(outcome string) {
	m.searchesSettled.WithLabelValues(outcome).Inc()
}

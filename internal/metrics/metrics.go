// metrics — prometheus-метрики headlines на собственном реестре.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "headlines"

// Metrics — набор коллекторов процесса.
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
	httpTotal     *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New регистрирует коллекторы в новом реестре.
// withRuntime добавляет стандартные go_* и process_* метрики.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "newsapi",
			Name:      "requests_total",
			Help:      "Requests to newsapi.org by endpoint and result (ok or error kind).",
		}, []string{"endpoint", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "newsapi",
			Name:      "request_duration_seconds",
			Help:      "Duration of newsapi.org requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		httpTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Handled HTTP requests by route pattern and status code.",
		}, []string{"method", "route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of handled HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	m.registry.MustRegister(m.fetchTotal, m.fetchDuration, m.httpTotal, m.httpDuration)
	if withRuntime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// ObserveFetch учитывает один запрос к newsapi.
func (m *Metrics) ObserveFetch(endpoint, result string, dur time.Duration) {
	m.fetchTotal.WithLabelValues(endpoint, result).Inc()
	m.fetchDuration.WithLabelValues(endpoint).Observe(dur.Seconds())
}

// ObserveHTTP учитывает один обработанный HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, code int, dur time.Duration) {
	if route == "" {
		route = "unmatched"
	}

	m.httpTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}

// Registry — реестр для тестов и дополнительных коллекторов.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler отдаёт метрики реестра в формате exposition.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

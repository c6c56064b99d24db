// Package metrics собирает метрики Prometheus по поставщикам и поиску.
// Все методы безопасны для nil-получателя.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry         *prometheus.Registry
	providerRequests *prometheus.CounterVec
	providerArticles *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	fallbacks        prometheus.Counter
	searchRequests   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_provider_requests_total",
			Help: "Provider searches by outcome status.",
		}, []string{"provider", "status"}),
		providerArticles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_provider_articles_total",
			Help: "Articles returned by providers.",
		}, []string{"provider"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "monitor_provider_duration_seconds",
			Help:    "Provider search latency.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8},
		}, []string{"provider"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "monitor_fallback_total",
			Help: "Aggregations answered with synthetic articles.",
		}),
		searchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "monitor_search_requests_total",
			Help: "Search API requests by HTTP status.",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		m.providerRequests,
		m.providerArticles,
		m.providerDuration,
		m.fallbacks,
		m.searchRequests,
	)
	return m
}

func (m *Metrics) ObserveProvider(provider, status string, articles int, d time.Duration) {
	if m == nil {
		return
	}
	m.providerRequests.WithLabelValues(provider, status).Inc()
	m.providerArticles.WithLabelValues(provider).Add(float64(articles))
	m.providerDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) Fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) SearchRequest(status string) {
	if m == nil {
		return
	}
	m.searchRequests.WithLabelValues(status).Inc()
}

// Handler отдаёт метрики в формате экспозиции Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Collectors нужен тестам для prometheus/testutil.
func (m *Metrics) Collectors() (requests, articles *prometheus.CounterVec, fallbacks prometheus.Counter) {
	return m.providerRequests, m.providerArticles, m.fallbacks
}

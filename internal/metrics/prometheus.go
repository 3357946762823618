package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paperdesk"

// PrometheusRecorder implements Recorder on a dedicated Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	authAttempts     *prometheus.CounterVec
	searches         *prometheus.CounterVec
	searchCache      *prometheus.CounterVec
	summaries        *prometheus.CounterVec
	chats            *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

// NewPrometheus creates a recorder with its own registry, including the Go
// runtime and process collectors.
func NewPrometheus() *PrometheusRecorder {
	reg := prometheus.NewRegistry()

	p := &PrometheusRecorder{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"method", "route"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Registration, login and api key updates by outcome",
		}, []string{"kind", "status"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Paper searches by outcome",
		}, []string{"status"}),
		searchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_lookups_total",
			Help:      "Search cache lookups by result",
		}, []string{"result"}),
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Paper summaries by outcome (generated or fallback)",
		}, []string{"outcome"}),
		chats: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chats_total",
			Help:      "Chat requests by outcome",
		}, []string{"status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of calls to arXiv and the language model provider",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"upstream"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.httpRequests,
		p.httpDuration,
		p.authAttempts,
		p.searches,
		p.searchCache,
		p.summaries,
		p.chats,
		p.upstreamDuration,
	)

	return p
}

// Handler serves the registry in Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (p *PrometheusRecorder) Registry() *prometheus.Registry {
	return p.registry
}

// ObserveHTTPRequest records a served request.
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncAuthAttempt increments the auth counter.
func (p *PrometheusRecorder) IncAuthAttempt(kind, status string) {
	p.authAttempts.WithLabelValues(kind, status).Inc()
}

// IncSearch increments the search counter.
func (p *PrometheusRecorder) IncSearch(status string) {
	p.searches.WithLabelValues(status).Inc()
}

// IncSearchCache increments the cache lookup counter.
func (p *PrometheusRecorder) IncSearchCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.searchCache.WithLabelValues(result).Inc()
}

// IncSummary increments the summary counter.
func (p *PrometheusRecorder) IncSummary(outcome string) {
	p.summaries.WithLabelValues(outcome).Inc()
}

// IncChat increments the chat counter.
func (p *PrometheusRecorder) IncChat(status string) {
	p.chats.WithLabelValues(status).Inc()
}

// ObserveUpstreamDuration records upstream latency.
func (p *PrometheusRecorder) ObserveUpstreamDuration(upstream string, duration time.Duration) {
	p.upstreamDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

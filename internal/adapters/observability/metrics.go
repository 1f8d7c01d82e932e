package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agendesaude", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "agendesaude", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	StoreEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "agendesaude", Name: "store_events_total", Help: "Collection store saves, loads, backup fallbacks, corruptions."},
		[]string{"collection", "event"}, // event: save|load|backup_fallback|corrupt|default
	)
	RatingRecomputes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "agendesaude", Name: "rating_recomputes_total", Help: "Clinic average-rating recomputations."},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "agendesaude", Name: "rate_limited_total", Help: "Requests rejected by the rate limiter."},
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, StoreEvents, RatingRecomputes, RateLimited)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveStore(collection, event string) { // event: save|load|backup_fallback|corrupt|default
	StoreEvents.WithLabelValues(collection, event).Inc()
}

func ObserveRecompute() { RatingRecomputes.Inc() }

package metrics

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// CacheLookups counts prayer-time lookups by how they were answered
	// (hit, miss, stale_fallback, unavailable).
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solat_cache_lookups_total",
			Help: "Prayer time lookups by result",
		},
		[]string{"result"},
	)

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solat_upstream_requests_total",
			Help: "Requests to the prayer time API by outcome",
		},
		[]string{"outcome"},
	)

	UpstreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solat_upstream_duration_seconds",
			Help:    "Prayer time API latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PushesTotal counts display refresh pushes by outcome (sent, unchanged, error).
	PushesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solat_display_pushes_total",
			Help: "Prayer time pushes to displays by outcome",
		},
		[]string{"outcome"},
	)
)

var (
	idPathSegment = regexp.MustCompile(`/([0-9]+|[0-9a-fA-F-]{36}|\d{4}-\d{2}-\d{2})(/|$)`)
	initOnce      sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, CacheLookups, UpstreamRequests, UpstreamDuration, PushesTotal)
	})
}

// NormalizePath reduces cardinality by replacing ids and dates with {id}.
// E.g. /api/tv/displays/42/prayer-times -> /api/tv/displays/{id}/prayer-times.
func NormalizePath(path string) string {
	return idPathSegment.ReplaceAllString(path, "/{id}$2")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, duration time.Duration) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// ObserveCacheLookup counts one prayer-time lookup result.
func ObserveCacheLookup(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}

// ObserveUpstream records one call to the prayer-time API.
func ObserveUpstream(outcome string, d time.Duration) {
	UpstreamRequests.WithLabelValues(outcome).Inc()
	UpstreamDuration.Observe(d.Seconds())
}

// ObservePush counts one display push outcome.
func ObservePush(outcome string) {
	PushesTotal.WithLabelValues(outcome).Inc()
}

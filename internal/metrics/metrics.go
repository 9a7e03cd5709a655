package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceDatabase    = "database"
	SourceFallback    = "fallback"
	SourceUnavailable = "unavailable"
)

var (
	carouselResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podcast_carousel_resolutions_total",
		Help: "Carousel resolutions by source",
	}, []string{"source"}) // source=database|fallback|unavailable

	catalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podcast_catalog_requests_total",
		Help: "YouTube Data API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"}) // outcome=success|failure

	catalogLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "podcast_catalog_request_duration_seconds",
		Help:    "YouTube Data API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	catalogCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podcast_catalog_cache_total",
		Help: "Catalog cache lookups by result",
	}, []string{"kind", "result"}) // result=hit|miss|error

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podcast_admin_login_attempts_total",
		Help: "Admin PIN login attempts by outcome",
	}, []string{"outcome"})

	slotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "podcast_carousel_slot_writes_total",
		Help: "Bulk carousel slot updates by outcome",
	}, []string{"outcome"}) // outcome=success|invalid|failure

	liveClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "podcast_carousel_live_clients",
		Help: "Connected carousel websocket clients",
	})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "podcast_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func RecordCarouselResolution(source string) {
	carouselResolutions.WithLabelValues(source).Inc()
}

func RecordCatalogRequest(endpoint string, err error, elapsed time.Duration) {
	catalogLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	catalogRequests.WithLabelValues(endpoint, outcome(err)).Inc()
}

func RecordCacheLookup(kind, result string) {
	catalogCache.WithLabelValues(kind, result).Inc()
}

func RecordLogin(success bool) {
	if success {
		loginAttempts.WithLabelValues("success").Inc()
		return
	}
	loginAttempts.WithLabelValues("failure").Inc()
}

func RecordSlotWrite(result string) {
	slotWrites.WithLabelValues(result).Inc()
}

func SetLiveClients(n int) {
	liveClients.Set(float64(n))
}

// ObserveHTTPRequest records one served request. route must be the router
// pattern, not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

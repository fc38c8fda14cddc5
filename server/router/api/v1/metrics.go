package v1

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idiombridge_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idiombridge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Language identification metrics
	resolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idiombridge_resolutions_total",
			Help: "Total number of language resolutions by method",
		},
		[]string{"method", "language"},
	)

	detectorLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idiombridge_detector_latency_seconds",
			Help:    "External detector round-trip latency in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"provider"},
	)

	equivalentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idiombridge_equivalents_requests_total",
			Help: "Total number of idiom equivalent requests",
		},
		[]string{"status"},
	)

	ttsFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idiombridge_tts_fetches_total",
			Help: "Total number of text-to-speech audio fetches",
		},
		[]string{"status"},
	)
)

// Package metrics owns the prometheus registry and the HTTP request metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry collects all application metrics
var Registry = prometheus.NewRegistry()

var (
	// RequestCount counts handled HTTP requests by method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "postcard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Number of HTTP requests handled.",
		},
		[]string{"method", "status"},
	)

	// RequestDuration observes request handling latency by method
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "postcard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request handling latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(RequestCount, RequestDuration)
}

// Handler returns the HTTP handler exposing the registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's Prometheus collectors. Each Server owns its
// own registry so tests can spin up servers side by side without
// duplicate-registration errors.
type metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	generations     prometheus.Counter
	generateSeconds prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lich_http_requests_total",
			Help: "Total number of HTTP requests handled",
		}, []string{"method", "route", "status"}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lich_schedule_generations_total",
			Help: "Total number of month schedules generated",
		}),
		generateSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lich_schedule_generation_seconds",
			Help:    "Time spent generating one month schedule",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.httpRequests, m.generations, m.generateSeconds)
	return m
}

// handler serves the registry in the Prometheus text format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

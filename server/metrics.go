package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	resultSize  prometheus.Histogram
	filterFails prometheus.Counter
}

// newMetrics uses a private registry so several servers can coexist in one process.
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nmind",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"}),
		resultSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nmind",
			Name:      "search_result_libraries",
			Help:      "Number of libraries returned per search.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
		filterFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nmind",
			Name:      "search_failures_total",
			Help:      "Searches aborted by a section-tier filter error.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.resultSize,
		m.filterFails,
		collectors.NewGoCollector(),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

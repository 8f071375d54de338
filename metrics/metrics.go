// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flavorgraph",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"route", "code"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flavorgraph",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	SearchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "flavorgraph",
		Name:      "search_duration_seconds",
		Help:      "Time spent in each recommendation strategy.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"strategy"})

	SearchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "flavorgraph",
		Name:      "backtracking_nodes",
		Help:      "Partial combinations visited per backtracking search.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	Suggestions = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "flavorgraph",
		Name:      "suggestions_returned",
		Help:      "Recipes returned per recommendation.",
		Buckets:   prometheus.LinearBuckets(0, 5, 10),
	})

	GraphVertices = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "flavorgraph",
		Name:      "graph_vertices",
		Help:      "Vertices in the ingredient graph by kind.",
	}, []string{"kind"})

	GraphRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "flavorgraph",
		Name:      "graph_rebuilds_total",
		Help:      "Ingredient graph rebuilds by outcome.",
	}, []string{"outcome"})
)

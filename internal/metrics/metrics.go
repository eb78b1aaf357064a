package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "railquery_queries_total",
		Help: "Total number of queries served, labelled by kind and outcome.",
	}, []string{"kind", "status"})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "railquery_query_duration_ms",
		Help:    "Query execution latency in milliseconds, cache misses only.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100},
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railquery_cache_hits_total",
		Help: "Total number of query results served from the result cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railquery_cache_misses_total",
		Help: "Total number of queries computed against the graph.",
	})

	GraphRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "railquery_graph_rebuilds_total",
		Help: "Total number of times the graph was rebuilt from its source.",
	})

	GraphStations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "railquery_graph_stations",
		Help: "Number of stations with outgoing edges in the current graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "railquery_graph_edges",
		Help: "Number of directed edges in the current graph.",
	})
)

// Package metrics provides Prometheus metrics for the collection tracker.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Import row outcomes.
const (
	OutcomeImported      = "imported"
	OutcomeSkippedByDate = "skipped_by_date"
	OutcomeRejected      = "rejected"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tcg_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Import Metrics
	ImportRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_import_rows_total",
			Help: "Import rows processed by outcome",
		},
		[]string{"outcome"}, // "imported", "skipped_by_date", "rejected"
	)

	ImportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tcg_import_runs_total",
			Help: "Import runs by result",
		},
		[]string{"result"}, // "completed", "failed"
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tcg_import_duration_seconds",
			Help:    "Time taken to process one import run",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// Catalog Metrics
	CatalogCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_catalog_cache_hits_total",
			Help: "Per-set card list cache hit count",
		},
	)

	CatalogCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tcg_catalog_cache_misses_total",
			Help: "Per-set card list cache miss count",
		},
	)

	// Collection Metrics
	CollectionCardsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tcg_collection_cards_total",
			Help: "Total number of cards in collection",
		},
	)
)

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdex",
			Name:      "search_outcomes_total",
			Help:      "Total number of catalog searches by outcome",
		},
		[]string{"kind"}, // not_found / single / multiple / error
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "vetdex",
			Name:      "search_duration_seconds",
			Help:      "Catalog scan duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	QueryCategoriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdex",
			Name:      "query_categories_total",
			Help:      "Requested information categories",
		},
		[]string{"category"},
	)

	ContraindicationWarningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdex",
			Name:      "contraindication_warnings_total",
			Help:      "Answers replaced by a contraindication warning",
		},
		[]string{"animal"},
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vetdex",
			Name:      "catalog_records",
			Help:      "Number of drug records loaded",
		},
	)
)

// Normalizer Prometheus metrics.
var (
	NormalizerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdex",
			Name:      "normalizer_requests_total",
			Help:      "Total number of normalizer requests",
		},
		[]string{"driver", "status"},
	)

	NormalizerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vetdex",
			Name:      "normalizer_request_duration_seconds",
			Help:      "Normalizer request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"driver"},
	)

	NormalizerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vetdex",
			Name:      "normalizer_cache_total",
			Help:      "Normalizer cache lookups",
		},
		[]string{"result"}, // hit / miss
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search and normalizer metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchOutcomesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(QueryCategoriesTotal)
	prometheus.MustRegister(ContraindicationWarningsTotal)
	prometheus.MustRegister(CatalogRecords)
	prometheus.MustRegister(NormalizerRequestsTotal)
	prometheus.MustRegister(NormalizerRequestDuration)
	prometheus.MustRegister(NormalizerCacheTotal)
	searchMetricsRegistered = true
}

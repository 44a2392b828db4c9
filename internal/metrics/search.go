package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search metrics, registered explicitly from main (no init()).
var (
	// AggregationsTotal counts completed search aggregations by outcome.
	AggregationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "laterd",
			Name:      "search_aggregations_total",
			Help:      "Completed search aggregations by outcome (ok, error, short_circuit)",
		},
		[]string{"outcome"},
	)

	// AggregationDuration observes end-to-end aggregation latency.
	AggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "laterd",
			Name:      "search_aggregation_duration_seconds",
			Help:      "Search aggregation duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// BackendQueriesTotal counts per-kind backend sub-queries.
	BackendQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "laterd",
			Name:      "search_backend_queries_total",
			Help:      "Backend sub-queries issued, by content kind",
		},
		[]string{"kind"},
	)

	// NormalizationSkipsTotal counts rows dropped for broken parent linkage.
	NormalizationSkipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "laterd",
			Name:      "search_normalization_skips_total",
			Help:      "Rows dropped during normalization, by content kind",
		},
		[]string{"kind"},
	)

	// StaleResultsTotal counts superseded aggregation results discarded
	// by live search controllers.
	StaleResultsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "laterd",
			Name:      "search_stale_results_total",
			Help:      "Aggregation results discarded because a newer query superseded them",
		},
	)

	// LiveSessionsActive gauges open live search sessions.
	LiveSessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "laterd",
			Name:      "search_live_sessions_active",
			Help:      "Currently open live search sessions",
		},
	)
)

// RegisterSearchMetrics registers the search metric set. Call once at startup.
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		AggregationsTotal,
		AggregationDuration,
		BackendQueriesTotal,
		NormalizationSkipsTotal,
		StaleResultsTotal,
		LiveSessionsActive,
	)
}

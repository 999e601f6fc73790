package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report derivation engine.
type Metrics struct {
	ReportsComputed *prometheus.CounterVec   // labels: pipeline={fire,climate,recovery}
	ComputeDuration *prometheus.HistogramVec // labels: pipeline
	CacheLookups    *prometheus.CounterVec   // labels: pipeline, result={hit,miss}
	DatasetRows     *prometheus.GaugeVec     // labels: dataset={fires,climate,destroyed,recovered}
	DataLoaded      prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ReportsComputed,
		m.ComputeDuration,
		m.CacheLookups,
		m.DatasetRows,
		m.DataLoaded,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		ReportsComputed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fire_report",
			Name:      "reports_computed_total",
			Help:      "Total report derivations by pipeline.",
		}, []string{"pipeline"}),
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fire_report",
			Name:      "compute_duration_seconds",
			Help:      "Duration of a full pipeline derivation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}, []string{"pipeline"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fire_report",
			Name:      "cache_lookups_total",
			Help:      "Derived-result cache lookups by pipeline and result.",
		}, []string{"pipeline", "result"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fire_report",
			Name:      "dataset_rows",
			Help:      "Row counts of the loaded source datasets.",
		}, []string{"dataset"}),
		DataLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fire_report",
			Name:      "data_loaded",
			Help:      "1 once all source datasets are loaded.",
		}),
	}
}

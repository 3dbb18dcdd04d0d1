// Package metrics provides the Prometheus metrics registry for the simulator.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spread_sim"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulations_total",
		Help:      "Total number of simulation requests by status",
	}, []string{"status"})
	SamplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "samples_total",
		Help:      "Total number of simulated margins",
	})
	EdgeSignalsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edge_signals_total",
		Help:      "Market line comparisons by signal",
	}, []string{"signal"})
	SeasonLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "season_loads_total",
		Help:      "Season statistics loads by source and status",
	}, []string{"source", "status"})
	SeasonCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "season_cache_hits_total",
		Help:      "Season cache hits",
	})
	SeasonCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "season_cache_misses_total",
		Help:      "Season cache misses",
	})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
	ModelSpread = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_spread_points",
		Help:      "Distribution of model spreads in points",
		Buckets:   prometheus.LinearBuckets(-21, 3, 15),
	})
	SeasonLoadDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "season_load_duration_seconds",
		Help:      "Duration of season statistics loads in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(SamplesTotal)
		registry.MustRegister(EdgeSignalsTotal)
		registry.MustRegister(SeasonLoadsTotal)
		registry.MustRegister(SeasonCacheHitsTotal)
		registry.MustRegister(SeasonCacheMissesTotal)

		registry.MustRegister(SimulationDuration)
		registry.MustRegister(ModelSpread)
		registry.MustRegister(SeasonLoadDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSimulation records a finished simulation run.
// status should be one of: "success", "rejected", "failure"
func RecordSimulation(status string, samples int, modelSpread, durationSeconds float64) {
	SimulationsTotal.WithLabelValues(status).Inc()
	if status != "success" {
		return
	}
	SamplesTotal.Add(float64(samples))
	ModelSpread.Observe(modelSpread)
	SimulationDuration.Observe(durationSeconds)
}

// RecordEdgeSignal records a market line comparison.
func RecordEdgeSignal(signal string) {
	EdgeSignalsTotal.WithLabelValues(signal).Inc()
}

// RecordSeasonLoad records a season statistics load.
func RecordSeasonLoad(source, status string, durationSeconds float64) {
	SeasonLoadsTotal.WithLabelValues(source, status).Inc()
	SeasonLoadDuration.WithLabelValues(source).Observe(durationSeconds)
}

// RecordSeasonCacheHit records a season cache hit.
func RecordSeasonCacheHit() {
	SeasonCacheHitsTotal.Inc()
}

// RecordSeasonCacheMiss records a season cache miss.
func RecordSeasonCacheMiss() {
	SeasonCacheMissesTotal.Inc()
}

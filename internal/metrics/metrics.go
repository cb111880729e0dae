package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// CalculationDuration tracks how long each analysis operation takes
	CalculationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskprofile_calculation_duration_seconds",
			Help:    "Duration of risk analysis operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
		[]string{"operation"},
	)

	// CalculationErrors counts failed analysis operations by error kind
	CalculationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskprofile_calculation_errors_total",
			Help: "Total number of failed risk analysis operations",
		},
		[]string{"operation", "kind"},
	)

	// ProfileCacheLookups counts active-profile cache hits and misses
	ProfileCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskprofile_profile_cache_lookups_total",
			Help: "Active risk profile cache lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(CalculationDuration, CalculationErrors, ProfileCacheLookups)
}

// Handler exposes the default registry for scraping
func Handler() http.Handler {
	return promhttp.Handler()
}

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_predictions_total",
			Help: "Total number of predictions served, by bucket",
		},
		[]string{"bucket"},
	)

	PredictionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scoring_prediction_errors_total",
			Help: "Total number of failed prediction requests, by error code",
		},
		[]string{"error_code"},
	)

	PredictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "scoring_prediction_duration_seconds",
			Help: "Duration of prediction request handling in seconds",
		},
		[]string{"status"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scoring_requests_in_flight",
			Help: "Number of prediction requests currently being handled",
		},
	)
)

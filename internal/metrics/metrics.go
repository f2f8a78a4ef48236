package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "machine_health",
			Subsystem: "predict",
			Name:      "predictions_total",
			Help:      "Completed predictions by machine type and condition level",
		},
		[]string{"machine_type", "condition_level"},
	)

	ScoringFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "machine_health",
			Subsystem: "predict",
			Name:      "failures_total",
			Help:      "Rejected prediction requests by reason",
		},
		[]string{"reason"},
	)

	TelemetrySamples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "machine_health",
			Subsystem: "telemetry",
			Name:      "samples_total",
			Help:      "Ingested temperature samples by machine type",
		},
		[]string{"machine_type"},
	)

	StaleSensors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "machine_health",
			Subsystem: "telemetry",
			Name:      "stale_sensors",
			Help:      "Machines whose latest temperature sample is older than the configured max age",
		},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(PredictionsTotal, ScoringFailures, TelemetrySamples, StaleSensors)
	})
}

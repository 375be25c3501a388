package metrics

import "github.com/prometheus/client_golang/prometheus"

// Custom field Prometheus metrics.
var (
	DefinitionsSavedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "customfields",
			Name:      "definitions_saved_total",
			Help:      "Custom field definition save attempts by outcome",
		},
		[]string{"result"}, // "saved" / "invalid" / "error"
	)

	RegistrationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "customfields",
			Name:      "registrations_total",
			Help:      "Accessor registrations by target kind and status",
		},
		[]string{"kind", "status"}, // status: "ok" / "collision" / "error"
	)

	RegistrationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "customfields",
			Name:      "registration_duration_seconds",
			Help:      "Duration of a full registration pass in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

var registered bool

// Register registers custom field metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(DefinitionsSavedTotal)
	prometheus.MustRegister(RegistrationsTotal)
	prometheus.MustRegister(RegistrationDuration)
	registered = true
}

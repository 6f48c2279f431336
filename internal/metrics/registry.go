package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registryOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "claimvault",
		Subsystem: "registry",
		Name:      "operations_total",
		Help:      "Count of claim registry operations.",
	}, []string{"operation", "status"})
	registryOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "claimvault",
		Subsystem: "registry",
		Name:      "operation_duration_seconds",
		Help:      "Duration of claim registry operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// Registry records claim registry operation outcomes.
type Registry struct{}

// NewRegistry returns a registry recorder.
func NewRegistry() *Registry {
	return &Registry{}
}

// Observe records one registry operation.
func (m *Registry) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	registryOperationsTotal.WithLabelValues(operation, status).Inc()
	registryOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// Package metrics exposes Prometheus instrumentation for registry and
// repository operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	claimRepoOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "claimvault",
		Subsystem: "claim_repository",
		Name:      "operations_total",
		Help:      "Count of claim repository operations.",
	}, []string{"operation", "status"})
	claimRepoOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "claimvault",
		Subsystem: "claim_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of claim repository operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "status"})
)

// ClaimRepository records claim store operation outcomes.
type ClaimRepository struct{}

// NewClaimRepository returns a claim repository recorder.
func NewClaimRepository() *ClaimRepository {
	return &ClaimRepository{}
}

// Observe records one repository operation.
func (m *ClaimRepository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	claimRepoOperationsTotal.WithLabelValues(operation, status).Inc()
	claimRepoOperationDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

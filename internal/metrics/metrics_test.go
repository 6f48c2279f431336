package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func delta(t *testing.T, collector prometheus.Collector, observe func()) float64 {
	t.Helper()

	before := testutil.ToFloat64(collector)
	observe()
	after := testutil.ToFloat64(collector)
	return after - before
}

func TestClaimRepositoryObserve(t *testing.T) {
	m := NewClaimRepository()
	started := time.Now().Add(-time.Second)

	if inc := delta(t, claimRepoOperationsTotal.WithLabelValues("insert_claim", "success"), func() {
		m.Observe("insert_claim", nil, started)
	}); inc != 1 {
		t.Fatalf("expected success counter increment, got %v", inc)
	}

	if inc := delta(t, claimRepoOperationsTotal.WithLabelValues("get_claim", "error"), func() {
		m.Observe("get_claim", errors.New("boom"), started)
	}); inc != 1 {
		t.Fatalf("expected error counter increment, got %v", inc)
	}
}

func TestRegistryObserve(t *testing.T) {
	m := NewRegistry()
	started := time.Now().Add(-500 * time.Millisecond)

	if inc := delta(t, registryOperationsTotal.WithLabelValues("submit_claim", "success"), func() {
		m.Observe("submit_claim", nil, started)
	}); inc != 1 {
		t.Fatalf("expected success counter increment, got %v", inc)
	}

	if inc := delta(t, registryOperationsTotal.WithLabelValues("update_claim_status", "error"), func() {
		m.Observe("update_claim_status", errors.New("fail"), started)
	}); inc != 1 {
		t.Fatalf("expected error counter increment, got %v", inc)
	}
}

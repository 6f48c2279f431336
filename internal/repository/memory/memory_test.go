package memory

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

func testClaim(id uint64, customerID string, amount int64) model.Claim {
	return model.Claim{
		ClaimID:        id,
		CustomerIDHash: model.HashCustomerID(customerID),
		Amount:         big.NewInt(amount),
		ClaimDate:      time.Unix(1700000000, 0).UTC(),
		Status:         model.StatusSubmitted,
	}
}

func TestStoreInsertAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	if _, ok, err := s.GetClaim(ctx, 1); err != nil || ok {
		t.Fatalf("empty store lookup: ok=%v err=%v", ok, err)
	}

	claim := testClaim(1, "alice", 100)
	if err := s.InsertClaim(ctx, claim); err != nil {
		t.Fatalf("InsertClaim error: %v", err)
	}
	if err := s.InsertClaim(ctx, claim); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}

	got, ok, err := s.GetClaim(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("GetClaim: ok=%v err=%v", ok, err)
	}
	if got.ClaimID != 1 || got.Amount.Cmp(claim.Amount) != 0 || got.Status != model.StatusSubmitted {
		t.Fatalf("unexpected claim: %+v", got)
	}

	// The store must hold its own copy of the amount.
	got.Amount.SetInt64(999)
	again, _, _ := s.GetClaim(ctx, 1)
	if again.Amount.Cmp(big.NewInt(100)) != 0 {
		t.Fatal("store amount aliased to caller value")
	}
}

func TestStoreUpdateClaimStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	claim := testClaim(1, "alice", 100)
	if err := s.UpdateClaimStatus(ctx, claim); err == nil {
		t.Fatal("expected update of missing claim to fail")
	}

	if err := s.InsertClaim(ctx, claim); err != nil {
		t.Fatalf("InsertClaim error: %v", err)
	}
	claim.Status = model.StatusApproved
	if err := s.UpdateClaimStatus(ctx, claim); err != nil {
		t.Fatalf("UpdateClaimStatus error: %v", err)
	}

	got, _, _ := s.GetClaim(ctx, 1)
	if got.Status != model.StatusApproved {
		t.Fatalf("status not updated: %v", got.Status)
	}
}

func TestStoreClaimsByCustomerHash(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	for i, customer := range []string{"alice", "bob", "alice", "alice"} {
		if err := s.InsertClaim(ctx, testClaim(uint64(i+1), customer, int64(10*(i+1)))); err != nil {
			t.Fatalf("InsertClaim error: %v", err)
		}
	}

	claims, err := s.ClaimsByCustomerHash(ctx, model.HashCustomerID("alice"))
	if err != nil {
		t.Fatalf("ClaimsByCustomerHash error: %v", err)
	}
	if len(claims) != 3 {
		t.Fatalf("expected 3 claims, got %d", len(claims))
	}
	for i, want := range []uint64{1, 3, 4} {
		if claims[i].ClaimID != want {
			t.Fatalf("claims out of order: %+v", claims)
		}
	}

	claims, err = s.ClaimsByCustomerHash(ctx, model.HashCustomerID("nobody"))
	if err != nil {
		t.Fatalf("ClaimsByCustomerHash error: %v", err)
	}
	if len(claims) != 0 {
		t.Fatalf("expected no claims, got %d", len(claims))
	}
}

func TestStoreMaxClaimID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	if _, ok, err := s.MaxClaimID(ctx); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	for _, id := range []uint64{1, 2, 3, 7} {
		if err := s.InsertClaim(ctx, testClaim(id, "alice", 10)); err != nil {
			t.Fatalf("InsertClaim error: %v", err)
		}
	}

	maxID, ok, err := s.MaxClaimID(ctx)
	if err != nil || !ok {
		t.Fatalf("MaxClaimID: ok=%v err=%v", ok, err)
	}
	if maxID != 7 {
		t.Fatalf("got max id %d, want 7", maxID)
	}
}

func TestStoreClaimEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	events := []model.ClaimEvent{
		{Type: model.EventClaimSubmitted, ClaimID: 1, Timestamp: time.Now()},
		{Type: model.EventClaimProcessed, ClaimID: 1, Timestamp: time.Now()},
	}
	if err := s.InsertClaimEvents(ctx, events); err != nil {
		t.Fatalf("InsertClaimEvents error: %v", err)
	}

	got := s.ClaimEvents()
	if len(got) != 2 || got[0].Type != model.EventClaimSubmitted || got[1].Type != model.EventClaimProcessed {
		t.Fatalf("unexpected events: %+v", got)
	}
}

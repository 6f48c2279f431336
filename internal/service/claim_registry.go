// Package service implements the claim registry, the lifecycle engine that
// owns identifier assignment, status transitions and the privileged-writer
// policy.
package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
	"github.com/clearlakemutual/claimvault-backend/internal/notify"
)

// ClaimRegistry owns the claim table, the identifier sequence and the owner
// identity. All mutations take the write lock, so every operation observes a
// fully applied state; reads share the read lock.
type ClaimRegistry struct {
	store    ClaimStore
	notifier notify.Notifier
	metrics  Metrics
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.RWMutex
	nextID uint64
	owner  string
}

// Option configures a ClaimRegistry.
type Option func(*ClaimRegistry)

// WithNow overrides the registry clock. Used by tests that need
// deterministic claim dates and event timestamps.
func WithNow(now func() time.Time) Option {
	return func(r *ClaimRegistry) {
		r.now = now
	}
}

// New builds a registry owned by the given identity. The next-identifier
// counter resumes from the highest identifier already present in the store,
// so restarts never reuse an identifier.
func New(
	ctx context.Context,
	store ClaimStore,
	notifier notify.Notifier,
	metrics Metrics,
	logger *zap.Logger,
	owner string,
	opts ...Option,
) (*ClaimRegistry, error) {
	if owner == "" {
		return nil, fmt.Errorf("registry owner identity is required")
	}

	r := &ClaimRegistry{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		nextID:   1,
		owner:    owner,
	}
	for _, opt := range opts {
		opt(r)
	}

	maxID, ok, err := store.MaxClaimID(ctx)
	if err != nil {
		return nil, fmt.Errorf("load max claim id: %w", err)
	}
	if ok {
		r.nextID = maxID + 1
	}

	return r, nil
}

// Owner returns the current privileged identity, or the empty string once
// ownership has been renounced.
func (r *ClaimRegistry) Owner() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.owner
}

// SubmitClaim records a new claim for the hashed customer identity and
// returns its identifier. Identifiers of successive successful submissions
// are strictly increasing with no gaps, regardless of the caller.
func (r *ClaimRegistry) SubmitClaim(ctx context.Context, caller, customerID string, amount *big.Int) (_ uint64, err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("submit_claim", err, started) }()

	if amount == nil || amount.Sign() <= 0 {
		return 0, fmt.Errorf("submit claim: %w", ErrInvalidAmount)
	}
	if amount.BitLen() > 256 {
		return 0, fmt.Errorf("submit claim: amount exceeds 256 bits: %w", ErrInvalidAmount)
	}

	hash := model.HashCustomerID(customerID)

	r.mu.Lock()
	claim := model.Claim{
		ClaimID:        r.nextID,
		CustomerIDHash: hash,
		Amount:         new(big.Int).Set(amount),
		ClaimDate:      r.now().UTC(),
		Status:         model.StatusSubmitted,
	}
	if err = r.store.InsertClaim(ctx, claim); err != nil {
		r.mu.Unlock()
		return 0, fmt.Errorf("insert claim: %w", err)
	}
	r.nextID++
	r.mu.Unlock()

	r.logger.Debug("claim submitted",
		zap.Uint64("claim_id", claim.ClaimID),
		zap.String("customer_id_hash", hash.Hex()))

	r.notifier.ClaimSubmitted(ctx, notify.ClaimSubmitted{
		ClaimID:        claim.ClaimID,
		CustomerIDHash: hash,
		Amount:         claim.Amount,
		Timestamp:      claim.ClaimDate,
		Submitter:      caller,
	})

	return claim.ClaimID, nil
}

// UpdateClaimStatus transitions a claim to newStatus. Owner-only.
//
// A transition to the claim's current status fails with ErrStatusAlreadySet.
// The same error covers every transition attempted once a claim is Approved
// or Rejected, including the move to the other terminal status: with only
// three status values there is no path out of a terminal state, so any
// change request against a finalized claim is treated as redundant. This is
// intentional, not an idempotency bug.
func (r *ClaimRegistry) UpdateClaimStatus(ctx context.Context, caller string, claimID uint64, newStatus model.Status) (err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("update_claim_status", err, started) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == "" || caller != r.owner {
		return fmt.Errorf("update claim %d: %w", claimID, ErrUnauthorized)
	}

	claim, ok, err := r.store.GetClaim(ctx, claimID)
	if err != nil {
		return fmt.Errorf("get claim %d: %w", claimID, err)
	}
	if !ok {
		return fmt.Errorf("update claim %d: %w", claimID, ErrClaimNotFound)
	}

	if claim.Status.Terminal() || newStatus == claim.Status {
		return fmt.Errorf("update claim %d (%s -> %s): %w",
			claimID, claim.Status, newStatus, ErrStatusAlreadySet)
	}
	if !newStatus.Valid() {
		return fmt.Errorf("update claim %d: status code %d: %w", claimID, newStatus, ErrInvalidStatus)
	}

	oldStatus := claim.Status
	claim.Status = newStatus
	if err = r.store.UpdateClaimStatus(ctx, claim); err != nil {
		return fmt.Errorf("update claim %d: %w", claimID, err)
	}

	now := r.now().UTC()
	r.logger.Debug("claim status updated",
		zap.Uint64("claim_id", claimID),
		zap.String("old_status", oldStatus.String()),
		zap.String("new_status", newStatus.String()))

	r.notifier.ClaimStatusUpdated(ctx, notify.ClaimStatusUpdated{
		ClaimID:   claimID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Timestamp: now,
		Updater:   caller,
	})
	if newStatus.Terminal() {
		r.notifier.ClaimProcessed(ctx, notify.ClaimProcessed{
			ClaimID:        claimID,
			CustomerIDHash: claim.CustomerIDHash,
			Amount:         claim.Amount,
			Status:         newStatus,
			Timestamp:      now,
		})
	}

	return nil
}

// GetClaim returns the stored claim record.
func (r *ClaimRegistry) GetClaim(ctx context.Context, claimID uint64) (_ model.Claim, err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("get_claim", err, started) }()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getClaimLocked(ctx, claimID)
}

func (r *ClaimRegistry) getClaimLocked(ctx context.Context, claimID uint64) (model.Claim, error) {
	claim, ok, err := r.store.GetClaim(ctx, claimID)
	if err != nil {
		return model.Claim{}, fmt.Errorf("get claim %d: %w", claimID, err)
	}
	if !ok {
		return model.Claim{}, fmt.Errorf("get claim %d: %w", claimID, ErrClaimNotFound)
	}
	return claim, nil
}

// VerifyClaimOwnership reports whether the hash of customerID matches the
// stored customer hash of the claim. Nothing beyond the boolean is revealed.
func (r *ClaimRegistry) VerifyClaimOwnership(ctx context.Context, claimID uint64, customerID string) (_ bool, err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("verify_claim_ownership", err, started) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	claim, err := r.getClaimLocked(ctx, claimID)
	if err != nil {
		return false, err
	}
	return model.HashCustomerID(customerID) == claim.CustomerIDHash, nil
}

// SerializeClaim renders the claim as its canonical JSON document.
func (r *ClaimRegistry) SerializeClaim(ctx context.Context, claimID uint64) (_ string, err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("serialize_claim", err, started) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	claim, err := r.getClaimLocked(ctx, claimID)
	if err != nil {
		return "", err
	}
	return marshalClaimDocument(claim)
}

// ListCustomerClaimsAsText renders every claim belonging to the hashed
// customer identity as a JSON array, in ascending identifier order.
func (r *ClaimRegistry) ListCustomerClaimsAsText(ctx context.Context, customerID string) (_ string, err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("list_customer_claims", err, started) }()

	r.mu.RLock()
	defer r.mu.RUnlock()

	hash := model.HashCustomerID(customerID)
	claims, err := r.store.ClaimsByCustomerHash(ctx, hash)
	if err != nil {
		return "", fmt.Errorf("claims by customer hash: %w", err)
	}
	return marshalClaimDocuments(claims)
}

// TransferOwnership hands the privileged role to newOwner. Owner-only.
func (r *ClaimRegistry) TransferOwnership(ctx context.Context, caller, newOwner string) (err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("transfer_ownership", err, started) }()

	if newOwner == "" {
		return fmt.Errorf("transfer ownership: %w", ErrEmptyOwner)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == "" || caller != r.owner {
		return fmt.Errorf("transfer ownership: %w", ErrUnauthorized)
	}

	previous := r.owner
	r.owner = newOwner

	r.logger.Info("registry ownership transferred",
		zap.String("previous_owner", previous),
		zap.String("new_owner", newOwner))
	r.notifier.OwnershipTransferred(ctx, notify.OwnershipTransferred{
		PreviousOwner: previous,
		NewOwner:      newOwner,
		Timestamp:     r.now().UTC(),
	})
	return nil
}

// RenounceOwnership permanently gives up the privileged role. Every
// owner-only operation, including TransferOwnership, fails afterwards.
func (r *ClaimRegistry) RenounceOwnership(ctx context.Context, caller string) (err error) {
	started := time.Now()
	defer func() { r.metrics.Observe("renounce_ownership", err, started) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == "" || caller != r.owner {
		return fmt.Errorf("renounce ownership: %w", ErrUnauthorized)
	}

	previous := r.owner
	r.owner = ""

	r.logger.Info("registry ownership renounced", zap.String("previous_owner", previous))
	r.notifier.OwnershipTransferred(ctx, notify.OwnershipTransferred{
		PreviousOwner: previous,
		NewOwner:      "",
		Timestamp:     r.now().UTC(),
	})
	return nil
}

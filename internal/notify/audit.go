package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
	"github.com/clearlakemutual/claimvault-backend/pkg/batcher"
)

// EventStore persists claim audit events.
type EventStore interface {
	InsertClaimEvents(ctx context.Context, events []model.ClaimEvent) error
}

// AuditNotifier persists every event into the claim_events audit table,
// batched so bursts of submissions do not turn into per-event inserts.
type AuditNotifier struct {
	batcher *batcher.Batcher[model.ClaimEvent]
	logger  *zap.Logger
}

// NewAuditNotifier builds an audit notifier flushing into store.
func NewAuditNotifier(logger *zap.Logger, store EventStore, cfg batcher.Config) *AuditNotifier {
	return &AuditNotifier{
		batcher: batcher.New(logger, store.InsertClaimEvents, cfg),
		logger:  logger,
	}
}

// Start begins background flushing. Must be called before events arrive.
func (n *AuditNotifier) Start(ctx context.Context) {
	n.batcher.Start(ctx)
}

// Stop flushes buffered events and stops the notifier.
func (n *AuditNotifier) Stop() {
	n.batcher.Stop()
}

func (n *AuditNotifier) add(ctx context.Context, event model.ClaimEvent) {
	if err := n.batcher.Add(ctx, event); err != nil {
		n.logger.Warn("audit event dropped",
			zap.String("event_type", string(event.Type)),
			zap.Uint64("claim_id", event.ClaimID),
			zap.Error(err))
	}
}

func (n *AuditNotifier) ClaimSubmitted(ctx context.Context, e ClaimSubmitted) {
	n.add(ctx, model.ClaimEvent{
		Type:           model.EventClaimSubmitted,
		ClaimID:        e.ClaimID,
		CustomerIDHash: e.CustomerIDHash.Hex(),
		Amount:         e.Amount,
		NewStatus:      model.StatusSubmitted.String(),
		Actor:          e.Submitter,
		Timestamp:      e.Timestamp,
	})
}

func (n *AuditNotifier) ClaimStatusUpdated(ctx context.Context, e ClaimStatusUpdated) {
	n.add(ctx, model.ClaimEvent{
		Type:      model.EventClaimStatusUpdated,
		ClaimID:   e.ClaimID,
		OldStatus: e.OldStatus.String(),
		NewStatus: e.NewStatus.String(),
		Actor:     e.Updater,
		Timestamp: e.Timestamp,
	})
}

func (n *AuditNotifier) ClaimProcessed(ctx context.Context, e ClaimProcessed) {
	n.add(ctx, model.ClaimEvent{
		Type:           model.EventClaimProcessed,
		ClaimID:        e.ClaimID,
		CustomerIDHash: e.CustomerIDHash.Hex(),
		Amount:         e.Amount,
		NewStatus:      e.Status.String(),
		Timestamp:      e.Timestamp,
	})
}

func (n *AuditNotifier) OwnershipTransferred(ctx context.Context, e OwnershipTransferred) {
	n.add(ctx, model.ClaimEvent{
		Type:      model.EventOwnershipTransferred,
		Actor:     e.PreviousOwner,
		Subject:   e.NewOwner,
		Timestamp: e.Timestamp,
	})
}

package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes every event to the structured log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a zap-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) ClaimSubmitted(_ context.Context, e ClaimSubmitted) {
	n.logger.Info("claim submitted",
		zap.Uint64("claim_id", e.ClaimID),
		zap.String("customer_id_hash", e.CustomerIDHash.Hex()),
		zap.String("amount", e.Amount.String()),
		zap.Time("timestamp", e.Timestamp),
		zap.String("submitter", e.Submitter))
}

func (n *LogNotifier) ClaimStatusUpdated(_ context.Context, e ClaimStatusUpdated) {
	n.logger.Info("claim status updated",
		zap.Uint64("claim_id", e.ClaimID),
		zap.String("old_status", e.OldStatus.String()),
		zap.String("new_status", e.NewStatus.String()),
		zap.Time("timestamp", e.Timestamp),
		zap.String("updater", e.Updater))
}

func (n *LogNotifier) ClaimProcessed(_ context.Context, e ClaimProcessed) {
	n.logger.Info("claim processed",
		zap.Uint64("claim_id", e.ClaimID),
		zap.String("customer_id_hash", e.CustomerIDHash.Hex()),
		zap.String("amount", e.Amount.String()),
		zap.String("status", e.Status.String()),
		zap.Time("timestamp", e.Timestamp))
}

func (n *LogNotifier) OwnershipTransferred(_ context.Context, e OwnershipTransferred) {
	n.logger.Info("ownership transferred",
		zap.String("previous_owner", e.PreviousOwner),
		zap.String("new_owner", e.NewOwner),
		zap.Time("timestamp", e.Timestamp))
}

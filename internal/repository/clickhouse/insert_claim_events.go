package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// InsertClaimEvents appends audit event rows. The events table is
// append-only; fields that do not apply to an event type are stored zeroed.
func (r *Repository) InsertClaimEvents(ctx context.Context, events []model.ClaimEvent) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_claim_events", err, start)
	}()

	if len(events) == 0 {
		return nil
	}

	const query = `
INSERT INTO claim_events (
	event_type,
	claim_id,
	customer_id_hash,
	amount,
	old_status,
	new_status,
	actor,
	subject,
	event_time
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare claim events batch: %w", err)
	}

	for _, event := range events {
		amount := event.Amount
		if amount == nil {
			amount = big.NewInt(0)
		}
		if err = batch.Append(
			string(event.Type),
			event.ClaimID,
			strings.TrimPrefix(event.CustomerIDHash, "0x"),
			amount,
			event.OldStatus,
			event.NewStatus,
			event.Actor,
			event.Subject,
			event.Timestamp,
		); err != nil {
			return fmt.Errorf("append claim event: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert claim events: %w", err)
	}
	return nil
}

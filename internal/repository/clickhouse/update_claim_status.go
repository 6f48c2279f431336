package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// UpdateClaimStatus writes a new version row for the claim. ReplacingMergeTree
// resolves the row with the highest updated_at as the current record.
func (r *Repository) UpdateClaimStatus(ctx context.Context, claim model.Claim) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("update_claim_status", err, start)
	}()

	const query = `
INSERT INTO claims (
	claim_id,
	customer_id_hash,
	amount,
	claim_date,
	status,
	updated_at
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare claim version batch: %w", err)
	}

	if err = batch.Append(
		claim.ClaimID,
		hashColumn(claim.CustomerIDHash),
		claim.Amount,
		claim.ClaimDate,
		claim.Status.String(),
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("append claim version: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert claim version: %w", err)
	}
	return nil
}

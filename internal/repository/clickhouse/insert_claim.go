package clickhouse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// InsertClaim stores a newly submitted claim row.
func (r *Repository) InsertClaim(ctx context.Context, claim model.Claim) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_claim", err, start)
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
		return fmt.Errorf("prepare claim batch: %w", err)
	}

	if err = batch.Append(
		claim.ClaimID,
		hashColumn(claim.CustomerIDHash),
		claim.Amount,
		claim.ClaimDate,
		claim.Status.String(),
		claim.ClaimDate,
	); err != nil {
		return fmt.Errorf("append claim: %w", err)
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// hashColumn renders the customer hash the way the claims table stores it:
// bare lowercase hex without the 0x prefix.
func hashColumn(hash model.CustomerHash) string {
	return strings.TrimPrefix(hash.Hex(), "0x")
}

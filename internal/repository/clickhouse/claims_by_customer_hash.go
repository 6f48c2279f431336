package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// ClaimsByCustomerHash returns every claim stored for the customer hash in
// ascending identifier order. The hash column is indexed by the table's sort
// key projection, so this replaces the full identifier-space scan of the
// original contract without changing its observable result.
func (r *Repository) ClaimsByCustomerHash(ctx context.Context, hash model.CustomerHash) ([]model.Claim, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("claims_by_customer_hash", err, start)
	}()

	const query = `
SELECT
	claim_id,
	amount,
	claim_date,
	status
FROM claims FINAL
WHERE customer_id_hash = ?
ORDER BY claim_id ASC`

	rows, err := r.conn.Query(ctx, query, hashColumn(hash))
	if err != nil {
		return nil, fmt.Errorf("query claims by customer hash: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	var claims []model.Claim
	for rows.Next() {
		var (
			claimID    uint64
			amount     big.Int
			claimDate  time.Time
			statusName string
		)
		if err = rows.Scan(&claimID, &amount, &claimDate, &statusName); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}

		status, parseErr := model.ParseStatus(statusName)
		if parseErr != nil {
			err = fmt.Errorf("claim %d: %w", claimID, parseErr)
			return nil, err
		}
		claims = append(claims, model.Claim{
			ClaimID:        claimID,
			CustomerIDHash: hash,
			Amount:         new(big.Int).Set(&amount),
			ClaimDate:      claimDate,
			Status:         status,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims by customer hash: %w", err)
	}

	return claims, nil
}

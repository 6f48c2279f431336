package clickhouse

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// GetClaim returns the latest version of the claim, reporting absence
// explicitly instead of a zero-valued record.
func (r *Repository) GetClaim(ctx context.Context, claimID uint64) (model.Claim, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("get_claim", err, start)
	}()

	const query = `
SELECT
	customer_id_hash,
	amount,
	claim_date,
	status
FROM claims FINAL
WHERE claim_id = ?`

	rows, err := r.conn.Query(ctx, query, claimID)
	if err != nil {
		return model.Claim{}, false, fmt.Errorf("query claim: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return model.Claim{}, false, fmt.Errorf("iterate claim: %w", err)
		}
		return model.Claim{}, false, nil
	}

	var (
		hashHex    string
		amount     big.Int
		claimDate  time.Time
		statusName string
	)
	if err = rows.Scan(&hashHex, &amount, &claimDate, &statusName); err != nil {
		return model.Claim{}, false, fmt.Errorf("scan claim: %w", err)
	}
	if err = rows.Err(); err != nil {
		return model.Claim{}, false, fmt.Errorf("iterate claim: %w", err)
	}

	claim, err := buildClaim(claimID, hashHex, &amount, claimDate, statusName)
	if err != nil {
		return model.Claim{}, false, err
	}
	return claim, true, nil
}

func buildClaim(claimID uint64, hashHex string, amount *big.Int, claimDate time.Time, statusName string) (model.Claim, error) {
	hash, err := model.ParseCustomerHash(hashHex)
	if err != nil {
		return model.Claim{}, fmt.Errorf("claim %d: %w", claimID, err)
	}
	status, err := model.ParseStatus(statusName)
	if err != nil {
		return model.Claim{}, fmt.Errorf("claim %d: %w", claimID, err)
	}
	return model.Claim{
		ClaimID:        claimID,
		CustomerIDHash: hash,
		Amount:         new(big.Int).Set(amount),
		ClaimDate:      claimDate,
		Status:         status,
	}, nil
}

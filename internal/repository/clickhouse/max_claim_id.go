package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// MaxClaimID returns the highest assigned claim identifier, if any claim
// exists. The registry uses it to resume the identifier sequence on restart.
func (r *Repository) MaxClaimID(ctx context.Context) (uint64, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("max_claim_id", err, start)
	}()

	const query = `
SELECT toUInt64(max(claim_id)) AS claim_id, count() AS cnt
FROM claims`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return 0, false, fmt.Errorf("query max claim id: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rows.Next() {
		return 0, false, nil
	}

	var claimID uint64
	var cnt uint64
	if err = rows.Scan(&claimID, &cnt); err != nil {
		return 0, false, fmt.Errorf("scan max claim id: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max claim id: %w", err)
	}
	if cnt == 0 {
		return 0, false, nil
	}
	return claimID, true, nil
}

// Package clickhouse implements the durable claim store on ClickHouse.
//
// The claims table is a ReplacingMergeTree versioned by updated_at: every
// submission and status change writes a full row, and reads resolve the
// latest version. Claim rows are therefore never deleted, which also keeps
// the full status history queryable.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type (
	// Metrics records the outcome and duration of repository operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Repository is a ClickHouse-backed claim store.
type Repository struct {
	conn    clickhouse.Conn
	metrics Metrics
}

// NewRepository opens a ClickHouse connection for the given DSN.
func NewRepository(dsn string, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: conn, metrics: metrics}, nil
}

// Ping verifies connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

// Close releases the connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

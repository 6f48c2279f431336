package service

import (
	"context"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

type (
	// ClaimStore is the durable claim map behind the registry. Lookups report
	// absence explicitly instead of returning zero-valued records.
	ClaimStore interface {
		InsertClaim(ctx context.Context, claim model.Claim) error
		UpdateClaimStatus(ctx context.Context, claim model.Claim) error
		GetClaim(ctx context.Context, claimID uint64) (model.Claim, bool, error)
		ClaimsByCustomerHash(ctx context.Context, hash model.CustomerHash) ([]model.Claim, error)
		MaxClaimID(ctx context.Context) (uint64, bool, error)
	}

	// Metrics records the outcome and duration of registry operations.
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

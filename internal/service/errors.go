package service

import "errors"

var (
	// ErrInvalidAmount rejects submissions with a zero amount.
	ErrInvalidAmount = errors.New("claim amount must be greater than zero")
	// ErrClaimNotFound marks a reference to an identifier that was never assigned.
	ErrClaimNotFound = errors.New("claim not found")
	// ErrStatusAlreadySet rejects a transition to the claim's current status.
	// It also covers every transition attempted after a claim reached a
	// terminal status; see ClaimRegistry.UpdateClaimStatus.
	ErrStatusAlreadySet = errors.New("claim status already set")
	// ErrInvalidStatus rejects status values outside the defined set.
	ErrInvalidStatus = errors.New("invalid claim status")
	// ErrUnauthorized rejects owner-only operations from any other identity.
	ErrUnauthorized = errors.New("caller is not the registry owner")
	// ErrEmptyOwner rejects ownership transfer to the empty identity;
	// renouncing is the only way to reach the ownerless state.
	ErrEmptyOwner = errors.New("new owner identity must not be empty")
)

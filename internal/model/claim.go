// Package model defines domain models for the claim registry.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"
)

// Status is the processing status of a claim. The numeric codes are part of
// the storage contract; anything outside the defined set renders as Unknown.
type Status uint8

const (
	StatusSubmitted Status = iota
	StatusApproved
	StatusRejected
)

const statusUnknownName = "Unknown"

// String returns the symbolic status name, or Unknown for undefined codes.
func (s Status) String() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return statusUnknownName
	}
}

// Valid reports whether s is one of the defined status codes.
func (s Status) Valid() bool {
	return s <= StatusRejected
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus maps a symbolic status name to its code.
func ParseStatus(name string) (Status, error) {
	switch name {
	case "Submitted":
		return StatusSubmitted, nil
	case "Approved":
		return StatusApproved, nil
	case "Rejected":
		return StatusRejected, nil
	default:
		return 0, fmt.Errorf("unknown claim status %q", name)
	}
}

// CustomerHashSize is the digest width of a customer hash in bytes.
const CustomerHashSize = sha256.Size

// CustomerHash is the one-way digest stored in place of a raw customer
// identifier. The raw identifier never leaves the request path.
type CustomerHash [CustomerHashSize]byte

// HashCustomerID digests a raw customer identifier.
func HashCustomerID(customerID string) CustomerHash {
	return sha256.Sum256([]byte(customerID))
}

// Hex renders the hash as 0x-prefixed lowercase hexadecimal.
func (h CustomerHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// ParseCustomerHash decodes a hex customer hash, with or without the 0x prefix.
func ParseCustomerHash(s string) (CustomerHash, error) {
	var h CustomerHash
	raw := strings.TrimPrefix(s, "0x")
	b, err := hex.DecodeString(raw)
	if err != nil {
		return h, fmt.Errorf("decode customer hash: %w", err)
	}
	if len(b) != CustomerHashSize {
		return h, fmt.Errorf("customer hash must be %d bytes, got %d", CustomerHashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// Claim is a single insurance claim record persisted to the claim store.
type Claim struct {
	ClaimID        uint64
	CustomerIDHash CustomerHash
	Amount         *big.Int
	ClaimDate      time.Time
	Status         Status
}

// ClaimEventType labels a claim audit event.
type ClaimEventType string

var (
	EventClaimSubmitted       ClaimEventType = "claim_submitted"
	EventClaimStatusUpdated   ClaimEventType = "claim_status_updated"
	EventClaimProcessed       ClaimEventType = "claim_processed"
	EventOwnershipTransferred ClaimEventType = "ownership_transferred"
)

// ClaimEvent is an audit row persisted for every registry notification.
// Fields that do not apply to a given event type are left at their zero
// values (the events table is append-only and schemaless in that respect).
type ClaimEvent struct {
	Type           ClaimEventType
	ClaimID        uint64
	CustomerIDHash string
	Amount         *big.Int
	OldStatus      string
	NewStatus      string
	Actor          string
	Subject        string
	Timestamp      time.Time
}

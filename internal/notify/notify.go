// Package notify carries the registry's observable side-channel events to
// interested sinks. Delivery is at-least-informational: a failing sink is
// logged and never fails the operation that produced the event.
package notify

import (
	"context"
	"math/big"
	"time"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// ClaimSubmitted is emitted after every successful claim submission.
type ClaimSubmitted struct {
	ClaimID        uint64
	CustomerIDHash model.CustomerHash
	Amount         *big.Int
	Timestamp      time.Time
	Submitter      string
}

// ClaimStatusUpdated is emitted after every successful status transition.
type ClaimStatusUpdated struct {
	ClaimID   uint64
	OldStatus model.Status
	NewStatus model.Status
	Timestamp time.Time
	Updater   string
}

// ClaimProcessed is emitted only when a claim enters a terminal status.
type ClaimProcessed struct {
	ClaimID        uint64
	CustomerIDHash model.CustomerHash
	Amount         *big.Int
	Status         model.Status
	Timestamp      time.Time
}

// OwnershipTransferred is emitted when the registry owner changes, including
// the transfer to the empty identity on renounce.
type OwnershipTransferred struct {
	PreviousOwner string
	NewOwner      string
	Timestamp     time.Time
}

// Notifier receives registry events. Implementations must not block the
// calling operation beyond enqueueing.
type Notifier interface {
	ClaimSubmitted(ctx context.Context, e ClaimSubmitted)
	ClaimStatusUpdated(ctx context.Context, e ClaimStatusUpdated)
	ClaimProcessed(ctx context.Context, e ClaimProcessed)
	OwnershipTransferred(ctx context.Context, e OwnershipTransferred)
}

// Multi fans events out to every child notifier in order.
type Multi struct {
	children []Notifier
}

// NewMulti builds a fan-out notifier.
func NewMulti(children ...Notifier) *Multi {
	return &Multi{children: children}
}

func (m *Multi) ClaimSubmitted(ctx context.Context, e ClaimSubmitted) {
	for _, c := range m.children {
		c.ClaimSubmitted(ctx, e)
	}
}

func (m *Multi) ClaimStatusUpdated(ctx context.Context, e ClaimStatusUpdated) {
	for _, c := range m.children {
		c.ClaimStatusUpdated(ctx, e)
	}
}

func (m *Multi) ClaimProcessed(ctx context.Context, e ClaimProcessed) {
	for _, c := range m.children {
		c.ClaimProcessed(ctx, e)
	}
}

func (m *Multi) OwnershipTransferred(ctx context.Context, e OwnershipTransferred) {
	for _, c := range m.children {
		c.OwnershipTransferred(ctx, e)
	}
}

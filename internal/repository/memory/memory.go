// Package memory provides an in-memory claim store. It backs unit tests and
// the gateway's no-DSN local mode; durability is the caller's problem there.
package memory

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// Store keeps claims and audit events in process memory.
type Store struct {
	mu     sync.RWMutex
	claims map[uint64]model.Claim
	events []model.ClaimEvent
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{claims: make(map[uint64]model.Claim)}
}

func cloneClaim(claim model.Claim) model.Claim {
	if claim.Amount != nil {
		claim.Amount = new(big.Int).Set(claim.Amount)
	}
	return claim
}

// InsertClaim stores a new claim record.
func (s *Store) InsertClaim(_ context.Context, claim model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[claim.ClaimID]; ok {
		return fmt.Errorf("claim %d already exists", claim.ClaimID)
	}
	s.claims[claim.ClaimID] = cloneClaim(claim)
	return nil
}

// UpdateClaimStatus overwrites the stored record with the updated claim.
func (s *Store) UpdateClaimStatus(_ context.Context, claim model.Claim) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.claims[claim.ClaimID]; !ok {
		return fmt.Errorf("claim %d does not exist", claim.ClaimID)
	}
	s.claims[claim.ClaimID] = cloneClaim(claim)
	return nil
}

// GetClaim returns the claim and whether it exists.
func (s *Store) GetClaim(_ context.Context, claimID uint64) (model.Claim, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[claimID]
	if !ok {
		return model.Claim{}, false, nil
	}
	return cloneClaim(claim), true, nil
}

// ClaimsByCustomerHash scans the assigned identifier space and returns every
// claim whose stored hash matches, in ascending identifier order.
func (s *Store) ClaimsByCustomerHash(_ context.Context, hash model.CustomerHash) ([]model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	maxID := uint64(0)
	for id := range s.claims {
		if id > maxID {
			maxID = id
		}
	}

	var claims []model.Claim
	for id := uint64(1); id <= maxID; id++ {
		claim, ok := s.claims[id]
		if !ok {
			continue
		}
		if claim.CustomerIDHash == hash {
			claims = append(claims, cloneClaim(claim))
		}
	}
	return claims, nil
}

// MaxClaimID returns the highest assigned identifier, if any claim exists.
func (s *Store) MaxClaimID(_ context.Context) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.claims) == 0 {
		return 0, false, nil
	}
	maxID := uint64(0)
	for id := range s.claims {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, true, nil
}

// InsertClaimEvents appends audit events.
func (s *Store) InsertClaimEvents(_ context.Context, events []model.ClaimEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

// ClaimEvents returns a copy of the stored audit events.
func (s *Store) ClaimEvents() []model.ClaimEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]model.ClaimEvent, len(s.events))
	copy(cp, s.events)
	return cp
}

package service

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
)

// claimDocument is the canonical textual form of a claim. Field order is part
// of the contract; amounts are decimal digit strings because 256-bit values
// do not fit a JSON number.
type claimDocument struct {
	ClaimID        uint64 `json:"claimId"`
	CustomerIDHash string `json:"customerIdHash"`
	Amount         string `json:"amount"`
	ClaimDate      int64  `json:"claimDate"`
	Status         string `json:"status"`
}

func newClaimDocument(claim model.Claim) claimDocument {
	return claimDocument{
		ClaimID:        claim.ClaimID,
		CustomerIDHash: claim.CustomerIDHash.Hex(),
		Amount:         claim.Amount.String(),
		ClaimDate:      claim.ClaimDate.Unix(),
		Status:         claim.Status.String(),
	}
}

func marshalClaimDocument(claim model.Claim) (string, error) {
	b, err := json.Marshal(newClaimDocument(claim))
	if err != nil {
		return "", fmt.Errorf("marshal claim document: %w", err)
	}
	return string(b), nil
}

func marshalClaimDocuments(claims []model.Claim) (string, error) {
	// Ascending identifier order is part of the document contract, whatever
	// order the store returned.
	sort.Slice(claims, func(i, j int) bool { return claims[i].ClaimID < claims[j].ClaimID })

	docs := make([]claimDocument, 0, len(claims))
	for _, claim := range claims {
		docs = append(docs, newClaimDocument(claim))
	}
	b, err := json.Marshal(docs)
	if err != nil {
		return "", fmt.Errorf("marshal claim documents: %w", err)
	}
	return string(b), nil
}

// Package transport exposes the claim registry over HTTP/JSON.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/clearlakemutual/claimvault-backend/internal/model"
	"github.com/clearlakemutual/claimvault-backend/internal/service"
	"github.com/clearlakemutual/claimvault-backend/pkg/safe"
)

// callerHeader carries the caller identity. The gateway trusts a fronting
// proxy to have authenticated it; the registry itself only compares
// identities.
const callerHeader = "X-Caller-Id"

// Registry is the slice of the claim registry the HTTP surface needs.
type Registry interface {
	SubmitClaim(ctx context.Context, caller, customerID string, amount *big.Int) (uint64, error)
	UpdateClaimStatus(ctx context.Context, caller string, claimID uint64, newStatus model.Status) error
	GetClaim(ctx context.Context, claimID uint64) (model.Claim, error)
	VerifyClaimOwnership(ctx context.Context, claimID uint64, customerID string) (bool, error)
	SerializeClaim(ctx context.Context, claimID uint64) (string, error)
	ListCustomerClaimsAsText(ctx context.Context, customerID string) (string, error)
	TransferOwnership(ctx context.Context, caller, newOwner string) error
	RenounceOwnership(ctx context.Context, caller string) error
}

// ClaimsHandler implements the claim registry HTTP surface.
type ClaimsHandler struct {
	registry Registry
	logger   *zap.Logger
}

// NewClaimsHandler returns a ClaimsHandler instance.
func NewClaimsHandler(registry Registry, logger *zap.Logger) *ClaimsHandler {
	return &ClaimsHandler{registry: registry, logger: logger}
}

// Register mounts all routes on mux.
func (h *ClaimsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/claims", h.submitClaim)
	mux.HandleFunc("GET /v1/claims/{id}", h.getClaim)
	mux.HandleFunc("PUT /v1/claims/{id}/status", h.updateClaimStatus)
	mux.HandleFunc("POST /v1/claims/{id}/verify", h.verifyClaimOwnership)
	mux.HandleFunc("GET /v1/claims/{id}/document", h.serializeClaim)
	mux.HandleFunc("POST /v1/customers/claims/document", h.listCustomerClaims)
	mux.HandleFunc("POST /v1/ownership/transfer", h.transferOwnership)
	mux.HandleFunc("POST /v1/ownership/renounce", h.renounceOwnership)
	mux.HandleFunc("GET /healthz", h.health)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *ClaimsHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("write response", zap.Error(err))
	}
}

func (h *ClaimsHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyOwner):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrClaimNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrStatusAlreadySet):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		h.writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *ClaimsHandler) caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := r.Header.Get(callerHeader)
	if caller == "" {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing " + callerHeader + " header"})
		return "", false
	}
	return caller, true
}

func (h *ClaimsHandler) claimID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid claim id"})
		return 0, false
	}
	return id, true
}

func (h *ClaimsHandler) decode(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func (h *ClaimsHandler) submitClaim(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		CustomerID string `json:"customerId"`
		Amount     string `json:"amount"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.CustomerID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customerId is required"})
		return
	}
	amount, err := safe.ParseUint256(req.Amount)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "amount must be a decimal digit string"})
		return
	}

	claimID, err := h.registry.SubmitClaim(r.Context(), caller, req.CustomerID, amount)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, struct {
		ClaimID uint64 `json:"claimId"`
	}{ClaimID: claimID})
}

func (h *ClaimsHandler) getClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := h.claimID(w, r)
	if !ok {
		return
	}

	claim, err := h.registry.GetClaim(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		CustomerIDHash string `json:"customerIdHash"`
		Amount         string `json:"amount"`
		ClaimDate      int64  `json:"claimDate"`
		Status         string `json:"status"`
	}{
		CustomerIDHash: claim.CustomerIDHash.Hex(),
		Amount:         claim.Amount.String(),
		ClaimDate:      claim.ClaimDate.Unix(),
		Status:         claim.Status.String(),
	})
}

func (h *ClaimsHandler) updateClaimStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, ok := h.claimID(w, r)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "status must be one of Submitted, Approved, Rejected"})
		return
	}

	if err := h.registry.UpdateClaimStatus(r.Context(), caller, id, status); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClaimsHandler) verifyClaimOwnership(w http.ResponseWriter, r *http.Request) {
	id, ok := h.claimID(w, r)
	if !ok {
		return
	}

	var req struct {
		CustomerID string `json:"customerId"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	match, err := h.registry.VerifyClaimOwnership(r.Context(), id, req.CustomerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		Match bool `json:"match"`
	}{Match: match})
}

func (h *ClaimsHandler) serializeClaim(w http.ResponseWriter, r *http.Request) {
	id, ok := h.claimID(w, r)
	if !ok {
		return
	}

	doc, err := h.registry.SerializeClaim(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Error("write claim document", zap.Error(err))
	}
}

// listCustomerClaims takes the raw customer identifier in the request body
// rather than the query string so it never lands in access logs.
func (h *ClaimsHandler) listCustomerClaims(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string `json:"customerId"`
	}
	if !h.decode(w, r, &req) {
		return
	}
	if req.CustomerID == "" {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "customerId is required"})
		return
	}

	doc, err := h.registry.ListCustomerClaimsAsText(r.Context(), req.CustomerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		h.logger.Error("write claim documents", zap.Error(err))
	}
}

func (h *ClaimsHandler) transferOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req struct {
		NewOwner string `json:"newOwner"`
	}
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.registry.TransferOwnership(r.Context(), caller, req.NewOwner); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClaimsHandler) renounceOwnership(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	if err := h.registry.RenounceOwnership(r.Context(), caller); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClaimsHandler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}

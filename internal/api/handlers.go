/**
 * @description
 * This file contains the HTTP handlers for the roots-gateway's API endpoints.
 * Handlers are responsible for parsing incoming requests, calling the
 * appropriate methods on the application service, and writing the HTTP
 * response. They act as the bridge between the web layer and the
 * orchestration logic.
 *
 * @dependencies
 * - encoding/json, errors, log, net/http, strconv: Standard Go libraries.
 * - github.com/go-chi/chi/v5: For URL parameter extraction.
 * - internal/app, internal/domain: For service logic, models, and custom errors.
 */

package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/icroots/roots-gateway/internal/app"
	"github.com/icroots/roots-gateway/internal/domain"
)

// GatewayHandlers holds the application service that handlers will use.
type GatewayHandlers struct {
	service *app.Service
}

// NewGatewayHandlers creates a new instance of GatewayHandlers.
func NewGatewayHandlers(service *app.Service) *GatewayHandlers {
	return &GatewayHandlers{service: service}
}

// HealthHandler reports per-service reachability of the five ledger services.
func (h *GatewayHandlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	report := h.service.CheckHealth(r.Context())
	h.writeJSON(w, http.StatusOK, report)
}

// ProfileHandler returns the aggregated profile for a user. Always succeeds:
// unavailable ledgers surface as zero-valued fields, never as an error.
func (h *GatewayHandlers) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	profile := h.service.GetUserProfile(r.Context(), userID)
	h.writeJSON(w, http.StatusOK, profile)
}

type loanApplicationRequest struct {
	UserID string `json:"user_id"`
	Amount uint64 `json:"amount"`
}

// LoanApplicationHandler runs the loan-application workflow and returns the
// trust recommendation together with the profile it was computed from.
func (h *GatewayHandlers) LoanApplicationHandler(w http.ResponseWriter, r *http.Request) {
	var req loanApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == 0 {
		h.writeError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if req.UserID == "" {
		req.UserID, _ = GetCallerID(r.Context())
	}

	result, err := h.service.ProcessLoanApplication(r.Context(), req.UserID, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// LevelHandler returns a user's reputation level.
func (h *GatewayHandlers) LevelHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	level, err := h.service.GetUserLevel(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]uint64{"level": level})
}

type setLevelRequest struct {
	Level uint64 `json:"level"`
}

// SetLevelHandler updates a user's reputation level.
func (h *GatewayHandlers) SetLevelHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req setLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetUserLevel(r.Context(), userID, req.Level); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// CollateralHandler returns a user's collateral balance.
func (h *GatewayHandlers) CollateralHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	collateral, err := h.service.GetUserCollateral(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]uint64{"collateral": collateral})
}

type depositRequest struct {
	Amount uint64 `json:"amount"`
}

// DepositHandler records a collateral deposit for a user.
func (h *GatewayHandlers) DepositHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == 0 {
		h.writeError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}

	if err := h.service.DepositCollateral(r.Context(), userID, req.Amount); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "deposited"})
}

// RegisterHandler registers the authenticated caller with the loans service.
func (h *GatewayHandlers) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	callerID, ok := GetCallerID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Caller identity not found")
		return
	}

	if err := h.service.RegisterUser(r.Context(), callerID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "registered"})
}

// LoansPingHandler checks liveness of the loans service.
func (h *GatewayHandlers) LoansPingHandler(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.PingLoans(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// SummaryHandler returns a user's loan summary; loans service failures
// degrade to an empty summary.
func (h *GatewayHandlers) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	summary := h.service.GetUserSummary(r.Context(), userID)
	h.writeJSON(w, http.StatusOK, summary)
}

type loanRequest struct {
	UserID string `json:"user_id"`
	Amount uint64 `json:"amount"`
}

// RequestLoanHandler submits a loan request to the loans service.
func (h *GatewayHandlers) RequestLoanHandler(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == 0 {
		h.writeError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if req.UserID == "" {
		req.UserID, _ = GetCallerID(r.Context())
	}

	decision, err := h.service.RequestLoan(r.Context(), req.UserID, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, decision)
}

type repayRequest struct {
	UserID string `json:"user_id"`
	Amount uint64 `json:"amount"`
}

// RepayHandler applies a repayment to a loan.
func (h *GatewayHandlers) RepayHandler(w http.ResponseWriter, r *http.Request) {
	loanID, err := strconv.ParseUint(chi.URLParam(r, "loanID"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid loan id")
		return
	}

	var req repayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Amount == 0 {
		h.writeError(w, http.StatusBadRequest, "Amount must be greater than zero")
		return
	}
	if req.UserID == "" {
		req.UserID, _ = GetCallerID(r.Context())
	}

	result, err := h.service.RepayLoan(r.Context(), req.UserID, loanID, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type emitEventRequest struct {
	Event string `json:"event"`
}

// EmitEventHandler appends an entry to the audit log. Emission is
// best-effort, so the response is always accepted.
func (h *GatewayHandlers) EmitEventHandler(w http.ResponseWriter, r *http.Request) {
	var req emitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Event == "" {
		h.writeError(w, http.StatusBadRequest, "Event must not be empty")
		return
	}

	h.service.EmitEvent(r.Context(), req.Event)
	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

// RecentEventsHandler lists recent audit entries; event bus failures
// degrade to an empty list.
func (h *GatewayHandlers) RecentEventsHandler(w http.ResponseWriter, r *http.Request) {
	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	events := h.service.GetRecentEvents(r.Context(), limit)
	h.writeJSON(w, http.StatusOK, map[string][]string{"events": events})
}

func (h *GatewayHandlers) writeServiceError(w http.ResponseWriter, err error) {
	var unavailable *domain.ServiceUnavailableError
	if errors.As(err, &unavailable) {
		log.Printf("level=error component=api msg=\"remote service unavailable\" service=%s err=%v", unavailable.Service, unavailable.Err)
		h.writeJSON(w, http.StatusBadGateway, map[string]string{
			"error":   "Service unavailable",
			"service": unavailable.Service,
		})
		return
	}

	var limited *app.RateLimitedError
	if errors.As(err, &limited) {
		w.Header().Set("Retry-After", strconv.Itoa(limited.RetryAfterSeconds))
		h.writeError(w, http.StatusTooManyRequests, "Too many loan applications. Please try again shortly.")
		return
	}

	log.Printf("level=error component=api msg=\"request failed\" err=%v", err)
	h.writeError(w, http.StatusInternalServerError, "Internal server error")
}

func (h *GatewayHandlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *GatewayHandlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("level=error component=api msg=\"response encode failed\" err=%v", err)
	}
}

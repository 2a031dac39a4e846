/**
 * @description
 * This file defines the core domain models for the roots-gateway. These structs
 * represent the aggregated user view the gateway synthesizes from the five
 * remote ledger services, plus the records those services return for the
 * loan workflow.
 *
 * @notes
 * - Ledger amounts (collateral, loan amounts) are `uint64` in the smallest unit;
 *   the remote services own the arithmetic, the gateway never computes balances.
 * - A UserProfile is always fully populated: a failed source call yields the
 *   field's zero value, never a nil or missing field, so consumers can read
 *   every field without guarding.
 */

package domain

import "time"

// Service names as used in health reports and ServiceUnavailable errors.
const (
	ServiceRepute     = "repute"
	ServiceCollateral = "collateral"
	ServiceLoans      = "loans"
	ServiceTrustAI    = "trustAi"
	ServiceEventBus   = "eventBus"
)

// UserProfile is the gateway's synthesized aggregate of a user's standing
// across the repute, collateral, and loans services. Built fresh on every
// call, never cached.
type UserProfile struct {
	UserID     string      `json:"user_id"`
	Level      uint64      `json:"level"`
	Collateral uint64      `json:"collateral"`
	Summary    LoanSummary `json:"summary"`
}

// LoanSummary is the loans service's view of one user.
type LoanSummary struct {
	Registered    bool         `json:"registered"`
	TotalBorrowed uint64       `json:"total_borrowed"`
	Loans         []LoanRecord `json:"loans"`
}

// LoanRecord is a single loan entry owned by the loans service.
type LoanRecord struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"` // e.g. 'Active', 'Repaid'
	Amount uint64 `json:"amount"`
}

// TrustRecommendation is the trust_ai service's opaque scoring output.
// The gateway passes it through unchanged and never recomputes or
// reinterprets the decision vocabulary (APPROVE/REVIEW/REJECT today,
// service-defined tomorrow).
type TrustRecommendation struct {
	Decision string   `json:"decision"`
	Score    uint64   `json:"score"`
	Reasons  []string `json:"reasons"`
}

// LoanDecision is what the loans service returns from a loan request:
// the recommendation it acted on, plus the opened loan id when approved.
type LoanDecision struct {
	LoanID   *uint64  `json:"loan_id,omitempty"`
	Decision string   `json:"decision"`
	Score    uint64   `json:"score"`
	Reasons  []string `json:"reasons"`
}

// RepayResult reports the state of a loan after a repayment.
type RepayResult struct {
	Repaid    uint64 `json:"repaid"`
	Remaining uint64 `json:"remaining"`
	Status    string `json:"status"`
}

// LoanApplicationResult pairs the trust recommendation with the profile it
// was computed from, so UI callers can render both without a second fetch.
type LoanApplicationResult struct {
	Recommendation TrustRecommendation `json:"recommendation"`
	Profile        UserProfile         `json:"user_profile"`
}

// HealthReport maps each remote service name to its reachability at
// CheckedAt. Refreshed only by an explicit health check call.
type HealthReport struct {
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checked_at"`
}

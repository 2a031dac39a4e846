/**
 * @description
 * This file contains the pass-through operations the gateway exposes for each
 * individual ledger service. Each operation forwards to exactly one remote
 * call and applies the gateway's failure policy: mutating operations and
 * direct reads raise ServiceUnavailable, while loan-summary and recent-event
 * reads absorb failures into documented zero values. Successful mutations
 * record a best-effort audit entry.
 */

package app

import (
	"context"
	"fmt"
	"log"

	"github.com/icroots/roots-gateway/internal/domain"
	"github.com/icroots/roots-gateway/internal/identity"
)

// GetUserLevel returns the reputation level for the given user.
func (s *Service) GetUserLevel(ctx context.Context, rawUserID string) (uint64, error) {
	principal := identity.Resolve(rawUserID)
	level, err := s.repute.GetLevel(ctx, principal)
	if err != nil {
		return 0, domain.NewServiceUnavailable(domain.ServiceRepute, err)
	}
	return level, nil
}

// SetUserLevel updates the reputation level for the given user.
func (s *Service) SetUserLevel(ctx context.Context, rawUserID string, level uint64) error {
	principal := identity.Resolve(rawUserID)
	if err := s.repute.SetLevel(ctx, principal, level); err != nil {
		return domain.NewServiceUnavailable(domain.ServiceRepute, err)
	}
	s.audit.Emit(ctx, fmt.Sprintf("Reputation level set: %d for %s", level, principal))
	return nil
}

// GetUserCollateral returns the collateral balance for the given user.
func (s *Service) GetUserCollateral(ctx context.Context, rawUserID string) (uint64, error) {
	principal := identity.Resolve(rawUserID)
	collateral, err := s.collateral.GetCollateral(ctx, principal)
	if err != nil {
		return 0, domain.NewServiceUnavailable(domain.ServiceCollateral, err)
	}
	return collateral, nil
}

// DepositCollateral records a collateral deposit for the given user. The
// audit entry after a successful deposit is best-effort and never rolls the
// deposit back.
func (s *Service) DepositCollateral(ctx context.Context, rawUserID string, amount uint64) error {
	principal := identity.Resolve(rawUserID)
	if err := s.collateral.Deposit(ctx, principal, amount); err != nil {
		return domain.NewServiceUnavailable(domain.ServiceCollateral, err)
	}
	s.audit.Emit(ctx, fmt.Sprintf("Collateral deposited: %d by %s", amount, principal))
	return nil
}

// PingLoans checks liveness of the loans service.
func (s *Service) PingLoans(ctx context.Context) (string, error) {
	status, err := s.loans.Ping(ctx)
	if err != nil {
		return "", domain.NewServiceUnavailable(domain.ServiceLoans, err)
	}
	return status, nil
}

// RegisterUser registers the given user with the loans service.
func (s *Service) RegisterUser(ctx context.Context, rawUserID string) error {
	principal := identity.Resolve(rawUserID)
	if err := s.loans.RegisterUser(ctx, principal); err != nil {
		return domain.NewServiceUnavailable(domain.ServiceLoans, err)
	}
	return nil
}

// GetUserSummary returns the loan summary for the given user. A loans
// service failure is absorbed: callers get an empty, fully-populated summary
// rather than an error, because the summary is non-critical read data.
func (s *Service) GetUserSummary(ctx context.Context, rawUserID string) domain.LoanSummary {
	principal := identity.Resolve(rawUserID)
	remote, err := s.loans.GetSummary(ctx, principal)
	if err != nil {
		log.Printf("level=warn component=loans msg=\"summary read failed; returning empty summary\" principal=%s err=%v", principal, err)
		return emptySummary()
	}
	return toDomainSummary(remote)
}

// RequestLoan submits an actual loan request to the loans service and
// returns its decision.
func (s *Service) RequestLoan(ctx context.Context, rawUserID string, amount uint64) (*domain.LoanDecision, error) {
	principal := identity.Resolve(rawUserID)
	decision, err := s.loans.RequestLoan(ctx, principal, amount)
	if err != nil {
		return nil, domain.NewServiceUnavailable(domain.ServiceLoans, err)
	}
	s.audit.Emit(ctx, fmt.Sprintf("Loan requested: %d by %s, Decision: %s", amount, principal, decision.Decision))
	return &domain.LoanDecision{
		LoanID:   decision.LoanID,
		Decision: decision.Decision,
		Score:    decision.Score,
		Reasons:  decision.Reasons,
	}, nil
}

// RepayLoan applies a repayment to one of the user's loans.
func (s *Service) RepayLoan(ctx context.Context, rawUserID string, loanID uint64, amount uint64) (*domain.RepayResult, error) {
	principal := identity.Resolve(rawUserID)
	outcome, err := s.loans.Repay(ctx, principal, loanID, amount)
	if err != nil {
		return nil, domain.NewServiceUnavailable(domain.ServiceLoans, err)
	}
	s.audit.Emit(ctx, fmt.Sprintf("Loan repayment: %d for loan %d by %s", amount, loanID, principal))
	return &domain.RepayResult{
		Repaid:    outcome.Repaid,
		Remaining: outcome.Remaining,
		Status:    outcome.Status,
	}, nil
}

// EmitEvent appends a caller-supplied entry to the audit log. Emission is
// best-effort and never fails to the caller.
func (s *Service) EmitEvent(ctx context.Context, message string) {
	s.audit.Emit(ctx, message)
}

// GetRecentEvents returns up to limit recent audit entries, newest first.
// An event_bus failure is absorbed into an empty list. A zero limit falls
// back to the configured default.
func (s *Service) GetRecentEvents(ctx context.Context, limit uint64) []string {
	if limit == 0 {
		limit = s.recentEventsLimit
	}
	events, err := s.eventBus.ListRecent(ctx, limit)
	if err != nil {
		log.Printf("level=warn component=event_bus msg=\"recent events read failed; returning empty list\" err=%v", err)
		return []string{}
	}
	if events == nil {
		events = []string{}
	}
	return events
}

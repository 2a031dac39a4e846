/**
 * @description
 * This file contains the core orchestration logic for the roots-gateway. The
 * `Service` struct coordinates the five remote ledger services (repute,
 * collateral, loans, trust_ai, event_bus) behind one API: profile
 * aggregation with partial-failure tolerance, the sequential loan-application
 * workflow, and the per-service health check.
 *
 * Key features:
 * - GetUserProfile fans out the three profile reads concurrently and merges
 *   their individual outcomes; a failed read yields that field's zero value,
 *   never an error.
 * - ProcessLoanApplication runs profile -> trust_ai -> audit strictly in
 *   order; only the trust_ai failure is fatal.
 * - CheckHealth probes each service independently under a short fixed
 *   timeout; one dead service never hides the state of the others.
 *
 * @dependencies
 * - context, fmt, log, sync, time: Standard Go libraries.
 * - internal/domain, internal/identity: Domain models and principal resolution.
 * - pkg/loansclient, pkg/trustaiclient: Wire types for the loans and trust_ai services.
 */

package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/icroots/roots-gateway/internal/domain"
	"github.com/icroots/roots-gateway/internal/identity"
	"github.com/icroots/roots-gateway/pkg/loansclient"
	"github.com/icroots/roots-gateway/pkg/trustaiclient"
)

const (
	defaultHealthProbeTimeout = 2 * time.Second
	defaultRecentEventsLimit  = 10

	// Placeholder arguments for the trust_ai health probe; the oracle is
	// stateless per request, so any well-formed input exercises it.
	probeCollateral = 1000
	probeTrust      = 1
)

// ReputeClient is the surface of the repute service consumed by the gateway.
type ReputeClient interface {
	GetLevel(ctx context.Context, principal string) (uint64, error)
	SetLevel(ctx context.Context, principal string, level uint64) error
}

// CollateralClient is the surface of the collateral service consumed by the gateway.
type CollateralClient interface {
	GetCollateral(ctx context.Context, principal string) (uint64, error)
	Deposit(ctx context.Context, principal string, amount uint64) error
}

// LoansClient is the surface of the loans service consumed by the gateway.
type LoansClient interface {
	Ping(ctx context.Context) (string, error)
	RegisterUser(ctx context.Context, principal string) error
	GetSummary(ctx context.Context, principal string) (*loansclient.Summary, error)
	RequestLoan(ctx context.Context, principal string, amount uint64) (*loansclient.Decision, error)
	Repay(ctx context.Context, principal string, loanID uint64, amount uint64) (*loansclient.RepayOutcome, error)
}

// TrustAIClient is the surface of the trust_ai service consumed by the gateway.
type TrustAIClient interface {
	Recommend(ctx context.Context, principal string, collateral uint64, trust uint64) (*trustaiclient.Recommendation, error)
}

// EventBusClient is the surface of the event_bus service consumed by the gateway.
type EventBusClient interface {
	Emit(ctx context.Context, event string) error
	ListRecent(ctx context.Context, limit uint64) ([]string, error)
}

// Service provides the orchestration logic of the gateway.
type Service struct {
	repute     ReputeClient
	collateral CollateralClient
	loans      LoansClient
	trustAI    TrustAIClient
	eventBus   EventBusClient
	audit      *AuditEmitter

	healthProbeTimeout time.Duration
	recentEventsLimit  uint64

	rateLimiter       RateLimiter
	loanAppsPerMinute int
}

// NewService creates a new gateway service instance.
func NewService(
	repute ReputeClient,
	collateral CollateralClient,
	loans LoansClient,
	trustAI TrustAIClient,
	eventBus EventBusClient,
	audit *AuditEmitter,
	healthProbeTimeout time.Duration,
	recentEventsLimit uint64,
) *Service {
	if healthProbeTimeout <= 0 {
		healthProbeTimeout = defaultHealthProbeTimeout
	}
	if recentEventsLimit == 0 {
		recentEventsLimit = defaultRecentEventsLimit
	}
	return &Service{
		repute:             repute,
		collateral:         collateral,
		loans:              loans,
		trustAI:            trustAI,
		eventBus:           eventBus,
		audit:              audit,
		healthProbeTimeout: healthProbeTimeout,
		recentEventsLimit:  recentEventsLimit,
	}
}

// SetLoanApplicationRateLimiter enables distributed rate limiting for the
// loan-application workflow. Without a limiter applications are unthrottled.
func (s *Service) SetLoanApplicationRateLimiter(limiter RateLimiter, perMinute int) {
	s.rateLimiter = limiter
	s.loanAppsPerMinute = perMinute
}

// GetUserProfile aggregates reputation, collateral, and loan data into one
// fully-populated profile. It never returns an error: each of the three
// source reads is issued concurrently, its outcome is captured independently,
// and a failure populates the field's zero value instead.
func (s *Service) GetUserProfile(ctx context.Context, rawUserID string) domain.UserProfile {
	return s.profileForPrincipal(ctx, identity.Resolve(rawUserID))
}

func (s *Service) profileForPrincipal(ctx context.Context, principal string) domain.UserProfile {
	var (
		level      uint64
		collateral uint64
		summary    = emptySummary()
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		v, err := s.repute.GetLevel(ctx, principal)
		if err != nil {
			log.Printf("level=warn component=profile msg=\"reputation read failed; defaulting level\" principal=%s err=%v", principal, err)
			return
		}
		level = v
	}()

	go func() {
		defer wg.Done()
		v, err := s.collateral.GetCollateral(ctx, principal)
		if err != nil {
			log.Printf("level=warn component=profile msg=\"collateral read failed; defaulting balance\" principal=%s err=%v", principal, err)
			return
		}
		collateral = v
	}()

	go func() {
		defer wg.Done()
		remote, err := s.loans.GetSummary(ctx, principal)
		if err != nil {
			log.Printf("level=warn component=profile msg=\"loan summary read failed; defaulting summary\" principal=%s err=%v", principal, err)
			return
		}
		summary = toDomainSummary(remote)
	}()

	wg.Wait()

	return domain.UserProfile{
		UserID:     principal,
		Level:      level,
		Collateral: collateral,
		Summary:    summary,
	}
}

// ProcessLoanApplication runs the loan-application workflow: aggregate the
// applicant's profile, ask trust_ai for a recommendation based on it, then
// record a best-effort audit entry. The requested amount is recorded for the
// audit trail only; actually opening a loan is the separate RequestLoan
// operation.
//
// A trust_ai failure is the one fatal outcome: there is no safe default for
// a missing recommendation, so it surfaces as ServiceUnavailable(trustAi).
func (s *Service) ProcessLoanApplication(ctx context.Context, rawUserID string, requestedAmount uint64) (*domain.LoanApplicationResult, error) {
	principal := identity.Resolve(rawUserID)

	if err := s.consumeLoanApplicationBudget(ctx, principal); err != nil {
		return nil, err
	}

	profile := s.profileForPrincipal(ctx, principal)

	recommendation, err := s.trustAI.Recommend(ctx, principal, profile.Collateral, profile.Level)
	if err != nil {
		return nil, domain.NewServiceUnavailable(domain.ServiceTrustAI, err)
	}

	s.audit.Emit(ctx, fmt.Sprintf(
		"Loan application processed: User %s, Amount: %d, Decision: %s",
		principal, requestedAmount, recommendation.Decision,
	))

	return &domain.LoanApplicationResult{
		Recommendation: domain.TrustRecommendation{
			Decision: recommendation.Decision,
			Score:    recommendation.Score,
			Reasons:  recommendation.Reasons,
		},
		Profile: profile,
	}, nil
}

// CheckHealth probes each of the five services with one minimal read-only
// call under a short fixed timeout. Probe failures are isolated per service;
// the report is rebuilt from scratch on every call.
func (s *Service) CheckHealth(ctx context.Context) domain.HealthReport {
	probes := []struct {
		name  string
		probe func(context.Context) error
	}{
		{domain.ServiceLoans, func(ctx context.Context) error {
			_, err := s.loans.Ping(ctx)
			return err
		}},
		{domain.ServiceEventBus, func(ctx context.Context) error {
			_, err := s.eventBus.ListRecent(ctx, 1)
			return err
		}},
		{domain.ServiceRepute, func(ctx context.Context) error {
			_, err := s.repute.GetLevel(ctx, identity.AnonymousPrincipal)
			return err
		}},
		{domain.ServiceCollateral, func(ctx context.Context) error {
			_, err := s.collateral.GetCollateral(ctx, identity.AnonymousPrincipal)
			return err
		}},
		{domain.ServiceTrustAI, func(ctx context.Context) error {
			_, err := s.trustAI.Recommend(ctx, identity.AnonymousPrincipal, probeCollateral, probeTrust)
			return err
		}},
	}

	report := domain.HealthReport{
		Services:  make(map[string]bool, len(probes)),
		CheckedAt: time.Now().UTC(),
	}

	for _, p := range probes {
		probeCtx, cancel := context.WithTimeout(ctx, s.healthProbeTimeout)
		err := p.probe(probeCtx)
		cancel()

		report.Services[p.name] = err == nil
		if err != nil {
			log.Printf("level=warn component=health msg=\"service probe failed\" service=%s err=%v", p.name, err)
		}
	}

	return report
}

func (s *Service) consumeLoanApplicationBudget(ctx context.Context, principal string) error {
	if s.rateLimiter == nil || s.loanAppsPerMinute <= 0 {
		return nil
	}

	count, retryAfter, err := s.rateLimiter.ConsumeRateLimit(ctx, "loan_application", principal, s.loanAppsPerMinute, time.Minute)
	if err != nil {
		// Fail open: a broken limiter must not block loan applications.
		log.Printf("level=warn component=loan_application msg=\"rate limiter unavailable; allowing request\" principal=%s err=%v", principal, err)
		return nil
	}
	if count > s.loanAppsPerMinute {
		return &RateLimitedError{RetryAfterSeconds: retryAfter}
	}
	return nil
}

func emptySummary() domain.LoanSummary {
	return domain.LoanSummary{Loans: []domain.LoanRecord{}}
}

func toDomainSummary(remote *loansclient.Summary) domain.LoanSummary {
	summary := domain.LoanSummary{
		Registered:    remote.Registered,
		TotalBorrowed: remote.TotalBorrowed,
		Loans:         make([]domain.LoanRecord, 0, len(remote.Loans)),
	}
	for _, loan := range remote.Loans {
		summary.Loans = append(summary.Loans, domain.LoanRecord{
			ID:     loan.ID,
			Status: loan.Status,
			Amount: loan.Amount,
		})
	}
	return summary
}

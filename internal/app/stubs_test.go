package app

import (
	"context"
	"errors"
	"sync"

	"github.com/icroots/roots-gateway/pkg/loansclient"
	"github.com/icroots/roots-gateway/pkg/trustaiclient"
)

var errRemoteDown = errors.New("connection refused")

type reputeStub struct {
	level    uint64
	getErr   error
	setErr   error
	setCalls int
}

func (s *reputeStub) GetLevel(ctx context.Context, principal string) (uint64, error) {
	return s.level, s.getErr
}

func (s *reputeStub) SetLevel(ctx context.Context, principal string, level uint64) error {
	s.setCalls++
	return s.setErr
}

type collateralStub struct {
	collateral   uint64
	getErr       error
	depositErr   error
	depositCalls int
}

func (s *collateralStub) GetCollateral(ctx context.Context, principal string) (uint64, error) {
	return s.collateral, s.getErr
}

func (s *collateralStub) Deposit(ctx context.Context, principal string, amount uint64) error {
	s.depositCalls++
	return s.depositErr
}

type loansStub struct {
	pingErr     error
	registerErr error

	summary    *loansclient.Summary
	summaryErr error

	decision   *loansclient.Decision
	requestErr error

	repayOutcome *loansclient.RepayOutcome
	repayErr     error
}

func (s *loansStub) Ping(ctx context.Context) (string, error) {
	if s.pingErr != nil {
		return "", s.pingErr
	}
	return "ok", nil
}

func (s *loansStub) RegisterUser(ctx context.Context, principal string) error {
	return s.registerErr
}

func (s *loansStub) GetSummary(ctx context.Context, principal string) (*loansclient.Summary, error) {
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	if s.summary != nil {
		return s.summary, nil
	}
	return &loansclient.Summary{}, nil
}

func (s *loansStub) RequestLoan(ctx context.Context, principal string, amount uint64) (*loansclient.Decision, error) {
	if s.requestErr != nil {
		return nil, s.requestErr
	}
	if s.decision != nil {
		return s.decision, nil
	}
	return &loansclient.Decision{Decision: "APPROVE"}, nil
}

func (s *loansStub) Repay(ctx context.Context, principal string, loanID uint64, amount uint64) (*loansclient.RepayOutcome, error) {
	if s.repayErr != nil {
		return nil, s.repayErr
	}
	if s.repayOutcome != nil {
		return s.repayOutcome, nil
	}
	return &loansclient.RepayOutcome{Status: "Active"}, nil
}

type trustAIStub struct {
	recommendation *trustaiclient.Recommendation
	err            error
	calls          int
}

func (s *trustAIStub) Recommend(ctx context.Context, principal string, collateral uint64, trust uint64) (*trustaiclient.Recommendation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if s.recommendation != nil {
		return s.recommendation, nil
	}
	return &trustaiclient.Recommendation{Decision: "REVIEW"}, nil
}

type eventBusStub struct {
	mu      sync.Mutex
	emitted []string
	emitErr error

	events  []string
	listErr error
}

func (s *eventBusStub) Emit(ctx context.Context, event string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, event)
	return s.emitErr
}

func (s *eventBusStub) ListRecent(ctx context.Context, limit uint64) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.events, nil
}

func (s *eventBusStub) emitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.emitted)
}

type stubClients struct {
	repute     *reputeStub
	collateral *collateralStub
	loans      *loansStub
	trustAI    *trustAIStub
	eventBus   *eventBusStub
}

func newStubClients() *stubClients {
	return &stubClients{
		repute:     &reputeStub{},
		collateral: &collateralStub{},
		loans:      &loansStub{},
		trustAI:    &trustAIStub{},
		eventBus:   &eventBusStub{},
	}
}

func newTestService(c *stubClients) *Service {
	audit := NewAuditEmitter(c.eventBus, nil, "roots.events")
	return NewService(c.repute, c.collateral, c.loans, c.trustAI, c.eventBus, audit, 0, 0)
}

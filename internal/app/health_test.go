package app

import (
	"context"
	"reflect"
	"testing"

	"github.com/icroots/roots-gateway/internal/domain"
)

func TestCheckHealth_AllServicesHealthy(t *testing.T) {
	clients := newStubClients()
	service := newTestService(clients)

	report := service.CheckHealth(context.Background())

	if len(report.Services) != 5 {
		t.Fatalf("expected 5 services in report, got %d", len(report.Services))
	}
	for name, healthy := range report.Services {
		if !healthy {
			t.Fatalf("expected %s to be healthy", name)
		}
	}
	if report.CheckedAt.IsZero() {
		t.Fatal("expected CheckedAt to be set")
	}
}

func TestCheckHealth_FailuresAreIsolatedPerService(t *testing.T) {
	clients := newStubClients()
	clients.loans.pingErr = errRemoteDown
	clients.repute.getErr = errRemoteDown
	service := newTestService(clients)

	report := service.CheckHealth(context.Background())

	want := map[string]bool{
		domain.ServiceLoans:      false,
		domain.ServiceRepute:     false,
		domain.ServiceEventBus:   true,
		domain.ServiceCollateral: true,
		domain.ServiceTrustAI:    true,
	}
	if !reflect.DeepEqual(report.Services, want) {
		t.Fatalf("expected %v, got %v", want, report.Services)
	}
}

func TestCheckHealth_RepeatedCallsAgree(t *testing.T) {
	clients := newStubClients()
	clients.eventBus.listErr = errRemoteDown
	service := newTestService(clients)

	first := service.CheckHealth(context.Background())
	second := service.CheckHealth(context.Background())

	if !reflect.DeepEqual(first.Services, second.Services) {
		t.Fatalf("expected identical reports with unchanged remote state: %v vs %v", first.Services, second.Services)
	}
	if first.Services[domain.ServiceEventBus] {
		t.Fatal("expected eventBus to be reported unhealthy")
	}
}

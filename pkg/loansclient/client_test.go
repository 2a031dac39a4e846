package loansclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetSummary_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/users/2vxsx-fae/summary" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Summary{
			Registered:    true,
			TotalBorrowed: 5000,
			Loans:         []LoanInfo{{ID: 1, Status: "Active", Amount: 5000}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	summary, err := client.GetSummary(context.Background(), "2vxsx-fae")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !summary.Registered || summary.TotalBorrowed != 5000 || len(summary.Loans) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRequestLoan_SendsPrincipalAndAmount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/loans" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Principal string `json:"principal"`
			Amount    uint64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Principal != "2vxsx-fae" || payload.Amount != 1000 {
			t.Fatalf("unexpected payload: %+v", payload)
		}
		loanID := uint64(42)
		json.NewEncoder(w).Encode(Decision{LoanID: &loanID, Decision: "APPROVE", Score: 88})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	decision, err := client.RequestLoan(context.Background(), "2vxsx-fae", 1000)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if decision.LoanID == nil || *decision.LoanID != 42 || decision.Decision != "APPROVE" {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestErrorStatusIsTranslated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if _, err := client.GetSummary(context.Background(), "2vxsx-fae"); err == nil {
		t.Fatal("expected error for 500 response")
	}
	if err := client.RegisterUser(context.Background(), "2vxsx-fae"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestEmptyBaseURLFailsFast(t *testing.T) {
	client := NewClient("", "")
	if _, err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected error for empty base url")
	}
}

func TestInternalAPIKeyHeaderIsSent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Internal-API-Key") != "sekret" {
			t.Fatalf("expected internal api key header, got %q", r.Header.Get("X-Internal-API-Key"))
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sekret")
	if _, err := client.Ping(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

package collateralclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetCollateralAndDeposit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/collateral/2vxsx-fae":
			json.NewEncoder(w).Encode(map[string]uint64{"collateral": 1000})
		case r.Method == "POST" && r.URL.Path == "/collateral/2vxsx-fae/deposits":
			var payload struct {
				Amount uint64 `json:"amount"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if payload.Amount != 500 {
				t.Fatalf("expected amount 500, got %d", payload.Amount)
			}
			w.WriteHeader(http.StatusCreated)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	collateral, err := client.GetCollateral(context.Background(), "2vxsx-fae")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if collateral != 1000 {
		t.Fatalf("expected collateral 1000, got %d", collateral)
	}

	if err := client.Deposit(context.Background(), "2vxsx-fae", 500); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestErrorStatusIsTranslated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.GetCollateral(context.Background(), "2vxsx-fae"); err == nil {
		t.Fatal("expected error for 502 response")
	}
	if err := client.Deposit(context.Background(), "2vxsx-fae", 1); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

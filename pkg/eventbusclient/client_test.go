package eventbusclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmit_PostsEvent(t *testing.T) {
	var received string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/events" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Event string `json:"event"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		received = payload.Event
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.Emit(context.Background(), "Collateral deposited: 1000 by 2vxsx-fae"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if received != "Collateral deposited: 1000 by 2vxsx-fae" {
		t.Fatalf("unexpected event payload: %q", received)
	}
}

func TestListRecent_PassesLimitAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "3" {
			t.Fatalf("expected limit=3, got %q", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode(map[string][]string{
			"events": {"third", "second", "first"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	events, err := client.ListRecent(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(events) != 3 || events[0] != "third" {
		t.Fatalf("unexpected events: %v", events)
	}
}

func TestErrorStatusIsTranslated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.Emit(context.Background(), "event"); err == nil {
		t.Fatal("expected error for 503 response")
	}
	if _, err := client.ListRecent(context.Background(), 1); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

package reputeclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetLevel_DecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/levels/2vxsx-fae" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]uint64{"level": 3})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	level, err := client.GetLevel(context.Background(), "2vxsx-fae")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if level != 3 {
		t.Fatalf("expected level 3, got %d", level)
	}
}

func TestSetLevel_PutsLevel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" || r.URL.Path != "/levels/2vxsx-fae" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Level uint64 `json:"level"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload.Level != 5 {
			t.Fatalf("expected level 5, got %d", payload.Level)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.SetLevel(context.Background(), "2vxsx-fae", 5); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestErrorStatusIsTranslated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if _, err := client.GetLevel(context.Background(), "2vxsx-fae"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if err := client.SetLevel(context.Background(), "2vxsx-fae", 1); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

/**
 * @description
 * This package provides a client for communicating with the event_bus service,
 * the append-only audit log shared by the ledger services. The client is a
 * pure forwarder; the best-effort semantics around audit emission live in the
 * app layer, not here.
 */
package eventbusclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the event_bus service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new event_bus service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Emit appends one event to the audit log.
func (c *Client) Emit(ctx context.Context, event string) error {
	if c.baseURL == "" {
		return fmt.Errorf("event_bus service base url is empty")
	}

	body, err := json.Marshal(map[string]string{"event": event})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/events", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request to event_bus service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("event_bus service returned error status %d", resp.StatusCode)
	}

	return nil
}

// ListRecent fetches up to limit of the most recent events, newest first.
func (c *Client) ListRecent(ctx context.Context, limit uint64) ([]string, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("event_bus service base url is empty")
	}

	endpoint := fmt.Sprintf("%s/events?limit=%d", c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to event_bus service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("event_bus service returned error status %d", resp.StatusCode)
	}

	var payload struct {
		Events []string `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Events, nil
}

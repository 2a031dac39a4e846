/**
 * @description
 * This package provides a client for communicating with the repute service.
 * It encapsulates the API calls for reading and writing a user's reputation
 * level, keyed by principal.
 */
package reputeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the repute service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new repute service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type levelPayload struct {
	Level uint64 `json:"level"`
}

// GetLevel fetches the reputation level for the given principal.
func (c *Client) GetLevel(ctx context.Context, principal string) (uint64, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("repute service base url is empty")
	}

	endpoint := fmt.Sprintf("%s/levels/%s", c.baseURL, url.PathEscape(principal))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request to repute service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("repute service returned error status %d", resp.StatusCode)
	}

	var payload levelPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Level, nil
}

// SetLevel updates the reputation level for the given principal.
func (c *Client) SetLevel(ctx context.Context, principal string, level uint64) error {
	if c.baseURL == "" {
		return fmt.Errorf("repute service base url is empty")
	}

	endpoint := fmt.Sprintf("%s/levels/%s", c.baseURL, url.PathEscape(principal))

	body, err := json.Marshal(levelPayload{Level: level})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "PUT", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request to repute service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("repute service returned error status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}
}

/**
 * @description
 * This package provides a client for communicating with the collateral service.
 * It encapsulates the API calls for reading a user's collateral balance and
 * recording deposits. Balances are owned by the remote ledger; this client
 * never computes them locally.
 */
package collateralclient

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

// Client is a client for the collateral service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new collateral service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetCollateral fetches the collateral balance for the given principal.
func (c *Client) GetCollateral(ctx context.Context, principal string) (uint64, error) {
	if c.baseURL == "" {
		return 0, fmt.Errorf("collateral service base url is empty")
	}

	endpoint := fmt.Sprintf("%s/collateral/%s", c.baseURL, url.PathEscape(principal))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request to collateral service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return 0, fmt.Errorf("collateral service returned error status %d", resp.StatusCode)
	}

	var payload struct {
		Collateral uint64 `json:"collateral"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	return payload.Collateral, nil
}

// Deposit records a collateral deposit for the given principal.
func (c *Client) Deposit(ctx context.Context, principal string, amount uint64) error {
	if c.baseURL == "" {
		return fmt.Errorf("collateral service base url is empty")
	}

	endpoint := fmt.Sprintf("%s/collateral/%s/deposits", c.baseURL, url.PathEscape(principal))

	body, err := json.Marshal(map[string]uint64{"amount": amount})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request to collateral service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("collateral service returned error status %d", resp.StatusCode)
	}

	return nil
}

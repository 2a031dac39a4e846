/**
 * @description
 * This package provides a client for communicating with the trust_ai service,
 * the scoring oracle behind loan decisions. The gateway submits a principal
 * plus its current collateral and trust level and receives an opaque
 * recommendation; the scoring logic itself lives entirely in the remote
 * service.
 */
package trustaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the trust_ai service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new trust_ai service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// RecommendRequest is the payload submitted for a recommendation.
type RecommendRequest struct {
	Principal  string `json:"principal"`
	Collateral uint64 `json:"collateral"`
	Trust      uint64 `json:"trust"`
}

// Recommendation is the trust_ai service's scoring response.
type Recommendation struct {
	Decision string   `json:"decision"`
	Score    uint64   `json:"score"`
	Reasons  []string `json:"reasons"`
}

// Recommend asks the trust_ai service for a loan recommendation.
func (c *Client) Recommend(ctx context.Context, principal string, collateral uint64, trust uint64) (*Recommendation, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("trust_ai service base url is empty")
	}

	body, err := json.Marshal(RecommendRequest{
		Principal:  principal,
		Collateral: collateral,
		Trust:      trust,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/recommendations", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to trust_ai service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("trust_ai service returned error status %d", resp.StatusCode)
	}

	var recommendation Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&recommendation); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &recommendation, nil
}

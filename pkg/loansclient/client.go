/**
 * @description
 * This package provides a client for communicating with the loans service.
 * It covers the full loans surface: liveness ping, user registration, the
 * per-user loan summary, loan requests, and repayments.
 *
 * @notes
 * - The summary and decision types here mirror the loans service wire format.
 *   The gateway's own domain types are mapped in the app layer.
 */
package loansclient

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

// Client is a client for the loans service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new loans service client.
func NewClient(baseURL string, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// LoanInfo is one loan entry in a user summary.
type LoanInfo struct {
	ID     uint64 `json:"id"`
	Status string `json:"status"`
	Amount uint64 `json:"amount"`
}

// Summary is the loans service's per-user summary response.
type Summary struct {
	Registered    bool       `json:"registered"`
	TotalBorrowed uint64     `json:"total_borrowed"`
	Loans         []LoanInfo `json:"loans"`
}

// Decision is the loans service's response to a loan request.
type Decision struct {
	LoanID   *uint64  `json:"loan_id,omitempty"`
	Decision string   `json:"decision"`
	Score    uint64   `json:"score"`
	Reasons  []string `json:"reasons"`
}

// RepayOutcome is the loans service's response to a repayment.
type RepayOutcome struct {
	Repaid    uint64 `json:"repaid"`
	Remaining uint64 `json:"remaining"`
	Status    string `json:"status"`
}

// Ping issues a liveness check against the loans service.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, "GET", "/ping", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return payload.Status, nil
}

// RegisterUser registers the given principal with the loans service.
func (c *Client) RegisterUser(ctx context.Context, principal string) error {
	resp, err := c.do(ctx, "POST", "/users", map[string]string{"principal": principal})
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// GetSummary fetches the loan summary for the given principal.
func (c *Client) GetSummary(ctx context.Context, principal string) (*Summary, error) {
	resp, err := c.do(ctx, "GET", fmt.Sprintf("/users/%s/summary", url.PathEscape(principal)), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &summary, nil
}

// RequestLoan submits a loan request for the given principal and amount.
func (c *Client) RequestLoan(ctx context.Context, principal string, amount uint64) (*Decision, error) {
	payload := map[string]interface{}{
		"principal": principal,
		"amount":    amount,
	}
	resp, err := c.do(ctx, "POST", "/loans", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decision Decision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &decision, nil
}

// Repay applies a repayment to the given loan on behalf of the principal.
func (c *Client) Repay(ctx context.Context, principal string, loanID uint64, amount uint64) (*RepayOutcome, error) {
	payload := map[string]interface{}{
		"principal": principal,
		"amount":    amount,
	}
	resp, err := c.do(ctx, "POST", fmt.Sprintf("/loans/%d/repayments", loanID), payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var outcome RepayOutcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &outcome, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("loans service base url is empty")
	}

	var reqBody *bytes.Buffer
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(body)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Internal-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request to loans service: %w", err)
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("loans service returned error status %d", resp.StatusCode)
	}

	return resp, nil
}

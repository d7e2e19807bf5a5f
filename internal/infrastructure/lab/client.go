// Package lab provides an HTTP client for the external lab information
// system that visit polling reads completed results from.
package lab

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/dukabook/backend/internal/domain/hospital"
	"github.com/dukabook/backend/internal/infrastructure/config"
)

// Client fetches completed lab results over HTTP
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a lab client from the watch configuration
func NewClient(cfg config.WatchConfig) *Client {
	return &Client{
		baseURL: cfg.LabBaseURL,
		http:    &http.Client{Timeout: cfg.LabTimeout},
	}
}

// FetchResults returns the completed results the lab system holds for a
// visit. An empty slice means the work is still pending.
func (c *Client) FetchResults(ctx context.Context, tenantID, visitID uuid.UUID) ([]hospital.LabResult, error) {
	endpoint, err := url.JoinPath(c.baseURL, "tenants", tenantID.String(), "visits", visitID.String(), "results")
	if err != nil {
		return nil, fmt.Errorf("building lab results URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building lab results request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching lab results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lab system returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []hospital.LabResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding lab results: %w", err)
	}

	return payload.Results, nil
}

var _ hospital.LabResultSource = (*Client)(nil)

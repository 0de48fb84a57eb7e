// Package sdk provides a Go client for the sophiakit dashboard.
//
// Basic usage:
//
//	c := sdk.NewClient("http://localhost:8501")
//	sum, err := c.Summary(ctx)
//	fmt.Println(sum.Ethics.Events, "ethical events")
package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Summary is returned by GET /api/summary. The diagnostics slices carry the
// loader messages for each artifact; counts stay meaningful either way since
// the dashboard degrades to typed defaults rather than failing.
type Summary struct {
	GeneratedAt string          `json:"generated_at"`
	Ethics      EthicsSummary   `json:"ethics"`
	Graph       GraphSummary    `json:"graph"`
	Log         EventLogSummary `json:"log"`
}

// EthicsSummary describes the ethics database artifact.
type EthicsSummary struct {
	Events         int      `json:"events"`
	TrendDirection string   `json:"trend_direction"` // "N/A" when absent
	AvgScore       float64  `json:"avg_score"`
	Diagnostics    []string `json:"diagnostics"`
}

// GraphSummary describes the knowledge graph artifact.
type GraphSummary struct {
	Nodes       int      `json:"nodes"`
	Edges       int      `json:"edges"`
	Diagnostics []string `json:"diagnostics"`
}

// EventLogSummary describes the system event log artifact.
type EventLogSummary struct {
	Entries     int      `json:"entries"`
	Diagnostics []string `json:"diagnostics"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// StatusError is returned when the dashboard answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("sophiakit: HTTP %d: %s", e.StatusCode, e.Body)
}

// Client talks to a running sophiakit dashboard.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the dashboard at baseURL, for example
// "http://localhost:8501".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Summary fetches the artifact summary: event, node, edge, and log entry
// counts plus any loader diagnostics.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var sum Summary
	if err := c.get(ctx, "/api/summary", &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// Health checks the dashboard health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

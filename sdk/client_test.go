package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:8501/")
	if c.baseURL != "http://localhost:8501" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}

func TestSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/summary" {
			t.Errorf("path = %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Summary{
			GeneratedAt: "2026-08-26T00:00:00Z",
			Ethics: EthicsSummary{
				Events:         12,
				TrendDirection: "improving",
				AvgScore:       0.81,
				Diagnostics:    []string{},
			},
			Graph: GraphSummary{Nodes: 40, Edges: 55, Diagnostics: []string{}},
			Log:   EventLogSummary{Entries: 300, Diagnostics: []string{}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	sum, err := c.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Ethics.Events != 12 {
		t.Errorf("ethics.events = %d", sum.Ethics.Events)
	}
	if sum.Ethics.TrendDirection != "improving" {
		t.Errorf("trend_direction = %q", sum.Ethics.TrendDirection)
	}
	if sum.Graph.Nodes != 40 || sum.Graph.Edges != 55 {
		t.Errorf("graph = %d/%d", sum.Graph.Nodes, sum.Graph.Edges)
	}
	if sum.Log.Entries != 300 {
		t.Errorf("log.entries = %d", sum.Log.Entries)
	}
}

func TestSummary_CarriesDiagnostics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Summary{
			Ethics: EthicsSummary{
				TrendDirection: "N/A",
				Diagnostics:    []string{"Ethics DB file not found at /tmp/x. Please check the path."},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	sum, err := c.Summary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(sum.Ethics.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v", sum.Ethics.Diagnostics)
	}
	if sum.Ethics.TrendDirection != "N/A" {
		t.Errorf("trend_direction = %q, want N/A", sum.Ethics.TrendDirection)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestGet_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nothing here", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Summary(context.Background())
	if err == nil {
		t.Fatal("expected error for 404")
	}

	se, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if se.StatusCode != 404 {
		t.Errorf("status code = %d", se.StatusCode)
	}
	if se.Body != "nothing here" {
		t.Errorf("body = %q", se.Body)
	}
}

func TestGet_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1") // nothing listens here
	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

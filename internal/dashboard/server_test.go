package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sophiakit/sophiakit/internal/config"
)

const testEthicsDB = `{
  "ethical_events": [
    {"timestamp": "2024-03-01T10:00:00Z", "action": "memory_write", "final_score": 0.71},
    {"timestamp": "2024-03-02T10:00:00Z", "action": "concept_link", "final_score": 0.82}
  ],
  "trend_analysis": {"current_trend_direction": "stable", "short_term_avg_score_t_weighted": 0.78},
  "schema_version": 3
}`

const testKnowledgeGraph = `{
  "nodes": [{"id": "sophia", "label": "Sophia"}, {"id": "ethics", "label": "Ethics"}],
  "edges": [{"source": "sophia", "target": "ethics", "relation": "considers"}]
}`

const testSystemEventLog = `{"timestamp": "2024-03-01T10:00:00Z", "level": "INFO", "message": "System initialized."}
{"timestamp": "2024-03-01T10:00:05Z", "level": "WARNING", "message": "Memory usage above threshold.", "usage_pct": 91}
{"timestamp": "2024-03-01T10:00:09Z", "level": "ERROR", "message": "Persona load failed."}
`

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testConfig(dir string) *config.Config {
	cfg := config.Defaults()
	cfg.Artifacts.EthicsDB = filepath.Join(dir, "ethics_db.json")
	cfg.Artifacts.KnowledgeGraph = filepath.Join(dir, "knowledge_graph.json")
	cfg.Artifacts.SystemEventLog = filepath.Join(dir, "system_events.log")
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFixture(t, cfg.Artifacts.EthicsDB, testEthicsDB)
	writeFixture(t, cfg.Artifacts.KnowledgeGraph, testKnowledgeGraph)
	writeFixture(t, cfg.Artifacts.SystemEventLog, testSystemEventLog)

	return NewServer(cfg, testLogger())
}

func TestServer_Pages(t *testing.T) {
	srv := newTestServer(t)
	handler := srv.Handler()

	pages := []struct {
		path     string
		contains string
	}{
		{"/trends", "Ethical Trends"},
		{"/trends", "Current Trend Direction"},
		{"/trends", "stable"},
		{"/trends", "0.78"},
		{"/trends", "Ethical Score Over Time"},
		{"/graph", "Knowledge Graph"},
		{"/graph", "Total Nodes"},
		{"/graph", "Total Edges"},
		{"/graph", "Interactive graph visualization"},
		{"/logs", "Last 20 Log Entries"},
		{"/logs", "System initialized."},
		{"/logs", "Persona load failed."},
		{"/logs", "usage_pct=91"},
		{"/health", `"status":"ok"`},
		{"/api/summary", `"trend_direction":"stable"`},
		// Last: the counters above must have been incremented by now.
		{"/metrics", "sophiakit_page_renders_total"},
		{"/metrics", "sophiakit_artifact_loads_total"},
	}

	for _, p := range pages {
		req := httptest.NewRequest("GET", p.path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", p.path, w.Code)
		}
		if !strings.Contains(w.Body.String(), p.contains) {
			t.Errorf("%s: body should contain %q", p.path, p.contains)
		}
	}
}

func TestServer_RootRedirect(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("root: status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/trends" {
		t.Errorf("root: redirect to %q, want /trends", loc)
	}
}

func TestServer_UnknownPath(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/nope", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown path: status = %d, want 404", w.Code)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/trends", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /trends: status = %d, want 405", w.Code)
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry an X-Request-ID header")
	}
}

func TestTrends_MissingArtifact(t *testing.T) {
	cfg := testConfig(t.TempDir()) // nothing written
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/trends", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("trends with missing file: status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Ethics DB file not found") {
		t.Error("page should surface the loader diagnostic")
	}
	if !strings.Contains(body, "No ethical events data loaded or data is empty. Cannot display trends.") {
		t.Error("page should render the empty-data warning")
	}
}

func TestTrends_NoTrendSummary(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFixture(t, cfg.Artifacts.EthicsDB, `{
  "ethical_events": [{"timestamp": "2024-03-01T10:00:00Z", "final_score": 0.5}]
}`)
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/trends", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "No trend analysis summary available in the data.") {
		t.Error("page should render the no-summary notice")
	}
	if strings.Contains(body, "Current Trend Direction") {
		t.Error("metrics should not render without a trend summary")
	}
}

func TestTrends_ChartErrorMissingTimestamp(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFixture(t, cfg.Artifacts.EthicsDB, `{
  "ethical_events": [{"action": "reflect", "final_score": 0.5}]
}`)
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/trends", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "&#39;timestamp&#39; column missing in ethical events data.") {
		t.Error("page should render the missing-timestamp chart error")
	}
}

func TestGraph_NullCollections(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFixture(t, cfg.Artifacts.KnowledgeGraph, `{"nodes": null, "edges": null}`)
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/graph", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Knowledge graph data could not be loaded or is empty.") {
		t.Error("page should render the unavailable warning")
	}
	if strings.Contains(body, "Total Nodes") {
		t.Error("overview should not render for a structureless graph")
	}
}

func TestGraph_MissingFileShowsZeroCounts(t *testing.T) {
	cfg := testConfig(t.TempDir())
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/graph", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Knowledge Graph file not found") {
		t.Error("page should surface the loader diagnostic")
	}
	if !strings.Contains(body, "Total Nodes") {
		t.Error("the default graph still renders zero counts")
	}
	if !strings.Contains(body, "Consider checking file paths or content if you expected data.") {
		t.Error("zero counts should render the hint")
	}
}

func TestLogs_TailWindow(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	var b strings.Builder
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&b, `{"level": "INFO", "message": "tail event %d"}`+"\n", i)
	}
	writeFixture(t, cfg.Artifacts.SystemEventLog, b.String())
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/logs", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Last 20 Log Entries") {
		t.Error("heading should name the configured window")
	}
	if !strings.Contains(body, "tail event 25") {
		t.Error("newest entry should be displayed")
	}
	if !strings.Contains(body, "tail event 6") {
		t.Error("oldest entry of the window should be displayed")
	}
	if strings.Contains(body, `tail event 5"`) {
		t.Error("entries before the window should not be displayed")
	}
}

func TestLogs_HeadingWithFewerEntries(t *testing.T) {
	srv := newTestServer(t) // three entries, window 20

	req := httptest.NewRequest("GET", "/logs", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "Last 20 Log Entries") {
		t.Error("heading should name the configured window even with fewer entries")
	}
}

func TestLogs_MissingFile(t *testing.T) {
	cfg := testConfig(t.TempDir())
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/logs", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "System Event Log file not found") {
		t.Error("page should surface the loader diagnostic")
	}
	if !strings.Contains(body, "No system event log data loaded or the log is empty.") {
		t.Error("page should render the empty-log warning")
	}
}

func TestLogs_SkippedLineNotice(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFixture(t, cfg.Artifacts.SystemEventLog,
		`{"level": "INFO", "message": "first"}
not json at all
{"level": "INFO", "message": "third"}
`)
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/logs", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "line 2") {
		t.Error("page should surface the skipped-line diagnostic")
	}
	if !strings.Contains(body, "first") || !strings.Contains(body, "third") {
		t.Error("surviving entries should still render")
	}
}

func TestAPISummary(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/summary", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("summary: status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q, want application/json", ct)
	}

	var got struct {
		Ethics struct {
			Events         int      `json:"events"`
			TrendDirection string   `json:"trend_direction"`
			AvgScore       float64  `json:"avg_score"`
			Diagnostics    []string `json:"diagnostics"`
		} `json:"ethics"`
		Graph struct {
			Nodes       int      `json:"nodes"`
			Edges       int      `json:"edges"`
			Diagnostics []string `json:"diagnostics"`
		} `json:"graph"`
		Log struct {
			Entries     int      `json:"entries"`
			Diagnostics []string `json:"diagnostics"`
		} `json:"log"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}

	if got.Ethics.Events != 2 {
		t.Errorf("ethics.events = %d, want 2", got.Ethics.Events)
	}
	if got.Ethics.TrendDirection != "stable" {
		t.Errorf("ethics.trend_direction = %q, want stable", got.Ethics.TrendDirection)
	}
	if got.Graph.Nodes != 2 || got.Graph.Edges != 1 {
		t.Errorf("graph counts = %d/%d, want 2/1", got.Graph.Nodes, got.Graph.Edges)
	}
	if got.Log.Entries != 3 {
		t.Errorf("log.entries = %d, want 3", got.Log.Entries)
	}
	if len(got.Ethics.Diagnostics) != 0 {
		t.Errorf("ethics diagnostics = %v, want none", got.Ethics.Diagnostics)
	}
}

func TestAPISummary_DegradedArtifacts(t *testing.T) {
	cfg := testConfig(t.TempDir()) // no artifacts on disk
	srv := NewServer(cfg, testLogger())

	req := httptest.NewRequest("GET", "/api/summary", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("degraded summary: status = %d, want 200", w.Code)
	}

	type section struct {
		Diagnostics []string `json:"diagnostics"`
	}
	var got struct {
		Ethics section `json:"ethics"`
		Graph  section `json:"graph"`
		Log    section `json:"log"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	for name, sec := range map[string]section{"ethics": got.Ethics, "graph": got.Graph, "log": got.Log} {
		if len(sec.Diagnostics) != 1 {
			t.Errorf("%s diagnostics = %v, want one not-found message", name, sec.Diagnostics)
		}
	}
}

package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sophiakit/sophiakit/internal/artifact"
	"github.com/sophiakit/sophiakit/internal/notify"
)

// noticeView is one loader diagnostic rendered at the top of a page, in the
// order the loader reported it.
type noticeView struct {
	Level string
	Text  string
}

func noticeViews(rec *notify.Recorder) []noticeView {
	diags := rec.Diagnostics()
	views := make([]noticeView, 0, len(diags))
	for _, d := range diags {
		views = append(views, noticeView{Level: string(d.Severity), Text: d.Message})
	}
	return views
}

// pageReporter pairs a per-request recorder for on-page notices with the
// server log, so every load problem shows up in both places.
func (s *Server) pageReporter() (*notify.Recorder, notify.Reporter) {
	rec := notify.NewRecorder()
	return rec, notify.Multi(rec, notify.NewLogger(s.logger))
}

// annotateSpan attaches page and degradation info to the active span. With
// tracing disabled the context carries a noop span and this does nothing.
func annotateSpan(ctx context.Context, page string, recs ...*notify.Recorder) {
	total := 0
	for _, rec := range recs {
		total += rec.Len()
	}
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("sophiakit.page", page),
		attribute.Int("sophiakit.diagnostics", total),
	)
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	rec, rep := s.pageReporter()

	start := time.Now()
	db := artifact.LoadEthicsDatabase(s.cfg.Artifacts.EthicsDB, rep)
	s.metrics.observeLoad("ethics_db", start, rec.Len() > 0)
	s.metrics.pageRenders.WithLabelValues("trends").Inc()
	annotateSpan(r.Context(), "trends", rec)

	data := map[string]any{
		"Active":  "trends",
		"Notices": noticeViews(rec),
	}

	if len(db.Events) == 0 {
		data["Empty"] = "No ethical events data loaded or data is empty. Cannot display trends."
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = trendsTmpl.Execute(w, data)
		return
	}

	if db.Trend.IsEmpty() {
		data["TrendNotice"] = "No trend analysis summary available in the data."
	} else {
		data["Direction"] = db.Trend.Direction()
		data["AvgScore"] = fmt.Sprintf("%.2f", db.Trend.AvgScore())
	}

	points, err := artifact.ScoreSeries(db.Events)
	if err != nil {
		data["ChartError"] = artifact.ChartErrorMessage(err)
	} else {
		data["Chart"] = buildChart(points)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = trendsTmpl.Execute(w, data)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	rec, rep := s.pageReporter()

	start := time.Now()
	g := artifact.LoadKnowledgeGraph(s.cfg.Artifacts.KnowledgeGraph, rep)
	s.metrics.observeLoad("knowledge_graph", start, rec.Len() > 0)
	s.metrics.pageRenders.WithLabelValues("graph").Inc()
	annotateSpan(r.Context(), "graph", rec)

	data := map[string]any{
		"Active":  "graph",
		"Notices": noticeViews(rec),
	}

	if !g.HasStructure() {
		data["Unavailable"] = "Knowledge graph data could not be loaded or is empty."
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = graphTmpl.Execute(w, data)
		return
	}

	data["NodeCount"] = len(g.Nodes)
	data["EdgeCount"] = len(g.Edges)
	if len(g.Nodes) == 0 && len(g.Edges) == 0 {
		data["Hint"] = "Consider checking file paths or content if you expected data."
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = graphTmpl.Execute(w, data)
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	rec, rep := s.pageReporter()

	start := time.Now()
	entries := artifact.LoadSystemEventLog(s.cfg.Artifacts.SystemEventLog, rep)
	s.metrics.observeLoad("system_event_log", start, rec.Len() > 0)
	s.metrics.pageRenders.WithLabelValues("logs").Inc()
	annotateSpan(r.Context(), "logs", rec)

	data := map[string]any{
		"Active":  "logs",
		"Notices": noticeViews(rec),
	}

	if len(entries) == 0 {
		data["Empty"] = "No system event log data loaded or the log is empty."
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = logsTmpl.Execute(w, data)
		return
	}

	// The heading names the configured window even when fewer entries exist.
	n := s.cfg.Display.LogEntries
	tail := artifact.Tail(entries, n)
	rows := make([]logRow, 0, len(tail))
	for _, e := range tail {
		rows = append(rows, logRowFrom(e))
	}
	data["TailN"] = n
	data["Entries"] = rows

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = logsTmpl.Execute(w, data)
}

// logRow is one display row of the log table.
type logRow struct {
	Time       string
	Level      string
	LevelClass string
	Message    string
	Details    string
}

func logRowFrom(e artifact.LogEntry) logRow {
	if !e.IsObject() {
		// Non-object lines display their raw JSON text in the message column.
		return logRow{Message: string(e.Value)}
	}
	return logRow{
		Time:       e.Timestamp,
		Level:      e.Level,
		LevelClass: levelClass(e.Level),
		Message:    e.Message,
		Details:    entryDetails(e),
	}
}

func levelClass(level string) string {
	switch strings.ToUpper(level) {
	case "DEBUG", "INFO":
		return "info"
	case "WARN", "WARNING":
		return "warning"
	case "ERROR", "CRITICAL", "FATAL":
		return "error"
	default:
		return ""
	}
}

// entryDetails renders whatever keys an entry carries beyond the three
// standard columns, sorted for a stable display.
func entryDetails(e artifact.LogEntry) string {
	extra := make([]string, 0, len(e.Raw))
	for k, v := range e.Raw {
		switch k {
		case "timestamp", "level", "message":
			continue
		}
		extra = append(extra, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(extra)
	return strings.Join(extra, " ")
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	ethRec, ethRep := s.pageReporter()
	kgRec, kgRep := s.pageReporter()
	logRec, logRep := s.pageReporter()

	start := time.Now()
	db := artifact.LoadEthicsDatabase(s.cfg.Artifacts.EthicsDB, ethRep)
	s.metrics.observeLoad("ethics_db", start, ethRec.Len() > 0)

	start = time.Now()
	g := artifact.LoadKnowledgeGraph(s.cfg.Artifacts.KnowledgeGraph, kgRep)
	s.metrics.observeLoad("knowledge_graph", start, kgRec.Len() > 0)

	start = time.Now()
	entries := artifact.LoadSystemEventLog(s.cfg.Artifacts.SystemEventLog, logRep)
	s.metrics.observeLoad("system_event_log", start, logRec.Len() > 0)

	annotateSpan(r.Context(), "api_summary", ethRec, kgRec, logRec)

	summary := map[string]any{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"ethics": map[string]any{
			"events":          len(db.Events),
			"trend_direction": db.Trend.Direction(),
			"avg_score":       db.Trend.AvgScore(),
			"diagnostics":     diagMessages(ethRec),
		},
		"graph": map[string]any{
			"nodes":       len(g.Nodes),
			"edges":       len(g.Edges),
			"diagnostics": diagMessages(kgRec),
		},
		"log": map[string]any{
			"entries":     len(entries),
			"diagnostics": diagMessages(logRec),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

func diagMessages(rec *notify.Recorder) []string {
	diags := rec.Diagnostics()
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sophiakit/sophiakit/internal/artifact"
	"github.com/sophiakit/sophiakit/internal/config"
	"github.com/sophiakit/sophiakit/internal/graph"
	"github.com/sophiakit/sophiakit/internal/notify"
)

// ArtifactTools holds what the tool handlers need.
type ArtifactTools struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// logTailMax caps the window a client can request in one call.
const logTailMax = 200

// --- Input types ---

type LogTailInput struct {
	Count int `json:"count,omitempty" jsonschema:"How many trailing entries to return (default from config, max 200)"`
}

// --- Output types ---

type EthicsSummaryOutput struct {
	Events         int      `json:"events"`
	TrendDirection string   `json:"trend_direction"`
	AvgScore       float64  `json:"avg_score"`
	ScoreMin       float64  `json:"score_min"`
	ScoreMax       float64  `json:"score_max"`
	Diagnostics    []string `json:"diagnostics"`
}

type GraphOverviewOutput struct {
	*graph.Overview
	Diagnostics []string `json:"diagnostics"`
}

type LogTailOutput struct {
	Entries     []artifact.LogEntry `json:"entries"`
	Diagnostics []string            `json:"diagnostics"`
}

// --- Handlers ---

func (t *ArtifactTools) EthicsSummary(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	rec, rep := t.reporter()
	db := artifact.LoadEthicsDatabase(t.Cfg.Artifacts.EthicsDB, rep)

	if len(db.Events) == 0 && rec.Len() == 0 {
		return toolText("No ethical events recorded to display."), nil, nil
	}

	min, max := scoreRange(db.Events)
	return toolJSON(EthicsSummaryOutput{
		Events:         len(db.Events),
		TrendDirection: db.Trend.Direction(),
		AvgScore:       db.Trend.AvgScore(),
		ScoreMin:       min,
		ScoreMax:       max,
		Diagnostics:    diagMessages(rec),
	})
}

func (t *ArtifactTools) GraphOverview(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	rec, rep := t.reporter()
	kg := artifact.LoadKnowledgeGraph(t.Cfg.Artifacts.KnowledgeGraph, rep)

	return toolJSON(GraphOverviewOutput{
		Overview:    graph.FromArtifact(kg),
		Diagnostics: diagMessages(rec),
	})
}

func (t *ArtifactTools) LogTail(_ context.Context, _ *mcp.CallToolRequest, input LogTailInput) (*mcp.CallToolResult, any, error) {
	n := input.Count
	if n <= 0 {
		n = t.Cfg.Display.LogEntries
	}
	if n > logTailMax {
		n = logTailMax
	}

	rec, rep := t.reporter()
	entries := artifact.LoadSystemEventLog(t.Cfg.Artifacts.SystemEventLog, rep)

	out := LogTailOutput{
		Entries:     artifact.Tail(entries, n),
		Diagnostics: diagMessages(rec),
	}
	if out.Entries == nil {
		out.Entries = []artifact.LogEntry{}
	}
	return toolJSON(out)
}

// --- Helpers ---

// reporter pairs a recorder with a reporter that also mirrors diagnostics
// to the logger.
func (t *ArtifactTools) reporter() (*notify.Recorder, notify.Reporter) {
	rec := notify.NewRecorder()
	if t.Logger == nil {
		return rec, rec
	}
	return rec, notify.Multi(rec, notify.NewLogger(t.Logger))
}

// scoreRange returns the min and max final_score across events that carry
// the field. Zero values when none do.
func scoreRange(events []artifact.EthicsEvent) (min, max float64) {
	first := true
	for _, e := range events {
		if !e.Has("final_score") {
			continue
		}
		if first || e.FinalScore < min {
			min = e.FinalScore
		}
		if first || e.FinalScore > max {
			max = e.FinalScore
		}
		first = false
	}
	return min, max
}

func diagMessages(rec *notify.Recorder) []string {
	ds := rec.Diagnostics()
	msgs := make([]string, 0, len(ds))
	for _, d := range ds {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("Failed to marshal result: %v", err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}

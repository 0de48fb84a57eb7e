// Package mcp exposes the Sophia artifacts to MCP clients such as coding
// agents. Every tool mirrors a dashboard page: results degrade to typed
// defaults plus diagnostics instead of failing.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sophiakit/sophiakit/internal/config"
)

// New creates an MCP server exposing the sophiakit tools.
func New(cfg *config.Config, logger *slog.Logger) *mcp.Server {
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "sophiakit",
		Version: "0.2.0",
	}, nil)

	at := &ArtifactTools{Cfg: cfg, Logger: logger}

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "ethics_summary",
		Description: "Summarize the ethics event log: event count, trend direction, and time-weighted average score",
	}, at.EthicsSummary)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "graph_overview",
		Description: "Compute knowledge graph statistics: node and edge counts, relation histogram, and the most connected concepts",
	}, at.GraphOverview)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "log_tail",
		Description: "Return the last N entries of the system event log",
	}, at.LogTail)

	return srv
}

// Run serves MCP over stdio until the context is canceled.
func Run(ctx context.Context, srv *mcp.Server) error {
	return srv.Run(ctx, &mcp.StdioTransport{})
}

package commands

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/sophiakit/sophiakit/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start sophiakit as an MCP server (stdio)",
		Long: `Exposes the Sophia artifacts as MCP tools. Add to your MCP client config:

  {
    "mcpServers": {
      "sophiakit": {
        "command": "sophiakit",
        "args": ["mcp", "--config", "./sophiakit.yaml"]
      }
    }
  }

Tools: ethics_summary, graph_overview, log_tail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			// stdout carries the protocol; logging stays on stderr.
			logger := newLogger(cfg)

			srv := mcpserver.New(cfg, logger)
			return mcpserver.Run(cmd.Context(), srv)
		},
	}
}

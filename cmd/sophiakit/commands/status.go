package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sophiakit/sophiakit/internal/artifact"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a one-shot summary of all three artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			rec, rep := stderrReporter()

			db := artifact.LoadEthicsDatabase(cfg.Artifacts.EthicsDB, rep)
			kg := artifact.LoadKnowledgeGraph(cfg.Artifacts.KnowledgeGraph, rep)
			entries := artifact.LoadSystemEventLog(cfg.Artifacts.SystemEventLog, rep)

			fmt.Println()
			fmt.Println("  sophiakit status")
			fmt.Println("  ────────────────────────────────────────")
			fmt.Printf("  Config:          %s\n", cfgFile)
			fmt.Printf("  Ethics DB:       %s\n", cfg.Artifacts.EthicsDB)
			fmt.Printf("  Knowledge graph: %s\n", cfg.Artifacts.KnowledgeGraph)
			fmt.Printf("  Event log:       %s\n", cfg.Artifacts.SystemEventLog)
			fmt.Println("  ────────────────────────────────────────")
			fmt.Printf("  Ethical events:  %d\n", len(db.Events))
			fmt.Printf("  Trend direction: %s\n", db.Trend.Direction())
			fmt.Printf("  Graph nodes:     %d\n", len(kg.Nodes))
			fmt.Printf("  Graph edges:     %d\n", len(kg.Edges))
			fmt.Printf("  Log entries:     %d\n", len(entries))
			fmt.Println("  ────────────────────────────────────────")
			fmt.Printf("  Diagnostics:     %s\n", diagnosticsSummary(rec.Len(), rec.HasErrors()))
			fmt.Println()
			return nil
		},
	}
}

// diagnosticsSummary condenses a render's diagnostics into one status line.
// The messages themselves already went to stderr as they were reported.
func diagnosticsSummary(count int, hasErrors bool) string {
	if count == 0 {
		return "none"
	}
	severity := "warnings"
	if hasErrors {
		severity = "errors"
	}
	return fmt.Sprintf("%d (%s, see above)", count, severity)
}

package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sophiakit/sophiakit/internal/artifact"
	"github.com/sophiakit/sophiakit/internal/graph"
)

func newGraphCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Print knowledge graph statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			_, rep := stderrReporter()

			kg := artifact.LoadKnowledgeGraph(cfg.Artifacts.KnowledgeGraph, rep)

			if !kg.HasStructure() {
				fmt.Println("Knowledge graph data could not be loaded or is empty.")
				return nil
			}

			ov := graph.FromArtifact(kg)

			bold := color.New(color.Bold)
			fmt.Println()
			bold.Println("  Knowledge Graph Explorer")
			fmt.Println("  ────────────────────────────────────────")
			fmt.Printf("  Total Nodes:     %d\n", ov.TotalNodes)
			fmt.Printf("  Total Edges:     %d\n", ov.TotalEdges)
			if ov.Isolated > 0 {
				fmt.Printf("  Isolated nodes:  %d\n", ov.Isolated)
			}
			if ov.DanglingEdges > 0 {
				fmt.Printf("  Dangling edges:  %d\n", ov.DanglingEdges)
			}

			if len(ov.Relations) > 0 {
				fmt.Println("  ────────────────────────────────────────")
				bold.Println("  Relations")
				for _, rc := range ov.Relations {
					fmt.Printf("  %4d  %s\n", rc.Count, rc.Relation)
				}
			}

			if len(ov.Hubs) > 0 {
				fmt.Println("  ────────────────────────────────────────")
				bold.Println("  Most Connected Concepts")
				for _, h := range ov.Hubs {
					name := h.Label
					if name == "" {
						name = h.ID
					}
					fmt.Printf("  %4d  %s\n", h.Degree(), name)
				}
			}

			fmt.Println()
			fmt.Println("  Interactive graph visualization and browsing capabilities")
			fmt.Println("  will be implemented here in a future update.")
			fmt.Println()
			return nil
		},
	}
}

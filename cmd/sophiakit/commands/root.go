package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "sophiakit",
		Short: "Read-only dashboard for Sophia agent artifacts",
		Long:  "Sophia Toolkit - Visualize the ethics database, knowledge graph, and system event log maintained by a Sophia agent. Read-only. Single binary.",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "sophiakit.yaml", "config file path")

	root.AddCommand(
		newServeCmd(),
		newTUICmd(),
		newStatusCmd(),
		newTrendsCmd(),
		newGraphCmd(),
		newLogsCmd(),
		newInitCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)

	return root
}

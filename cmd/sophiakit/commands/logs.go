package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sophiakit/sophiakit/internal/artifact"
)

func newLogsCmd() *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the system event log",
		Example: `  sophiakit logs
  sophiakit logs --tail 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			_, rep := stderrReporter()

			entries := artifact.LoadSystemEventLog(cfg.Artifacts.SystemEventLog, rep)

			if len(entries) == 0 {
				fmt.Println("No system event log data loaded or the log is empty.")
				return nil
			}

			n := tail
			if n <= 0 {
				n = cfg.Display.LogEntries
			}
			return writeLogTable(os.Stdout, artifact.Tail(entries, n))
		},
	}

	cmd.Flags().IntVar(&tail, "tail", 0, "number of trailing entries to show (default from config)")
	return cmd
}

// writeLogTable prints entries in file order as an aligned table. Non-object
// lines show their raw JSON text in the message column.
func writeLogTable(w io.Writer, entries []artifact.LogEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "TIME\tLEVEL\tMESSAGE\n") //nolint:errcheck // CLI output
	for _, e := range entries {
		if !e.IsObject() {
			fmt.Fprintf(tw, "\t\t%s\n", e.Value) //nolint:errcheck // CLI output
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp, e.Level, e.Message) //nolint:errcheck // CLI output
	}
	return tw.Flush()
}

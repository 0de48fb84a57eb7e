package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sophiakit/sophiakit/internal/artifact"
	"github.com/sophiakit/sophiakit/internal/tui"
)

func newTrendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Print the ethics trend summary and score history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			_, rep := stderrReporter()

			db := artifact.LoadEthicsDatabase(cfg.Artifacts.EthicsDB, rep)

			if len(db.Events) == 0 {
				fmt.Println("No ethical events data loaded or data is empty. Cannot display trends.")
				return nil
			}

			bold := color.New(color.Bold)
			fmt.Println()
			bold.Println("  Ethical Trends Analysis")
			fmt.Println("  ────────────────────────────────────────")
			if db.Trend.IsEmpty() {
				fmt.Println("  No trend analysis summary available in the data.")
			} else {
				fmt.Printf("  Current Trend Direction:               %s\n", db.Trend.Direction())
				fmt.Printf("  Short-term Avg Score (Time-Weighted):  %.2f\n", db.Trend.AvgScore())
			}
			fmt.Printf("  Ethical events:                        %d\n", len(db.Events))
			fmt.Println()

			points, err := artifact.ScoreSeries(db.Events)
			if err != nil {
				fmt.Printf("  %s\n\n", artifact.ChartErrorMessage(err))
				return nil
			}
			if len(points) == 0 {
				fmt.Println("  (no chartable points)")
				fmt.Println()
				return nil
			}

			bold.Println("  Ethical Score Over Time")
			fmt.Printf("  %s\n", tui.Sparkline(points, sparkWidth()))
			fmt.Printf("  %s\n\n", tui.SparkCaption(points))
			return nil
		},
	}
}

// sparkWidth sizes the sparkline to the terminal, with a sane fallback when
// stdout is not a terminal (pipes, CI).
func sparkWidth() int {
	const fallback = 72
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < 24 {
		return fallback
	}
	return w - 4
}

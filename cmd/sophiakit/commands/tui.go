package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sophiakit/sophiakit/internal/tui"
)

func newTUICmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the artifacts in a terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}

			var watcher *tui.Watcher
			if watch {
				var err error
				watcher, err = tui.NewWatcher(
					cfg.Artifacts.EthicsDB,
					cfg.Artifacts.KnowledgeGraph,
					cfg.Artifacts.SystemEventLog,
				)
				if err != nil {
					return fmt.Errorf("starting file watcher: %w", err)
				}
				defer watcher.Close() //nolint:errcheck // best-effort cleanup
			}

			p := tea.NewProgram(tui.NewModel(cfg, watcher), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "reload automatically when an artifact file changes")
	return cmd
}

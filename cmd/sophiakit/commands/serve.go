package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sophiakit/sophiakit/internal/config"
	"github.com/sophiakit/sophiakit/internal/dashboard"
	"github.com/sophiakit/sophiakit/internal/telemetry"
)

func newServeCmd() *cobra.Command {
	var port int
	var bind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sophiakit dashboard server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			if port != 0 {
				cfg.Server.Port = port
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg)

			shutdownTracing, err := telemetry.Setup("sophiakit", cfg.Tracing.Enabled)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdownTracing(ctx)
			}()

			srv := dashboard.NewServer(cfg, logger)

			printBanner(cfg)

			// Graceful shutdown on SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override server port")
	cmd.Flags().StringVar(&bind, "bind", "", "address to bind (default: 127.0.0.1)")
	return cmd
}

func printBanner(cfg *config.Config) {
	bindAddr := cfg.Server.Bind
	if bindAddr == "" {
		bindAddr = "127.0.0.1"
	}

	fmt.Println()
	fmt.Printf("  %s\n", color.New(color.Bold).Sprint("sophiakit dashboard"))
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Trends:     http://%s:%d/trends\n", bindAddr, cfg.Server.Port)
	fmt.Printf("  Graph:      http://%s:%d/graph\n", bindAddr, cfg.Server.Port)
	fmt.Printf("  Logs:       http://%s:%d/logs\n", bindAddr, cfg.Server.Port)
	fmt.Printf("  Summary:    http://%s:%d/api/summary\n", bindAddr, cfg.Server.Port)
	fmt.Printf("  Health:     http://%s:%d/health\n", bindAddr, cfg.Server.Port)
	fmt.Println("  ────────────────────────────────────────")
	fmt.Printf("  Ethics DB:  %s\n", cfg.Artifacts.EthicsDB)
	fmt.Printf("  Graph:      %s\n", cfg.Artifacts.KnowledgeGraph)
	fmt.Printf("  Event log:  %s\n", cfg.Artifacts.SystemEventLog)
	fmt.Println()
	fmt.Println("  Artifacts are read fresh on every page load.")
	fmt.Println("  Press Ctrl+C to stop.")
	fmt.Println()
}

package commands

import (
	"log/slog"
	"os"

	"github.com/sophiakit/sophiakit/internal/config"
	"github.com/sophiakit/sophiakit/internal/notify"
)

// loadConfig reads the configured file, falling back to defaults when it is
// absent or unreadable. One-shot commands still work out of the box next to
// a Sophia checkout.
func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Defaults()
	}
	return cfg
}

// newLogger builds the process logger at the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Server.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// stderrReporter pairs a recorder (for counting and summarizing) with the
// colored console reporter on stderr. Artifact degradation never makes a
// one-shot command exit non-zero; the diagnostics are the whole signal.
func stderrReporter() (*notify.Recorder, notify.Reporter) {
	rec := notify.NewRecorder()
	return rec, notify.Multi(rec, notify.NewConsole(os.Stderr))
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sophiakit/sophiakit/internal/safefile"
)

// Config is the top-level sophiakit configuration.
type Config struct {
	Version   string          `yaml:"version"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Server    ServerConfig    `yaml:"server"`
	Display   DisplayConfig   `yaml:"display"`
	Tracing   TracingConfig   `yaml:"tracing,omitempty"`
}

// ArtifactsConfig points at the three files the Sophia agent maintains.
// All paths are read-only inputs.
type ArtifactsConfig struct {
	EthicsDB       string `yaml:"ethics_db"`
	KnowledgeGraph string `yaml:"knowledge_graph"`
	SystemEventLog string `yaml:"system_event_log"`
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port     int    `yaml:"port"`
	Bind     string `yaml:"bind"` // Address to bind (default: 127.0.0.1)
	LogLevel string `yaml:"log_level"`
}

// Addr returns the listen address, defaulting the bind to loopback.
func (s ServerConfig) Addr() string {
	bind := s.Bind
	if bind == "" {
		bind = "127.0.0.1"
	}
	return fmt.Sprintf("%s:%d", bind, s.Port)
}

// DisplayConfig tunes how much data the pages show.
type DisplayConfig struct {
	LogEntries int `yaml:"log_entries"` // tail length of the log page
}

// TracingConfig toggles the OpenTelemetry tracer.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// maxConfigSize caps how much YAML Load will read.
const maxConfigSize = 1 << 20

// Load reads and parses a sophiakit config file. Keys absent from the file
// keep their default values. Symlinked config files are rejected.
func Load(path string) (*Config, error) {
	data, err := safefile.ReadFileMax(path, maxConfigSize)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply zero-value defaults after unmarshal
	if cfg.Display.LogEntries == 0 {
		cfg.Display.LogEntries = 20
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults. The artifact paths
// assume a checkout living next to the Sophia agent's working directory.
func Defaults() *Config {
	return &Config{
		Version: "1",
		Artifacts: ArtifactsConfig{
			EthicsDB:       "../Sophia_Alpha2/data/ethics_db.json",
			KnowledgeGraph: "../Sophia_Alpha2/data/knowledge_graph.json",
			SystemEventLog: "../Sophia_Alpha2/data/logs/system_events.log",
		},
		Server: ServerConfig{
			Port:     8501,
			LogLevel: "info",
		},
		Display: DisplayConfig{
			LogEntries: 20,
		},
	}
}

// Save writes the config to a YAML file at the given path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks that the config is consistent.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log_level: %q", c.Server.LogLevel)
	}
	if c.Display.LogEntries < 1 {
		return fmt.Errorf("display.log_entries must be positive, got %d", c.Display.LogEntries)
	}
	if c.Artifacts.EthicsDB == "" {
		return fmt.Errorf("artifacts.ethics_db is required")
	}
	if c.Artifacts.KnowledgeGraph == "" {
		return fmt.Errorf("artifacts.knowledge_graph is required")
	}
	if c.Artifacts.SystemEventLog == "" {
		return fmt.Errorf("artifacts.system_event_log is required")
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Backend names for the key-value store.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config contains application configuration parameters.
type Config struct {
	StatePath string `env:"TODOVAULT_STATE_PATH"`
	Backend   string `env:"TODOVAULT_BACKEND" envDefault:"file"`
	LogLevel  int    `env:"TODOVAULT_LOG_LEVEL" envDefault:"0"`
}

// NewConfig loads configuration from environment variables and fills in
// the default state path under the user's config directory.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	if cfg.StatePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		name := "state.json"
		if cfg.Backend == BackendSQLite {
			name = "state.db"
		}
		cfg.StatePath = filepath.Join(dir, "todovault", name)
	}

	return &cfg, nil
}

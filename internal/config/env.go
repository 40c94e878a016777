package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Environment variable names
const (
	EnvDuplicatePolicy = "DEVCONSOLE_DUPLICATE_POLICY"
	EnvSpacing         = "DEVCONSOLE_SPACING"
	EnvLevels          = "DEVCONSOLE_LEVELS"
	EnvIndentWidth     = "DEVCONSOLE_INDENT_WIDTH"
	EnvMaxVisible      = "DEVCONSOLE_MAX_VISIBLE"
	EnvLogDir          = "DEVCONSOLE_LOG_DIR"
	EnvHistoryFile     = "DEVCONSOLE_HISTORY_FILE"
	EnvHistoryLimit    = "DEVCONSOLE_HISTORY_LIMIT"
)

// envConfig mirrors the settings that can come from the environment.
// Zero values mean "not set".
type envConfig struct {
	DuplicatePolicy string   `env:"DEVCONSOLE_DUPLICATE_POLICY"`
	Spacing         string   `env:"DEVCONSOLE_SPACING"`
	Levels          []string `env:"DEVCONSOLE_LEVELS"        envSeparator:","`
	IndentWidth     int      `env:"DEVCONSOLE_INDENT_WIDTH"`
	MaxVisible      int      `env:"DEVCONSOLE_MAX_VISIBLE"`
	LogDir          string   `env:"DEVCONSOLE_LOG_DIR"`
	HistoryFile     string   `env:"DEVCONSOLE_HISTORY_FILE"`
	HistoryLimit    int      `env:"DEVCONSOLE_HISTORY_LIMIT"`
}

func loadEnv() (envConfig, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// applyEnv fills fields that flags left unset.
func (c *Config) applyEnv(e envConfig) {
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = e.DuplicatePolicy
	}
	if c.Spacing == "" {
		c.Spacing = e.Spacing
	}
	if len(c.Levels) == 0 && len(e.Levels) > 0 {
		c.Levels = e.Levels
	}
	if c.IndentWidth == 0 {
		c.IndentWidth = e.IndentWidth
	}
	if c.MaxVisible == 0 {
		c.MaxVisible = e.MaxVisible
	}
	if c.LogDir == "" {
		c.LogDir = e.LogDir
	}
	if c.HistoryFile == "" {
		c.HistoryFile = e.HistoryFile
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = e.HistoryLimit
	}
}

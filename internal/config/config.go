// Package config resolves console settings from flags, environment, config
// file and built-in defaults, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quocvuong92/devconsole/internal/console"
	"github.com/quocvuong92/devconsole/internal/constants"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Errors
var (
	ErrInvalidIndentWidth  = errors.New("indent width must be a positive integer")
	ErrInvalidMaxVisible   = errors.New("max visible characters must be a positive integer")
	ErrInvalidHistoryLimit = errors.New("history limit must not be negative")
	ErrInvalidLevel        = errors.New("invalid severity level")
)

// Config holds the application configuration
type Config struct {
	// Console behaviour, as text until Validate resolves it
	DuplicatePolicy string
	Spacing         string
	Levels          []string
	IndentWidth     int
	MaxVisible      int

	// Storage
	LogDir       string
	HistoryFile  string
	HistoryLimit int

	// PersistHistory uses DefaultHistoryFile when no history file is set
	PersistHistory bool

	// Aliases expanded by the alias preprocessor
	Aliases map[string]string

	// ConfigPath names an explicit config file; empty searches the defaults
	ConfigPath string
	// LoadedFrom is the config file that was applied, if any
	LoadedFrom string
	// LoadWarning is set when a config file on the search path was skipped
	LoadWarning error

	// Flags
	Interactive bool
	Render      bool
	Verbose     bool
	LogFormat   string

	// Resolved by Validate
	Policy       console.DuplicatePolicy
	SpacingStyle console.Spacing
	LevelMask    transcript.Level
}

// NewConfig creates a new Config. Defaults are filled in by Validate.
func NewConfig() *Config {
	return &Config{}
}

// Validate loads environment and file settings into any field not already
// set by a flag, applies defaults, and checks the result.
func (c *Config) Validate() error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	c.applyEnv(e)

	if err := c.loadFile(); err != nil {
		return err
	}

	c.applyDefaults()

	if c.Policy, err = console.ParsePolicy(c.DuplicatePolicy); err != nil {
		return err
	}
	if c.SpacingStyle, err = console.ParseSpacing(c.Spacing); err != nil {
		return err
	}
	if c.LevelMask, err = transcript.ParseLevels(c.Levels); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	if c.IndentWidth <= 0 {
		return ErrInvalidIndentWidth
	}
	if c.MaxVisible <= 0 {
		return ErrInvalidMaxVisible
	}
	if c.HistoryLimit < 0 {
		return ErrInvalidHistoryLimit
	}
	return nil
}

// loadFile applies the explicit config file, or the first one found on the
// search path. Only an explicit path that cannot be read is an error.
func (c *Config) loadFile() error {
	if c.ConfigPath != "" {
		fc, err := LoadConfigFromPath(c.ConfigPath)
		if err != nil {
			return err
		}
		c.ApplyFileConfig(fc)
		c.LoadedFrom = c.ConfigPath
		return nil
	}

	fc, path, err := LoadConfigFile()
	if err != nil {
		// A broken file on the search path should not stop the console.
		c.LoadWarning = err
		return nil
	}
	c.ApplyFileConfig(fc)
	c.LoadedFrom = path
	return nil
}

func (c *Config) applyDefaults() {
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = constants.DefaultDuplicatePolicy
	}
	if c.Spacing == "" {
		c.Spacing = constants.DefaultSpacing
	}
	if len(c.Levels) == 0 {
		c.Levels = append([]string(nil), constants.DefaultLevels...)
	}
	if c.IndentWidth == 0 {
		c.IndentWidth = constants.DefaultIndentWidth
	}
	if c.MaxVisible == 0 {
		c.MaxVisible = constants.DefaultMaxVisibleCharacters
	}
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir()
	}
	if c.HistoryFile == "" && c.PersistHistory {
		c.HistoryFile = DefaultHistoryFile()
	}
	if c.HistoryFile != "" {
		c.HistoryFile = expandHome(c.HistoryFile)
	}
	c.LogDir = expandHome(c.LogDir)
}

// DefaultLogDir returns <user config dir>/devconsole/Logging Output, or a
// directory under the working directory when no config dir is known.
func DefaultLogDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName, constants.LogDirName)
	}
	return constants.LogDirName
}

// DefaultHistoryFile returns <user config dir>/devconsole/history.json.
func DefaultHistoryFile() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName, constants.HistoryFileName)
	}
	return constants.HistoryFileName
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// String summarises the resolved settings for --verbose output.
func (c *Config) String() string {
	return fmt.Sprintf("policy=%s spacing=%s levels=%s indent=%d max_visible=%d log_dir=%q history_file=%q history_limit=%d",
		c.Policy, c.SpacingStyle, c.LevelMask, c.IndentWidth, c.MaxVisible, c.LogDir, c.HistoryFile, c.HistoryLimit)
}

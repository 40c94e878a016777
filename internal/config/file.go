package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/devconsole/internal/constants"
)

// ConfigFileBase is the config file name without extension
const ConfigFileBase = "config"

// configExtensions are tried in order in each search directory
var configExtensions = []string{".yaml", ".yml", ".toml"}

// FileConfig represents the configuration file structure. The same keys are
// used for YAML and TOML.
type FileConfig struct {
	DuplicatePolicy string            `yaml:"duplicate_policy,omitempty" toml:"duplicate_policy"`
	Spacing         string            `yaml:"spacing,omitempty" toml:"spacing"`
	Levels          []string          `yaml:"levels,omitempty" toml:"levels"`
	IndentWidth     int               `yaml:"indent_width,omitempty" toml:"indent_width"`
	MaxVisible      int               `yaml:"max_visible_characters,omitempty" toml:"max_visible_characters"`
	LogDir          string            `yaml:"log_dir,omitempty" toml:"log_dir"`
	HistoryFile     string            `yaml:"history_file,omitempty" toml:"history_file"`
	HistoryLimit    int               `yaml:"history_limit,omitempty" toml:"history_limit"`
	Aliases         map[string]string `yaml:"aliases,omitempty" toml:"aliases"`
}

// GetConfigDirs returns the directories searched for a config file, in order
// of priority, without duplicates.
func GetConfigDirs() []string {
	var dirs []string
	add := func(dir string) {
		for _, d := range dirs {
			if d == dir {
				return
			}
		}
		dirs = append(dirs, dir)
	}

	// 1. Current directory
	add(filepath.Join(".", "."+constants.AppName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		add(filepath.Join(configDir, constants.AppName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		add(filepath.Join(homeDir, ".config", constants.AppName))
	}

	return dirs
}

// GetConfigPaths returns every candidate config file path, in order of priority
func GetConfigPaths() []string {
	var paths []string
	for _, dir := range GetConfigDirs() {
		for _, ext := range configExtensions {
			paths = append(paths, filepath.Join(dir, ConfigFileBase+ext))
		}
	}
	return paths
}

// LoadConfigFile loads the first config file that exists on the search path
// and returns it with its path. No file at all yields an empty config.
func LoadConfigFile() (*FileConfig, string, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			fc, err := LoadConfigFromPath(path)
			return fc, path, err
		}
	}
	return &FileConfig{}, "", nil
}

// LoadConfigFromPath loads a config file, choosing the decoder by extension
func LoadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = fc.DuplicatePolicy
	}
	if c.Spacing == "" {
		c.Spacing = fc.Spacing
	}
	if len(c.Levels) == 0 && len(fc.Levels) > 0 {
		c.Levels = fc.Levels
	}
	if c.IndentWidth == 0 {
		c.IndentWidth = fc.IndentWidth
	}
	if c.MaxVisible == 0 {
		c.MaxVisible = fc.MaxVisible
	}
	if c.LogDir == "" {
		c.LogDir = fc.LogDir
	}
	if c.HistoryFile == "" {
		c.HistoryFile = fc.HistoryFile
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = fc.HistoryLimit
	}

	// Aliases merge; ones set earlier (by flags) win.
	if len(fc.Aliases) > 0 {
		if c.Aliases == nil {
			c.Aliases = make(map[string]string, len(fc.Aliases))
		}
		for k, v := range fc.Aliases {
			if _, ok := c.Aliases[k]; !ok {
				c.Aliases[k] = v
			}
		}
	}
}

// CreateDefaultConfigFile writes a commented config file into the user
// config directory and returns its path.
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileBase+".yaml")
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# devconsole configuration
# Location: ~/.config/devconsole/config.yaml (config.toml is also read)

# What to do when a command name is registered twice: ignore, replace, rename
# duplicate_policy: ignore

# spacious adds blank lines between log sections, compact does not
# spacing: spacious

# Severities shown in the visible log. Hidden lines still reach the log file.
# levels: [message, warning, error, exception, assertion]

# Spaces per indent level, and the visible log size in characters
# indent_width: 8
# max_visible_characters: 8000

# One log file per session is written here
# log_dir: ~/.config/devconsole/Logging Output

# Persist input history between sessions (0 = unlimited entries)
# history_file: ~/.config/devconsole/history.json
# history_limit: 0

# Words rewritten by the alias preprocessor
# aliases:
#   say: echo
#   shout: echo -u
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

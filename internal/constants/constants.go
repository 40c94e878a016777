// Package constants provides shared defaults used across the application
// to avoid circular dependencies between packages.
package constants

// Console defaults
const (
	// DefaultIndentWidth is the number of spaces per indent level
	DefaultIndentWidth = 8
	// DefaultMaxVisibleCharacters caps the in-memory transcript
	DefaultMaxVisibleCharacters = 8000
	// DefaultDuplicatePolicy applies when a command name is registered twice
	DefaultDuplicatePolicy = "ignore"
	// DefaultSpacing controls blank separator lines in the transcript
	DefaultSpacing = "spacious"
)

// DefaultLevels enables every transcript severity
var DefaultLevels = []string{"message", "warning", "error", "exception", "assertion"}

// Application paths
const (
	// AppName is used for config and data directories
	AppName = "devconsole"
	// LogDirName is the directory holding one transcript file per session
	LogDirName = "Logging Output"
	// HistoryFileName is the default persisted-history file
	HistoryFileName = "history.json"
	// HelpCommand is the reserved name that triggers the help flow
	HelpCommand = "help"
)

// Package logging provides the diagnostic logger used for console internals.
//
// The diagnostic log is separate from the console transcript: it records
// things the operator of the host cares about (a log file that could not be
// opened, which config file was loaded, history persistence problems) and is
// discarded unless verbose mode is enabled.
//
// # Usage
//
//	logger := logging.New(logging.Options{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatText,
//	    Output: os.Stderr,
//	})
//
//	session := logger.WithFields(logging.Fields{"session": id})
//	session.Info("console ready", logging.Fields{"log_dir": dir})
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Format represents the output format
type Format int

const (
	// FormatText outputs human-readable text
	FormatText Format = iota
	// FormatJSON outputs one JSON object per line
	FormatJSON
)

// ParseFormat parses "text" or "json". Anything else is text.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Fields is a map of structured log fields
type Fields map[string]interface{}

// Entry is a single diagnostic record
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Fields    Fields    `json:"fields,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Options configures the logger
type Options struct {
	Level  Level
	Format Format
	Output io.Writer
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

// sink is shared between a logger and the children created by WithFields.
type sink struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
	now    func() time.Time
}

// Logger writes levelled diagnostic records. Children created with
// WithFields share the parent's output, level and lock.
type Logger struct {
	sink   *sink
	fields Fields
}

// New creates a new Logger with the given options
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Logger{sink: &sink{
		level:  opts.Level,
		format: opts.Format,
		output: opts.Output,
		now:    opts.Now,
	}}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Options{Level: LevelNone, Output: io.Discard})
}

// SetLevel changes the log level for this logger and all of its children
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// SetOutput changes the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = w
}

// Enabled reports whether records at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return level >= l.sink.level && l.sink.level != LevelNone
}

// WithFields returns a child logger that adds fields to every record
func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{sink: l.sink, fields: merge(l.fields, fields)}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(LevelDebug, msg, nil, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(LevelInfo, msg, nil, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(LevelWarn, msg, nil, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, err, fields)
}

func (l *Logger) log(level Level, msg string, err error, fields []Fields) {
	s := l.sink
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.level == LevelNone || level < s.level {
		return
	}

	entry := Entry{
		Timestamp: s.now(),
		Level:     level.String(),
		Message:   msg,
		Fields:    merge(l.fields, fields...),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	var line string
	if s.format == FormatJSON {
		line = formatJSON(entry)
	} else {
		line = formatText(entry)
	}
	fmt.Fprintln(s.output, line)
}

func merge(base Fields, extra ...Fields) Fields {
	n := len(base)
	for _, f := range extra {
		n += len(f)
	}
	if n == 0 {
		return nil
	}
	merged := make(Fields, n)
	for k, v := range base {
		merged[k] = v
	}
	for _, f := range extra {
		for k, v := range f {
			merged[k] = v
		}
	}
	return merged
}

func formatJSON(entry Entry) string {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal log entry: %s"}`, err.Error())
	}
	return string(data)
}

// formatText writes fields in key order so records are stable across runs.
func formatText(entry Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", entry.Timestamp.Format("2006-01-02 15:04:05.000"), entry.Level, entry.Message)

	if entry.Error != "" {
		fmt.Fprintf(&sb, " error=%q", entry.Error)
	}

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Fields[k])
	}

	return sb.String()
}

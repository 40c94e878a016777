package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 30, 45, 123000000, time.UTC)
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelNone, "NONE"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"off", LevelNone},
		{"invalid", LevelInfo}, // Default to Info
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("JSON") != FormatJSON {
		t.Error("expected JSON format")
	}
	if ParseFormat("yaml") != FormatText {
		t.Error("unknown formats should fall back to text")
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatText, Output: &buf, Now: fixedClock})

	logger.Info("log file opened", Fields{"path": "/tmp/a.txt", "attempt": 1})

	want := "[2026-03-01 12:30:45.123] INFO: log file opened attempt=1 path=/tmp/a.txt\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	logger.Info("test message", Fields{"key": "value"})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Level = %q, want %q", entry.Level, "INFO")
	}
	if entry.Message != "test message" {
		t.Errorf("Message = %q, want %q", entry.Message, "test message")
	}
	if entry.Fields["key"] != "value" {
		t.Errorf("Fields[key] = %v, want %q", entry.Fields["key"], "value")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Error("Debug and Info should be filtered out")
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Error("Warn and Error should be present")
	}
}

func TestLogger_ErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})

	logger.Error("write failed", errors.New("disk full"))

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Error != "disk full" {
		t.Errorf("Error = %q, want %q", entry.Error, "disk full")
	}
}

func TestLogger_WithFieldsSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelError, Format: FormatJSON, Output: &buf})
	child := logger.WithFields(Fields{"session": "abc"})

	child.Info("hidden")
	if buf.Len() > 0 {
		t.Fatal("Info should be filtered at Error level")
	}

	logger.SetLevel(LevelDebug)
	child.Info("visible", Fields{"extra": "field"})

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if entry.Fields["session"] != "abc" {
		t.Error("Expected preset field 'session'")
	}
	if entry.Fields["extra"] != "field" {
		t.Error("Expected additional field 'extra'")
	}
}

func TestLogger_WithFieldsDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	_ = logger.WithFields(Fields{"component": "sink"})

	logger.Info("plain")

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}
	if len(entry.Fields) != 0 {
		t.Errorf("parent logger picked up child fields: %v", entry.Fields)
	}
}

func TestLogger_Discard(t *testing.T) {
	logger := Discard()
	if logger.Enabled(LevelError) {
		t.Error("Discard logger should not be enabled at any level")
	}
	logger.Error("nothing", errors.New("x"))
}

func TestLogger_NoneLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelNone, Output: &buf})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error", nil)

	if buf.Len() > 0 {
		t.Error("No messages should be logged at None level")
	}
}

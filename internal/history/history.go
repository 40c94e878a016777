package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileVersion is bumped when the on-disk layout changes.
const fileVersion = 1

// Buffer is an input history. Entries are stored oldest first internally and
// exposed newest first. A limit of zero keeps every entry.
type Buffer struct {
	entries []string
	limit   int
}

// NewBuffer creates an empty history. limit <= 0 means unbounded.
func NewBuffer(limit int) *Buffer {
	if limit < 0 {
		limit = 0
	}
	return &Buffer{limit: limit}
}

// Limit returns the configured cap, zero when unbounded.
func (b *Buffer) Limit() int { return b.limit }

// Add records entry as the newest item, evicting the oldest when capped.
func (b *Buffer) Add(entry string) {
	b.entries = append(b.entries, entry)
	b.evict()
}

// Get returns the entry index steps back from the newest. An index past the
// end yields the oldest entry; a negative index yields the newest. An empty
// history returns "".
func (b *Buffer) Get(index int) string {
	n := len(b.entries)
	if n == 0 {
		return ""
	}
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	return b.entries[n-1-index]
}

// Len returns the number of entries.
func (b *Buffer) Len() int { return len(b.entries) }

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (b *Buffer) Recent(n int) []string {
	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, b.entries[len(b.entries)-1-i])
	}
	return out
}

// Chronological returns every entry, oldest first.
func (b *Buffer) Chronological() []string {
	out := make([]string, len(b.entries))
	copy(out, b.entries)
	return out
}

// Clear removes all entries.
func (b *Buffer) Clear() { b.entries = nil }

func (b *Buffer) evict() {
	if b.limit > 0 && len(b.entries) > b.limit {
		b.entries = append([]string(nil), b.entries[len(b.entries)-b.limit:]...)
	}
}

// historyFile is the persisted form. Entries are newest first so the file
// reads the same way the console recalls.
type historyFile struct {
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Entries []string  `json:"entries"`
}

// Load replaces the buffer with the entries stored at path.
// A missing file is not an error.
func (b *Buffer) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read history file %s: %w", path, err)
	}

	var hf historyFile
	if err := json.Unmarshal(data, &hf); err != nil {
		return fmt.Errorf("failed to parse history file %s: %w", path, err)
	}
	if hf.Version > fileVersion {
		return fmt.Errorf("history file %s has unsupported version %d", path, hf.Version)
	}

	b.entries = make([]string, 0, len(hf.Entries))
	for i := len(hf.Entries) - 1; i >= 0; i-- {
		b.entries = append(b.entries, hf.Entries[i])
	}
	b.evict()
	return nil
}

// Save writes the buffer to path, creating parent directories as needed.
func (b *Buffer) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(historyFile{
		Version: fileVersion,
		SavedAt: time.Now().UTC(),
		Entries: b.Recent(0),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// Package history records console input lines, newest first, for recall.
package history

// Recorder defines the interface for a console input history.
// This interface enables dependency injection and easier testing.
type Recorder interface {
	// Add records an input line as the newest entry
	Add(entry string)

	// Get returns the entry index steps back from the newest, clamped to
	// the oldest entry
	Get(index int) string

	// Len returns the number of recorded entries
	Len() int

	// Recent returns up to n entries, newest first
	Recent(n int) []string

	// Clear removes all entries
	Clear()
}

// Ensure concrete type implements the interface
var _ Recorder = (*Buffer)(nil)

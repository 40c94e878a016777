// Package console implements the command pipeline engine: a registry of
// named commands, an ordered preprocessor chain, and Process, which splits an
// input line on '|' and runs each stage in turn while narrating the run into
// an indented transcript.
//
// A Console is single-threaded. Process runs to completion, including every
// nested command, before it returns. Callers that share a console between
// goroutines must serialise access themselves.
package console

import (
	"github.com/quocvuong92/devconsole/internal/history"
	"github.com/quocvuong92/devconsole/internal/logging"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Console is an in-process command console.
type Console struct {
	policy        DuplicatePolicy
	spacing       Spacing
	parser        ArgumentParser
	sink          *transcript.Sink
	history       history.Recorder
	logger        *logging.Logger
	commands      registry
	preprocessors []PreProcessor
	active        bool
}

// New creates a Console. The transcript file is opened on the first push.
func New(opts Options) (*Console, error) {
	if opts.Parser == nil {
		return nil, ErrNoParser
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Transcript.Logger == nil {
		opts.Transcript.Logger = opts.Logger
	}
	if opts.History == nil {
		opts.History = history.NewBuffer(0)
	}

	return &Console{
		policy:   opts.DuplicatePolicy,
		spacing:  opts.Spacing,
		parser:   opts.Parser,
		sink:     transcript.New(opts.Transcript),
		history:  opts.History,
		logger:   opts.Logger.WithFields(logging.Fields{"component": "console"}),
		commands: newRegistry(),
	}, nil
}

// Close flushes and closes the transcript file.
func (c *Console) Close() error {
	return c.sink.Close()
}

// SetActive records whether the host is currently showing the console.
func (c *Console) SetActive(active bool) { c.active = active }

// Active reports the last value passed to SetActive.
func (c *Console) Active() bool { return c.active }

// SetObserver forwards every transcript push to o.
func (c *Console) SetObserver(o transcript.Observer) { c.sink.SetObserver(o) }

// TranscriptPath returns the session log file, once it has been created.
func (c *Console) TranscriptPath() string { return c.sink.Path() }

// TranscriptErr returns the first error writing the session log file.
func (c *Console) TranscriptErr() error { return c.sink.Err() }

// Depth returns the current transcript indentation in levels.
func (c *Console) Depth() int { return c.sink.Depth() }

// Push logs a message-level line.
func (c *Console) Push(message string) {
	c.sink.Push(transcript.LevelMessage, message)
}

// PushLevel logs one line at level.
func (c *Console) PushLevel(level transcript.Level, message string) {
	c.sink.Push(level, message)
}

// PushMany logs several lines as one unit.
func (c *Console) PushMany(level transcript.Level, messages ...string) {
	c.sink.PushMany(level, messages...)
}

// PushIndented logs one line nested levels deeper.
func (c *Console) PushIndented(level transcript.Level, levels int, message string) {
	c.sink.PushIndented(level, levels, message)
}

// PushManyIndented logs several lines nested levels deeper.
func (c *Console) PushManyIndented(level transcript.Level, levels int, messages ...string) {
	c.sink.PushManyIndented(level, levels, messages...)
}

// ClearLog empties the visible transcript.
func (c *Console) ClearLog() { c.sink.Clear() }

// MessageLog returns the visible transcript.
func (c *Console) MessageLog() string { return c.sink.Buffer() }

// Levels returns the transcript severity filter.
func (c *Console) Levels() transcript.Level { return c.sink.Levels() }

// SetLevels replaces the transcript severity filter.
func (c *Console) SetLevels(levels transcript.Level) { c.sink.SetLevels(levels) }

// History returns the input index steps back, clamped to the oldest entry.
func (c *Console) History(index int) string { return c.history.Get(index) }

// HistoryLen returns the number of recorded inputs.
func (c *Console) HistoryLen() int { return c.history.Len() }

// separator logs a blank line in spacious mode.
func (c *Console) separator() {
	if c.spacing == SpacingSpacious {
		c.sink.Push(transcript.LevelMessage, "")
	}
}

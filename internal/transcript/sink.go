// Package transcript owns the console's message log: a bounded in-memory
// buffer for display and an append-only file that mirrors every line.
//
// Severity filtering only decides what enters the visible buffer. The durable
// file receives every pushed line regardless of the filter.
package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quocvuong92/devconsole/internal/constants"
	"github.com/quocvuong92/devconsole/internal/logging"
)

// Entry describes one push as seen by an Observer.
type Entry struct {
	// Text is exactly what was appended, including the leading newline
	Text  string
	Level Level
	// Visible is true when the severity filter let Text into the buffer
	Visible bool
}

// Observer is notified after every push. It must not push back into the sink.
type Observer func(Entry)

// Options configures a Sink. Levels is used as given, so LevelNone hides
// everything; other zero values fall back to the package defaults.
type Options struct {
	Levels      Level
	IndentWidth int
	MaxVisible  int
	// Dir is where the session log file is created. Empty disables the
	// durable mirror.
	Dir      string
	Now      func() time.Time
	Observer Observer
	Logger   *logging.Logger
}

// Sink is the console's log. It is not safe for concurrent use.
type Sink struct {
	levels      Level
	indentWidth int
	maxVisible  int
	dir         string
	now         func() time.Time
	observer    Observer
	logger      *logging.Logger

	buffer  string
	runes   int
	indent  Indent
	file    *os.File
	path    string
	failed  bool
	fileErr error
}

// New creates a Sink. The log file is not created until the first push.
func New(opts Options) *Sink {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = constants.DefaultIndentWidth
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = constants.DefaultMaxVisibleCharacters
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Sink{
		levels:      opts.Levels,
		indentWidth: opts.IndentWidth,
		maxVisible:  opts.MaxVisible,
		dir:         opts.Dir,
		now:         opts.Now,
		observer:    opts.Observer,
		logger:      opts.Logger.WithFields(logging.Fields{"component": "transcript"}),
	}
}

// Levels returns the severity filter.
func (s *Sink) Levels() Level { return s.levels }

// SetLevels replaces the severity filter.
func (s *Sink) SetLevels(levels Level) { s.levels = levels }

// SetObserver replaces the observer; nil removes it.
func (s *Sink) SetObserver(o Observer) { s.observer = o }

// Buffer returns the visible transcript.
func (s *Sink) Buffer() string { return s.buffer }

// Path returns the durable log file path, or "" if none has been opened.
func (s *Sink) Path() string { return s.path }

// Err returns the first durable-file error, if any.
func (s *Sink) Err() error { return s.fileErr }

// Indent increases the indentation depth by levels.
func (s *Sink) Indent(levels int) { s.indent.Push(levels) }

// Dedent decreases the indentation depth by levels.
func (s *Sink) Dedent(levels int) { s.indent.Pop(levels) }

// Depth returns the indentation depth in levels.
func (s *Sink) Depth() int { return s.indent.Depth() }

// RestoreDepth resets the indentation depth to a value from Depth.
func (s *Sink) RestoreDepth(depth int) { s.indent.Reset(depth) }

// Push appends one message line.
func (s *Sink) Push(level Level, message string) {
	s.write(level, "\n"+s.pad()+message)
}

// PushMany appends several lines as one unit with a single trim check.
// An empty slice pushes nothing.
func (s *Sink) PushMany(level Level, messages ...string) {
	if len(messages) == 0 {
		return
	}
	sep := "\n" + s.pad()
	s.write(level, sep+strings.Join(messages, sep))
}

// PushIndented pushes message nested levels deeper than the current depth.
func (s *Sink) PushIndented(level Level, levels int, message string) {
	depth := s.Depth()
	defer s.RestoreDepth(depth)
	s.Indent(levels)
	s.Push(level, message)
}

// PushManyIndented is PushIndented for several lines.
func (s *Sink) PushManyIndented(level Level, levels int, messages ...string) {
	depth := s.Depth()
	defer s.RestoreDepth(depth)
	s.Indent(levels)
	s.PushMany(level, messages...)
}

// Clear empties the visible buffer. The durable file is untouched.
func (s *Sink) Clear() {
	s.buffer = ""
	s.runes = 0
}

// Close flushes and closes the durable file. It is safe to call twice.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	f := s.file
	s.file = nil
	// Further pushes must not silently reopen a new session file.
	s.failed = true
	return errors.Join(f.Sync(), f.Close())
}

func (s *Sink) pad() string {
	return strings.Repeat(" ", s.indent.Depth()*s.indentWidth)
}

func (s *Sink) write(level Level, text string) {
	visible := s.levels.Has(level)
	if visible {
		s.buffer += text
		s.runes += utf8.RuneCountInString(text)
		if s.runes > s.maxVisible {
			s.buffer = dropRunes(s.buffer, s.runes-s.maxVisible)
			s.runes = s.maxVisible
		}
	}

	s.mirror(text)

	if s.observer != nil {
		s.observer(Entry{Text: text, Level: level, Visible: visible})
	}
}

// mirror writes text to the session file, opening it on first use.
func (s *Sink) mirror(text string) {
	if s.dir == "" || s.failed {
		return
	}
	if s.file == nil {
		if err := s.open(); err != nil {
			s.failed = true
			s.fileErr = err
			s.logger.Error("cannot open transcript file", err, logging.Fields{"dir": s.dir})
			return
		}
	}
	// *os.File is unbuffered; a successful WriteString has reached the OS.
	if _, err := s.file.WriteString(text); err != nil && s.fileErr == nil {
		s.fileErr = fmt.Errorf("write transcript: %w", err)
		s.logger.Error("transcript write failed", err, logging.Fields{"path": s.path})
	}
}

func (s *Sink) open() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(s.dir, FileName(s.now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open transcript file: %w", err)
	}
	s.file = f
	s.path = path
	s.logger.Debug("transcript file opened", logging.Fields{"path": path})
	return nil
}

// FileName returns the session log file name for t in UTC,
// formatted YYYY-MM-DD-HH-MM-SS-mmm.txt.
func FileName(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d-%02d-%02d-%02d-%02d-%03d.txt",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/int(time.Millisecond))
}

// dropRunes removes the first n runes of s.
func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}

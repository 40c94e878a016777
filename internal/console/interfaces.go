package console

import "github.com/quocvuong92/devconsole/internal/transcript"

// Arguments is the parsed form of one pipeline stage. The console never
// builds these itself; they come from the configured ArgumentParser.
type Arguments interface {
	// Text is the stage text the arguments were parsed from
	Text() string
	// CommandName is the first word of the stage
	CommandName() string
	// Len is the number of positional arguments after the command name
	Len() int
	// Arg returns a positional argument, or "" when out of range
	Arg(index int) string
	// Flag returns the value of a single-character flag, or "" when absent
	Flag(name rune) string
}

// ArgumentParser turns stage text into Arguments.
type ArgumentParser interface {
	Parse(text string) Arguments
}

// ParserFunc adapts a function to ArgumentParser.
type ParserFunc func(text string) Arguments

// Parse calls f(text).
func (f ParserFunc) Parse(text string) Arguments { return f(text) }

// Command is a registered console command.
type Command interface {
	Name() string
	Usage() string
	// Execute runs the command. The returned string is the stage output
	// forwarded to the next pipeline stage.
	Execute(args Arguments) (string, error)
	// Help returns detailed help lines for "help <name>"
	Help(args Arguments) []string
}

// PreProcessor rewrites stage text before it is parsed. Returning text
// that is empty or only whitespace aborts the whole pipeline.
type PreProcessor interface {
	Name() string
	Usage() string
	PreProcess(input string) string
	Help(args Arguments) []string
}

// Host is the capability handed to plugins at registration. It allows
// logging and read access to history but not registry changes.
type Host interface {
	Push(message string)
	PushLevel(level transcript.Level, message string)
	PushMany(level transcript.Level, messages ...string)
	PushIndented(level transcript.Level, levels int, message string)
	PushManyIndented(level transcript.Level, levels int, messages ...string)
	ClearLog()
	MessageLog() string
	History(index int) string
	HistoryLen() int
	Levels() transcript.Level
	SetLevels(levels transcript.Level)
}

// HostSetter is implemented by plugins that want a Host back-reference.
// SetHost is called once, when the plugin is registered.
type HostSetter interface {
	SetHost(h Host)
}

var _ Host = (*Console)(nil)

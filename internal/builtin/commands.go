package builtin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/quocvuong92/devconsole/internal/console"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// MaxRepeat bounds the repeat command.
const MaxRepeat = 1000

// Echo returns its arguments joined by spaces.
type Echo struct{}

func (*Echo) Name() string  { return "echo" }
func (*Echo) Usage() string { return "echo [-u] [text...]" }

func (*Echo) Execute(a console.Arguments) (string, error) {
	out := strings.Join(positional(a), " ")
	if hasFlag(a, 'u') {
		out = strings.ToUpper(out)
	}
	return out, nil
}

func (e *Echo) Help(console.Arguments) []string {
	return []string{
		e.Usage(),
		"Returns the arguments joined by single spaces.",
		"-u  upper-case the result",
	}
}

// Case converts its arguments to upper or lower case. It is most useful at
// the end of a pipeline, where the previous stage's output arrives as
// arguments.
type Case struct {
	name  string
	apply func(string) string
}

// NewCase returns the "upper" or "lower" command. Any other name yields lower.
func NewCase(name string) *Case {
	if name == "upper" {
		return &Case{name: name, apply: strings.ToUpper}
	}
	return &Case{name: "lower", apply: strings.ToLower}
}

func (c *Case) Name() string  { return c.name }
func (c *Case) Usage() string { return c.name + " [text...]" }

func (c *Case) Execute(a console.Arguments) (string, error) {
	return c.apply(strings.Join(positional(a), " ")), nil
}

func (c *Case) Help(console.Arguments) []string {
	return []string{c.Usage(), fmt.Sprintf("Returns the arguments in %s case.", c.name)}
}

// Repeat returns text repeated N times, separated by spaces.
type Repeat struct{}

func (*Repeat) Name() string  { return "repeat" }
func (*Repeat) Usage() string { return "repeat <count> [text...]" }

func (*Repeat) Execute(a console.Arguments) (string, error) {
	if a.Len() == 0 {
		return "", errors.New("repeat: missing count")
	}
	n, err := strconv.Atoi(a.Arg(0))
	if err != nil {
		return "", fmt.Errorf("repeat: invalid count %q: %w", a.Arg(0), err)
	}
	if n < 0 || n > MaxRepeat {
		return "", fmt.Errorf("repeat: count %d outside 0..%d", n, MaxRepeat)
	}

	text := strings.Join(positional(a)[1:], " ")
	parts := make([]string, n)
	for i := range parts {
		parts[i] = text
	}
	return strings.Join(parts, " "), nil
}

func (r *Repeat) Help(console.Arguments) []string {
	return []string{r.Usage(), fmt.Sprintf("Repeats the text count times (at most %d).", MaxRepeat)}
}

// History lists recent inputs, including itself, numbered the way !N
// recalls them on the following line.
type History struct {
	hostRef
}

// DefaultHistoryCount is how many entries history lists without -n.
const DefaultHistoryCount = 10

func (*History) Name() string  { return "history" }
func (*History) Usage() string { return "history [-n=count]" }

func (h *History) Execute(a console.Arguments) (string, error) {
	count := DefaultHistoryCount
	if v := a.Flag('n'); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return "", fmt.Errorf("history: invalid count %q", v)
		}
		count = n
	}

	// Entry 0 is this very command. Numbers are what !N recalls on the
	// next line, when every entry has moved one step back.
	total := h.host.HistoryLen()
	if total <= 1 {
		h.host.Push("No previous input.")
		return "", nil
	}
	if count > total {
		count = total
	}

	lines := make([]string, 0, count)
	for i := count - 1; i >= 0; i-- {
		lines = append(lines, fmt.Sprintf("%4d  %s", i+1, h.host.History(i)))
	}
	h.host.PushMany(transcript.LevelMessage, lines...)
	return "", nil
}

func (h *History) Help(console.Arguments) []string {
	return []string{
		h.Usage(),
		"Lists recent inputs, oldest first, numbered for !N on the next line. !! is !1.",
		fmt.Sprintf("-n=count  number of entries to list (default %d)", DefaultHistoryCount),
	}
}

// Clear empties the visible transcript.
type Clear struct {
	hostRef
}

func (*Clear) Name() string  { return "clear" }
func (*Clear) Usage() string { return "clear" }

func (c *Clear) Execute(console.Arguments) (string, error) {
	c.host.ClearLog()
	return "", nil
}

func (c *Clear) Help(console.Arguments) []string {
	return []string{c.Usage(), "Clears the visible log. The session log file keeps everything."}
}

// Level shows or changes which severities are visible.
type Level struct {
	hostRef
}

func (*Level) Name() string  { return "level" }
func (*Level) Usage() string { return "level [severity...]" }

func (l *Level) Execute(a console.Arguments) (string, error) {
	if a.Len() == 0 {
		current := l.host.Levels().String()
		l.host.Push("Visible severities: " + current)
		return current, nil
	}
	mask, err := transcript.ParseLevels(positional(a))
	if err != nil {
		return "", fmt.Errorf("level: %w", err)
	}
	l.host.SetLevels(mask)
	l.host.Push("Visible severities set to: " + mask.String())
	return "", nil
}

func (l *Level) Help(console.Arguments) []string {
	return []string{
		l.Usage(),
		"Without arguments prints the visible severities.",
		"With arguments shows only the named ones: message, warning, error, exception, assertion, all, none.",
		"Hidden lines are still written to the session log file.",
	}
}

// Fail always returns an error. It exercises the console's fault reporting.
type Fail struct{}

func (*Fail) Name() string  { return "fail" }
func (*Fail) Usage() string { return "fail [message...]" }

func (*Fail) Execute(a console.Arguments) (string, error) {
	msg := strings.Join(positional(a), " ")
	if msg == "" {
		msg = "failure requested"
	}
	return "", errors.New(msg)
}

func (f *Fail) Help(console.Arguments) []string {
	return []string{f.Usage(), "Fails with the given message."}
}

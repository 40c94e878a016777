package builtin

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/quocvuong92/devconsole/internal/console"
	"github.com/quocvuong92/devconsole/internal/history"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Comment strips a trailing "# ..." comment. A '#' only starts a comment at
// the beginning of an unquoted word, following the same quoting and escape
// rules as the argument parser. A stage that is nothing but a comment
// becomes blank, which ends the pipeline quietly.
type Comment struct{}

func (*Comment) Name() string  { return "comment" }
func (*Comment) Usage() string { return "text # comment" }

func (*Comment) PreProcess(input string) string {
	var (
		quote     rune
		escaped   bool
		wordStart = true
	)
	for i, r := range input {
		literal := escaped
		switch {
		case escaped:
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '#' && wordStart:
			return strings.TrimSpace(input[:i])
		}
		wordStart = quote == 0 && !escaped && !literal && unicode.IsSpace(r)
	}
	return input
}

func (c *Comment) Help(console.Arguments) []string {
	return []string{
		c.Usage(),
		"Everything from a word starting with # to the end of the stage is dropped.",
		"A stage that is only a comment cancels the whole line.",
	}
}

// Recall expands "!!" to the previous input and "!N" to the input N steps
// back. Indexes past the oldest entry recall the oldest.
//
// A pipeline cannot be recalled into a single stage, because the line has
// already been split. Such a recall is left unchanged with a warning;
// ExpandRecall handles it before the line reaches the console.
type Recall struct {
	hostRef
}

func (*Recall) Name() string  { return "recall" }
func (*Recall) Usage() string { return "!! | !N" }

func (r *Recall) PreProcess(input string) string {
	n, ok := recallIndex(input)
	if !ok || r.host == nil {
		return input
	}
	recalled := r.host.History(n)
	if strings.Contains(recalled, console.PipeSeparator) {
		r.host.PushLevel(transcript.LevelWarning, fmt.Sprintf(
			"Cannot recall pipeline '%s' inside a stage. Enter it on its own line.", recalled))
		return input
	}
	return recalled
}

func (r *Recall) Help(console.Arguments) []string {
	return []string{
		r.Usage(),
		"!! repeats the previous input, !N the input N entries back (see history).",
		"A recalled pipeline must be the whole line.",
	}
}

// ExpandRecall expands a line that is exactly "!!" or "!N" against hist,
// which must not contain line yet. It reports false when line is not a
// recall or hist is empty.
func ExpandRecall(hist history.Recorder, line string) (string, bool) {
	n, ok := recallIndex(strings.TrimSpace(line))
	if !ok || hist.Len() == 0 {
		return line, false
	}
	// line is not recorded yet, so everything is one step closer.
	return hist.Get(n - 1), true
}

// recallIndex parses "!!" as 1 and "!N" as N.
func recallIndex(input string) (int, bool) {
	ref, ok := strings.CutPrefix(input, "!")
	if !ok {
		return 0, false
	}
	if ref == "!" {
		return 1, true
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Alias replaces a leading alias word with its expansion.
type Alias struct {
	aliases map[string]string
}

// NewAlias copies aliases so later changes to the map have no effect.
func NewAlias(aliases map[string]string) *Alias {
	copied := make(map[string]string, len(aliases))
	for k, v := range aliases {
		copied[k] = v
	}
	return &Alias{aliases: copied}
}

func (*Alias) Name() string  { return "alias" }
func (*Alias) Usage() string { return "<alias> [arguments...]" }

func (a *Alias) PreProcess(input string) string {
	word, rest, _ := strings.Cut(input, " ")
	expansion, ok := a.aliases[word]
	if !ok {
		return input
	}
	if rest == "" {
		return expansion
	}
	return expansion + " " + rest
}

func (a *Alias) Help(console.Arguments) []string {
	lines := []string{a.Usage(), "Expands configured aliases:"}
	if len(a.aliases) == 0 {
		return append(lines, "  (none configured)")
	}
	for _, k := range sortedKeys(a.aliases) {
		lines = append(lines, fmt.Sprintf("  %s -> %s", k, a.aliases[k]))
	}
	return lines
}

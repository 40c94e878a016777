// Package args is the default argument parser for the console.
//
// Words are split with shell rules: single or double quotes group words and a
// backslash escapes the next character outside single quotes.
// The first word is the command name. A word of the form -x or -x=value sets
// the single-character flag x; a cluster such as -abc sets a, b and c. The
// word "--" ends flag parsing. Words that start with '-' followed by a digit
// are positional, so negative numbers pass through.
package args

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/shlex"

	"github.com/quocvuong92/devconsole/internal/console"
)

// Arguments is a parsed stage.
type Arguments struct {
	text       string
	name       string
	positional []string
	flags      map[rune]string
}

var _ console.Arguments = (*Arguments)(nil)

// Parser implements console.ArgumentParser.
type Parser struct{}

// Parse implements console.ArgumentParser.
func (Parser) Parse(text string) console.Arguments {
	return Parse(text)
}

// Parse parses text into Arguments. It never fails; an unterminated quote
// runs to the end of the text.
func Parse(text string) *Arguments {
	a := &Arguments{text: text, flags: make(map[rune]string)}

	words := Split(text)
	if len(words) == 0 {
		return a
	}
	a.name = words[0]

	flagsDone := false
	for _, w := range words[1:] {
		if !flagsDone && w == "--" {
			flagsDone = true
			continue
		}
		if !flagsDone && isFlag(w) {
			a.addFlag(w[1:])
			continue
		}
		a.positional = append(a.positional, w)
	}
	return a
}

func isFlag(w string) bool {
	if len(w) < 2 || w[0] != '-' || w[1] == '-' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(w[1:])
	return !unicode.IsDigit(r) && r != '='
}

// addFlag handles "x", "x=value" and clusters like "abc".
func (a *Arguments) addFlag(body string) {
	if name, value, ok := strings.Cut(body, "="); ok {
		r, size := utf8.DecodeRuneInString(name)
		if size == len(name) {
			a.flags[r] = value
			return
		}
		// -ab=value: every rune but the last is a bare flag.
		for _, c := range name[:len(name)-size] {
			a.flags[c] = ""
		}
		last, _ := utf8.DecodeLastRuneInString(name)
		a.flags[last] = value
		return
	}
	for _, c := range body {
		a.flags[c] = ""
	}
}

// Text returns the text the arguments were parsed from.
func (a *Arguments) Text() string { return a.text }

// CommandName returns the first word.
func (a *Arguments) CommandName() string { return a.name }

// Len returns the number of positional arguments.
func (a *Arguments) Len() int { return len(a.positional) }

// Arg returns positional argument i, or "" when out of range.
func (a *Arguments) Arg(i int) string {
	if i < 0 || i >= len(a.positional) {
		return ""
	}
	return a.positional[i]
}

// Args returns a copy of the positional arguments.
func (a *Arguments) Args() []string {
	out := make([]string, len(a.positional))
	copy(out, a.positional)
	return out
}

// Flag returns the value of flag name, or "" when it is absent or bare.
func (a *Arguments) Flag(name rune) string { return a.flags[name] }

// LookupFlag reports whether flag name was given and its value.
func (a *Arguments) LookupFlag(name rune) (string, bool) {
	v, ok := a.flags[name]
	return v, ok
}

// Split breaks text into words with shell quoting rules. Unquoted words
// starting with '#' begin a comment. A trailing backslash is dropped and an
// unterminated quote runs to the end of the text.
func Split(text string) []string {
	words, err := shlex.Split(text)
	if err == nil {
		return words
	}

	text = strings.TrimSuffix(text, `\`)
	for _, closer := range []string{"", `"`, "'"} {
		if w, err := shlex.Split(text + closer); err == nil {
			return w
		}
	}
	return words
}

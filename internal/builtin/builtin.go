// Package builtin provides the stock commands and preprocessors the CLI
// registers on every console.
package builtin

import (
	"sort"

	"github.com/quocvuong92/devconsole/internal/console"
)

// hostRef is embedded by plugins that call back into the console.
type hostRef struct {
	host console.Host
}

// SetHost implements console.HostSetter.
func (h *hostRef) SetHost(host console.Host) { h.host = host }

// Commands returns a fresh set of the stock commands.
func Commands() []console.Command {
	return []console.Command{
		&Echo{},
		NewCase("upper"),
		NewCase("lower"),
		&Repeat{},
		&History{},
		&Clear{},
		&Level{},
		&Fail{},
	}
}

// PreProcessors returns the stock preprocessors in the order they should run.
func PreProcessors(aliases map[string]string) []console.PreProcessor {
	return []console.PreProcessor{
		&Comment{},
		&Recall{},
		NewAlias(aliases),
	}
}

// Register adds every stock plugin to c.
func Register(c *console.Console, aliases map[string]string) {
	for _, cmd := range Commands() {
		c.RegisterCommand(cmd)
	}
	for _, p := range PreProcessors(aliases) {
		c.RegisterPreProcessor(p)
	}
}

// positional returns every positional argument.
func positional(a console.Arguments) []string {
	out := make([]string, a.Len())
	for i := range out {
		out[i] = a.Arg(i)
	}
	return out
}

// hasFlag reports whether a flag was given, even without a value. Parsers
// that cannot tell bare flags from absent ones fall back to a non-empty value.
func hasFlag(a console.Arguments, name rune) bool {
	if l, ok := a.(interface {
		LookupFlag(rune) (string, bool)
	}); ok {
		_, set := l.LookupFlag(name)
		return set
	}
	return a.Flag(name) != ""
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package transcript

import (
	"fmt"
	"strings"
)

// Level is a bitmask of transcript severities.
type Level uint8

const (
	// LevelMessage is an ordinary transcript line
	LevelMessage Level = 1 << iota
	// LevelWarning flags a recoverable problem
	LevelWarning
	// LevelError flags a failed operation
	LevelError
	// LevelException carries diagnostic detail for a handler fault
	LevelException
	// LevelAssertion flags a violated host assertion
	LevelAssertion
)

// LevelNone enables nothing; LevelAll enables every severity.
const (
	LevelNone Level = 0
	LevelAll        = LevelMessage | LevelWarning | LevelError | LevelException | LevelAssertion
)

var levelNames = []struct {
	level Level
	name  string
}{
	{LevelMessage, "message"},
	{LevelWarning, "warning"},
	{LevelError, "error"},
	{LevelException, "exception"},
	{LevelAssertion, "assertion"},
}

// Has reports whether every bit of other is enabled in l.
func (l Level) Has(other Level) bool {
	return other != LevelNone && l&other == other
}

// String returns the comma-separated names of the enabled severities
func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelAll:
		return "all"
	}

	var names []string
	for _, ln := range levelNames {
		if l&ln.level != 0 {
			names = append(names, ln.name)
		}
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.Join(names, ",")
}

// ParseLevel parses a single severity name. "all" and "none" are accepted.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "all", "*":
		return LevelAll, nil
	case "none", "off":
		return LevelNone, nil
	case "warn":
		return LevelWarning, nil
	}
	for _, ln := range levelNames {
		if ln.name == name {
			return ln.level, nil
		}
	}
	return LevelNone, fmt.Errorf("unknown severity %q", s)
}

// ParseLevels ORs together the named severities. Each element may itself be
// a comma-separated list.
func ParseLevels(names []string) (Level, error) {
	var mask Level
	for _, entry := range names {
		for _, part := range strings.Split(entry, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			l, err := ParseLevel(part)
			if err != nil {
				return LevelNone, err
			}
			mask |= l
		}
	}
	return mask, nil
}

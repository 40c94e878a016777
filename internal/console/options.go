package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quocvuong92/devconsole/internal/history"
	"github.com/quocvuong92/devconsole/internal/logging"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Errors
var (
	ErrNoParser       = errors.New("console requires an argument parser")
	ErrNoArguments    = errors.New("argument parser returned no arguments")
	ErrInvalidPolicy  = errors.New("invalid duplicate name policy. Use 'ignore', 'replace', or 'rename'")
	ErrInvalidSpacing = errors.New("invalid spacing style. Use 'spacious' or 'compact'")
)

// DuplicatePolicy decides what happens when a command name is registered twice.
type DuplicatePolicy int

const (
	// PolicyIgnore drops the new command
	PolicyIgnore DuplicatePolicy = iota
	// PolicyReplace keeps the name and swaps in the new command
	PolicyReplace
	// PolicyRename registers the new command under name_N
	PolicyRename
)

// String returns the config name of the policy
func (p DuplicatePolicy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyReplace:
		return "replace"
	case PolicyRename:
		return "rename"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a policy name
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "":
		return PolicyIgnore, nil
	case "replace", "override":
		return PolicyReplace, nil
	case "rename":
		return PolicyRename, nil
	default:
		return PolicyIgnore, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Spacing controls blank separator lines in the transcript.
type Spacing int

const (
	// SpacingSpacious emits a blank line after each logical section
	SpacingSpacious Spacing = iota
	// SpacingCompact never emits separator lines
	SpacingCompact
)

// String returns the config name of the spacing style
func (s Spacing) String() string {
	switch s {
	case SpacingSpacious:
		return "spacious"
	case SpacingCompact:
		return "compact"
	default:
		return "unknown"
	}
}

// ParseSpacing parses a spacing style name
func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spacious", "":
		return SpacingSpacious, nil
	case "compact":
		return SpacingCompact, nil
	default:
		return SpacingSpacious, fmt.Errorf("%w: %q", ErrInvalidSpacing, s)
	}
}

// Options configures a Console. They are fixed for the console's lifetime
// except for the severity filter, which plugins may change through Host.
type Options struct {
	DuplicatePolicy DuplicatePolicy
	Spacing         Spacing
	Parser          ArgumentParser
	Transcript      transcript.Options
	// History receives every processed input; nil creates an unbounded
	// history.Buffer
	History history.Recorder
	Logger  *logging.Logger
}

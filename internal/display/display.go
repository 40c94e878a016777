package display

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWrapWidth = 100

var (
	renderer    *glamour.TermRenderer
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width of f, or a default when unknown.
func Width(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWrapWidth
}

// InitRenderer prepares the markdown renderer used by RenderMarkdown.
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(Width(os.Stdout)),
	)
	if err != nil {
		return err
	}
	renderer = r
	return nil
}

// RenderMarkdown renders md for the terminal. Without an initialised
// renderer, or on failure, md is returned unchanged.
func RenderMarkdown(md string) string {
	if renderer == nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// ShowError prints an error message to stderr.
func ShowError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+msg))
}

// ShowResult prints the output of a processed line.
func ShowResult(w io.Writer, result string, color bool) {
	if result == "" {
		return
	}
	if color {
		result = resultStyle.Render(result)
	}
	fmt.Fprintln(w, result)
}

// Spinner shows activity on stderr while a line is processed.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a spinner. When enabled is false every method is a no-op.
func NewSpinner(suffix string, enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	return &Spinner{s: s}
}

// Start starts the spinner.
func (sp *Spinner) Start() {
	if sp.s != nil {
		sp.s.Start()
	}
}

// Stop stops the spinner and clears its line.
func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}

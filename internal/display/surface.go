package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Surface prints visible transcript entries as they are pushed. It is the
// console's observer.
type Surface struct {
	mu      sync.Mutex
	out     io.Writer
	color   bool
	styles  map[transcript.Level]lipgloss.Style
	held    bool
	pending []string
}

// NewSurface creates a Surface writing to out. With color false lines are
// written unstyled.
func NewSurface(out io.Writer, color bool) *Surface {
	return &Surface{
		out:   out,
		color: color,
		styles: map[transcript.Level]lipgloss.Style{
			transcript.LevelWarning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			transcript.LevelError:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			transcript.LevelException: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			transcript.LevelAssertion: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		},
	}
}

// Observe implements transcript.Observer. Hidden entries are skipped.
func (s *Surface) Observe(e transcript.Entry) {
	if !e.Visible {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range strings.Split(strings.TrimPrefix(e.Text, "\n"), "\n") {
		line = s.style(e.Level, line)
		if s.held {
			s.pending = append(s.pending, line)
			continue
		}
		fmt.Fprintln(s.out, line)
	}
}

// Hold buffers output until Flush, so a spinner can own the terminal.
func (s *Surface) Hold() {
	s.mu.Lock()
	s.held = true
	s.mu.Unlock()
}

// Flush writes everything buffered since Hold and stops buffering.
func (s *Surface) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.pending {
		fmt.Fprintln(s.out, line)
	}
	s.pending = nil
	s.held = false
}

func (s *Surface) style(level transcript.Level, line string) string {
	if !s.color || strings.TrimSpace(line) == "" {
		return line
	}
	st, ok := s.styles[level]
	if !ok {
		return line
	}
	// Keep the indentation outside the styled span.
	text := strings.TrimLeft(line, " ")
	return line[:len(line)-len(text)] + st.Render(text)
}

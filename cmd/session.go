package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/quocvuong92/devconsole/internal/args"
	"github.com/quocvuong92/devconsole/internal/builtin"
	"github.com/quocvuong92/devconsole/internal/console"
	"github.com/quocvuong92/devconsole/internal/display"
	"github.com/quocvuong92/devconsole/internal/history"
	"github.com/quocvuong92/devconsole/internal/logging"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Session is a console wired to the terminal, with history loaded from
// and saved to the configured file.
type Session struct {
	app     *App
	console *console.Console
	surface *display.Surface
	history *history.Buffer
	closed  bool
}

// openSession creates a console with the stock plugins that prints its log
// to out.
func (app *App) openSession(out io.Writer) (*Session, error) {
	hist := history.NewBuffer(app.cfg.HistoryLimit)
	if app.cfg.HistoryFile != "" {
		if err := hist.Load(app.cfg.HistoryFile); err != nil {
			// History load failed, continue without it
			app.logger.Warn("could not load history", logging.Fields{"path": app.cfg.HistoryFile, "error": err.Error()})
			hist.Clear()
		}
		app.logger.Debug("history loaded", logging.Fields{"entries": hist.Len(), "limit": hist.Limit()})
	}

	surface := display.NewSurface(out, app.color)
	c, err := console.New(console.Options{
		DuplicatePolicy: app.cfg.Policy,
		Spacing:         app.cfg.SpacingStyle,
		Parser:          args.Parser{},
		History:         hist,
		Logger:          app.logger,
		Transcript: transcript.Options{
			Levels:      app.cfg.LevelMask,
			IndentWidth: app.cfg.IndentWidth,
			MaxVisible:  app.cfg.MaxVisible,
			Dir:         app.cfg.LogDir,
			Observer:    surface.Observe,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create console: %w", err)
	}
	builtin.Register(c, app.cfg.Aliases)

	return &Session{app: app, console: c, surface: surface, history: hist}, nil
}

// Process runs one input line through the console. A line that is only a
// recall is expanded first, so a recalled pipeline keeps its stages.
func (s *Session) Process(line string) string {
	if expanded, ok := builtin.ExpandRecall(s.history, line); ok {
		s.app.logger.Debug("recall expanded", logging.Fields{"input": line, "line": expanded})
		line = expanded
	}
	return s.console.Process(line)
}

// Close saves history and closes the session log file.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.app.cfg.HistoryFile != "" {
		if err := s.history.Save(s.app.cfg.HistoryFile); err != nil {
			errs = append(errs, fmt.Errorf("save history: %w", err))
		}
	}
	if err := s.console.TranscriptErr(); err != nil {
		s.app.logger.Warn("session log incomplete", logging.Fields{"error": err.Error()})
	}
	if path := s.console.TranscriptPath(); path != "" {
		s.app.logger.Debug("session log written", logging.Fields{"path": path})
	}
	if err := s.console.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close session log: %w", err))
	}
	return errors.Join(errs...)
}

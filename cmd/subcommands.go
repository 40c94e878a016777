package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/devconsole/internal/config"
	"github.com/quocvuong92/devconsole/internal/console"
	"github.com/quocvuong92/devconsole/internal/display"
	"github.com/quocvuong92/devconsole/internal/history"
)

// ErrHistoryDisabled is returned by the history command when no history file
// is configured.
var ErrHistoryDisabled = errors.New("history persistence is off; set history_file or --history-file")

// NewCommandsCmd creates the commands command
func NewCommandsCmd(app *App) *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List registered commands and preprocessors",
		Long: `List every command and preprocessor the console registers, as markdown.

Examples:
  devconsole commands
  devconsole commands --render`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.openSession(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			md := catalogue(s.console)
			if err := s.Close(); err != nil {
				return err
			}

			if render {
				if err := display.InitRenderer(); err != nil {
					return fmt.Errorf("failed to initialize renderer: %w", err)
				}
				md = display.RenderMarkdown(md)
			}
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&render, "render", "r", false, "Render markdown with colors and formatting")
	return cmd
}

// catalogue renders the registered plugins as a markdown document.
func catalogue(c *console.Console) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n| Command | Usage |\n|---|---|\n")
	for _, r := range c.Commands() {
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", r.Name, escapeCell(r.Command.Usage()))
	}
	b.WriteString("\n# Preprocessors\n\n| Preprocessor | Usage |\n|---|---|\n")
	for _, p := range c.PreProcessors() {
		fmt.Fprintf(&b, "| `%s` | `%s` |\n", p.Name(), escapeCell(p.Usage()))
	}
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// NewHistoryCmd creates the history command
func NewHistoryCmd(app *App) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show persisted input history",
		Long: `Show the input history saved by previous sessions, oldest first.

Numbers match !N recall in the next session.

Examples:
  devconsole history --history-file ~/.config/devconsole/history.json
  devconsole history -n 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.HistoryFile == "" {
				return ErrHistoryDisabled
			}
			buf := history.NewBuffer(app.cfg.HistoryLimit)
			if err := buf.Load(app.cfg.HistoryFile); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entries := buf.Recent(count)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No history.")
				return nil
			}
			// Recalling from a new session adds one entry first, so the
			// newest saved entry is !1.
			for i := len(entries) - 1; i >= 0; i-- {
				fmt.Fprintf(out, "%4d  %s\n", i+1, entries[i])
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of entries to show (0 = all)")
	return cmd
}

// NewConfigCmd creates the config command
func NewConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			source := app.cfg.LoadedFrom
			if source == "" {
				source = "(none)"
			}
			fmt.Fprintf(out, "Config file: %s\n", source)
			c := app.cfg
			fmt.Fprintf(out, "duplicate_policy: %s\n", c.Policy)
			fmt.Fprintf(out, "spacing: %s\n", c.SpacingStyle)
			fmt.Fprintf(out, "levels: %s\n", c.LevelMask)
			fmt.Fprintf(out, "indent_width: %d\n", c.IndentWidth)
			fmt.Fprintf(out, "max_visible_characters: %d\n", c.MaxVisible)
			fmt.Fprintf(out, "log_dir: %s\n", c.LogDir)
			fmt.Fprintf(out, "history_file: %s\n", c.HistoryFile)
			fmt.Fprintf(out, "history_limit: %d\n", c.HistoryLimit)
			keys := make([]string, 0, len(c.Aliases))
			for k := range c.Aliases {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(out, "alias %s: %s\n", k, c.Aliases[k])
			}
			return nil
		},
	})

	return cmd
}

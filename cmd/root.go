package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/devconsole/internal/config"
	"github.com/quocvuong92/devconsole/internal/display"
	"github.com/quocvuong92/devconsole/internal/logging"
)

// App holds the application state
type App struct {
	cfg       *config.Config
	logger    *logging.Logger
	sessionID string
	color     bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg:    config.NewConfig(),
		logger: logging.Discard(),
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewApp()).Execute(); err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devconsole [input...]",
		Short: "An in-process command console with pipelines",
		Long: `devconsole runs command lines through a console of registered commands.

Stages are separated by '|'. Each stage's output is appended to the next
stage's arguments. Every step is narrated into an indented log, which is
also written to a per-session file.

Put input that contains flags or the word "help" after "--" so it reaches
the console instead of this program.

Examples:
  devconsole echo hello                  # One-shot
  devconsole 'echo hi | upper'           # Pipeline
  devconsole -- echo -u hello            # Console flags
  devconsole -- help echo                # Command help
  devconsole -i                          # Interactive mode
  devconsole commands --render           # Command catalogue`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", false, "Enable debug logging on stderr")
	flags.StringVar(&app.cfg.LogFormat, "log-format", "text", "Debug log format: text or json")
	flags.StringVar(&app.cfg.ConfigPath, "config", "", "Config file (default: search ./.devconsole and the user config dir)")
	flags.StringVar(&app.cfg.DuplicatePolicy, "policy", "", "Duplicate command names: ignore, replace, or rename")
	flags.StringVar(&app.cfg.Spacing, "spacing", "", "Log spacing: spacious or compact")
	flags.StringSliceVar(&app.cfg.Levels, "levels", nil, "Visible severities (e.g. message,error)")
	flags.IntVar(&app.cfg.IndentWidth, "indent", 0, "Spaces per indent level")
	flags.IntVar(&app.cfg.MaxVisible, "max-visible", 0, "Visible log size in characters")
	flags.StringVar(&app.cfg.LogDir, "log-dir", "", "Directory for session log files")
	flags.StringVar(&app.cfg.HistoryFile, "history-file", "", "Persist input history to this file")
	flags.BoolVar(&app.cfg.PersistHistory, "save-history", false, "Persist input history to the default history file")
	flags.IntVar(&app.cfg.HistoryLimit, "history-limit", 0, "Maximum history entries (0 = unlimited)")
	flags.StringToStringVar(&app.cfg.Aliases, "alias", nil, "Alias words (e.g. --alias say=echo)")

	rootCmd.Flags().BoolVarP(&app.cfg.Interactive, "interactive", "i", false, "Interactive console")
	rootCmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render markdown output with colors and formatting")

	// Add subcommands
	rootCmd.AddCommand(NewCommandsCmd(app))
	rootCmd.AddCommand(NewHistoryCmd(app))
	rootCmd.AddCommand(NewConfigCmd(app))

	return rootCmd
}

// setup configures diagnostics and resolves the configuration.
func (app *App) setup(cmd *cobra.Command) error {
	app.sessionID = uuid.New().String()
	if app.cfg.Verbose {
		app.logger = logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.ParseFormat(app.cfg.LogFormat),
			Output: cmd.ErrOrStderr(),
		})
	}
	app.logger = app.logger.WithFields(logging.Fields{"session": app.sessionID})

	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		app.color = display.IsTerminal(f)
	}

	if err := app.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if app.cfg.LoadWarning != nil {
		app.logger.Warn("ignoring config file", logging.Fields{"error": app.cfg.LoadWarning.Error()})
	}
	if app.cfg.LoadedFrom != "" {
		app.logger.Info("config file loaded", logging.Fields{"path": app.cfg.LoadedFrom})
	}
	app.logger.Debug("configuration resolved", logging.Fields{"config": app.cfg.String()})
	return nil
}

func (app *App) run(cmd *cobra.Command, args []string) error {
	// Initialize markdown renderer if render flag is set
	if app.cfg.Render {
		if err := display.InitRenderer(); err != nil {
			app.logger.Warn("failed to initialize renderer", logging.Fields{"error": err.Error()})
		}
	}

	// Interactive mode
	if app.cfg.Interactive {
		return app.runInteractive()
	}

	// Require input if not interactive mode
	if len(args) == 0 {
		return cmd.Help()
	}

	return app.runOnce(cmd.OutOrStdout(), strings.Join(args, " "))
}

// runOnce processes a single line and prints its result.
func (app *App) runOnce(out io.Writer, line string) error {
	s, err := app.openSession(out)
	if err != nil {
		return err
	}

	result := s.Process(line)
	display.ShowResult(out, result, app.color)
	return s.Close()
}

// Package cmd implements the CLI commands for the devconsole application.
//
// # Architecture
//
// This package is organized into the following logical groups:
//
// ## Core CLI
//
//   - root.go: Main entry point, App struct, cobra command setup, flags and
//     one-shot processing
//   - session.go: Console construction, history load/save, log file close
//   - subcommands.go: commands, history and config subcommands
//
// ## Interactive Mode
//
//   - interactive.go: REPL session, command-name completion, spinner
//
// # Key Components
//
// ## App
//
// The App struct holds the resolved configuration and the diagnostic
// logger. It's created in Execute() and shared by every subcommand.
//
// ## Session
//
// Wraps a console.Console registered with the builtin commands and
// preprocessors. Its transcript is printed by a display.Surface and written
// to a log file under the configured log directory.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd

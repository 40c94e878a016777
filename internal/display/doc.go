// Package display handles terminal output for the CLI: the coloured
// transcript surface, markdown rendering, error messages and the busy
// spinner.
package display

package console

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/quocvuong92/devconsole/internal/constants"
	"github.com/quocvuong92/devconsole/internal/logging"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// PipeSeparator splits an input line into stages.
const PipeSeparator = "|"

// Process records input in history, runs each '|' separated stage left to
// right and returns the output of the last stage. Each stage's output is
// appended, space separated, to the text of the stage after it.
//
// Process never panics because of a plugin. Unknown commands and command
// failures are logged and yield empty stage output. A preprocessor that
// rewrites a stage to blank text ends the whole pipeline with "".
func (c *Console) Process(input string) string {
	c.history.Add(input)

	depth := c.sink.Depth()
	defer c.sink.RestoreDepth(depth)

	stages := strings.Split(input, PipeSeparator)
	var output string
	for i := range stages {
		out, aborted := c.runStage(strings.TrimSpace(stages[i]))
		if aborted {
			c.logger.Debug("pipeline aborted", logging.Fields{"stage": i})
			return ""
		}
		output = out
		if i+1 < len(stages) {
			stages[i+1] += " " + output
		}
	}
	return output
}

func (c *Console) runStage(text string) (output string, aborted bool) {
	c.sink.Push(transcript.LevelMessage, "> "+text)
	levels := 1
	c.sink.Indent(1)
	defer func() { c.sink.Dedent(levels) }()

	for _, p := range c.preprocessors {
		var next string
		if !c.guard(text, func() { next = p.PreProcess(text) }) {
			return c.endStage(""), false
		}
		if next == text {
			continue
		}
		text = next
		c.sink.Push(transcript.LevelMessage, text)
		c.sink.Indent(1)
		levels++
		if strings.TrimSpace(text) == "" {
			return "", true
		}
	}

	var args Arguments
	if !c.guard(text, func() { args = c.parser.Parse(text) }) {
		return c.endStage(""), false
	}
	if args == nil {
		c.reportFault(text, ErrNoArguments, ErrNoArguments.Error())
		return c.endStage(""), false
	}

	return c.endStage(c.dispatch(args)), false
}

func (c *Console) endStage(output string) string {
	c.separator()
	return output
}

// dispatch runs help or the named command. Help never produces output.
func (c *Console) dispatch(args Arguments) string {
	name := args.CommandName()
	if name == constants.HelpCommand {
		c.guard(args.Text(), func() { c.help(args) })
		return ""
	}

	cmd, ok := c.commands.lookup(name)
	if !ok {
		c.sink.Push(transcript.LevelError, fmt.Sprintf(
			"Command '%s' not found. Use command '%s' for available commands.", name, constants.HelpCommand))
		return ""
	}

	var (
		out string
		err error
	)
	if !c.guard(args.Text(), func() { out, err = cmd.Execute(args) }) {
		return ""
	}
	if err != nil {
		c.reportFault(args.Text(), err, fmt.Sprintf("%+v", err))
		return ""
	}
	return out
}

// guard runs fn, turning a panic into a logged fault. It restores the
// indentation depth fn started at if fn panics.
func (c *Console) guard(text string, fn func()) (ok bool) {
	depth := c.sink.Depth()
	defer func() {
		if r := recover(); r != nil {
			c.sink.RestoreDepth(depth)
			c.reportFault(text, fmt.Errorf("panic: %v", r), string(debug.Stack()))
			ok = false
		}
	}()
	fn()
	return true
}

// reportFault logs a summary at error level and detail at exception level.
func (c *Console) reportFault(text string, err error, detail string) {
	c.sink.PushMany(transcript.LevelError,
		"There was an error while running the command.",
		fmt.Sprintf("'%s'", text),
		"Produced",
		err.Error(),
	)
	c.sink.PushMany(transcript.LevelException, strings.Split(strings.TrimRight(detail, "\n"), "\n")...)
	c.logger.Warn("command failed", logging.Fields{"input": text, "error": err.Error()})
}

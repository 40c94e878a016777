package console

import (
	"fmt"

	"github.com/quocvuong92/devconsole/internal/transcript"
)

// help writes either the overview (no arguments) or the detailed help of
// every command and preprocessor whose name equals the first argument.
func (c *Console) help(args Arguments) {
	if args.Len() == 0 {
		c.helpOverview()
		return
	}

	target := args.Arg(0)
	for _, reg := range c.commands.list() {
		if reg.Name == target {
			c.sink.PushMany(transcript.LevelMessage, reg.Command.Help(args)...)
		}
	}
	c.separator()

	for _, p := range c.preprocessors {
		if p.Name() != target {
			continue
		}
		c.sink.Push(transcript.LevelMessage, "Preprocessor:")
		c.sink.PushManyIndented(transcript.LevelMessage, 1, p.Help(args)...)
	}
}

func (c *Console) helpOverview() {
	c.section("To use a command, use the following syntax:", func() {
		c.sink.Push(transcript.LevelMessage, "{command name} [arguments|flags]")
	})

	c.section("Available Commands:", func() {
		for _, reg := range c.commands.list() {
			c.sink.Push(transcript.LevelMessage, fmt.Sprintf("%s: %s", reg.Name, reg.Command.Usage()))
		}
	})

	c.section("Available Preprocessors:", func() {
		for _, p := range c.preprocessors {
			c.sink.Push(transcript.LevelMessage, fmt.Sprintf("%s: %s", p.Name(), p.Usage()))
		}
	})
}

// section logs title and then body one level deeper, followed by a
// separator at the inner depth.
func (c *Console) section(title string, body func()) {
	c.sink.Push(transcript.LevelMessage, title)

	depth := c.sink.Depth()
	defer c.sink.RestoreDepth(depth)
	c.sink.Indent(1)
	body()
	c.separator()
}

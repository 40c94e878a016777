package console

import (
	"fmt"

	"github.com/quocvuong92/devconsole/internal/logging"
	"github.com/quocvuong92/devconsole/internal/transcript"
)

// Registration pairs a command with the name it was registered under, which
// differs from Command.Name() after a rename.
type Registration struct {
	Name    string
	Command Command
}

// registry maps names to commands and remembers registration order.
type registry struct {
	names  []string
	byName map[string]Command
}

func newRegistry() registry {
	return registry{byName: make(map[string]Command)}
}

func (r *registry) has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

func (r *registry) lookup(name string) (Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// put stores cmd under name. An existing name keeps its position.
func (r *registry) put(name string, cmd Command) {
	if !r.has(name) {
		r.names = append(r.names, name)
	}
	r.byName[name] = cmd
}

func (r *registry) list() []Registration {
	out := make([]Registration, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, Registration{Name: name, Command: r.byName[name]})
	}
	return out
}

// RegisterCommand adds cmd to the console. A name that is already taken is
// resolved by the duplicate policy. It returns the name the command ended up
// under and whether it was registered at all.
func (c *Console) RegisterCommand(cmd Command) (string, bool) {
	name := cmd.Name()
	if !c.commands.has(name) {
		c.commands.put(name, cmd)
		c.attach(cmd)
		c.logger.Debug("command registered", logging.Fields{"name": name})
		return name, true
	}

	registered, ok := c.resolveDuplicate(name)
	if ok {
		c.commands.put(registered, cmd)
		c.attach(cmd)
	}
	c.separator()
	return registered, ok
}

// resolveDuplicate applies the policy and logs exactly one warning.
func (c *Console) resolveDuplicate(name string) (string, bool) {
	prefix := fmt.Sprintf("Command with name '%s' is already registered.", name)

	switch c.policy {
	case PolicyReplace:
		c.sink.Push(transcript.LevelWarning, prefix+" The new command replaces it.")
		return name, true

	case PolicyRename:
		renamed := nextFreeName(name, c.commands.has)
		c.sink.Push(transcript.LevelWarning, fmt.Sprintf("%s Name will be renamed to '%s'.", prefix, renamed))
		return renamed, true
	}

	c.sink.Push(transcript.LevelWarning, prefix+" The new command is ignored.")
	return "", false
}

// nextFreeName returns name_N for the smallest N >= 1 that is not taken.
func nextFreeName(name string, taken func(string) bool) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !taken(candidate) {
			return candidate
		}
	}
}

// RegisterPreProcessor appends p to the preprocessor chain. Chain order is
// registration order and cannot be changed afterwards.
func (c *Console) RegisterPreProcessor(p PreProcessor) {
	c.preprocessors = append(c.preprocessors, p)
	c.attach(p)
	c.logger.Debug("preprocessor registered", logging.Fields{"name": p.Name()})
}

// Command looks up a command by its registered name.
func (c *Console) Command(name string) (Command, bool) {
	return c.commands.lookup(name)
}

// Commands returns every registered command in registration order.
func (c *Console) Commands() []Registration {
	return c.commands.list()
}

// PreProcessors returns the chain in application order.
func (c *Console) PreProcessors() []PreProcessor {
	out := make([]PreProcessor, len(c.preprocessors))
	copy(out, c.preprocessors)
	return out
}

func (c *Console) attach(plugin any) {
	if hs, ok := plugin.(HostSetter); ok {
		hs.SetHost(c)
	}
}

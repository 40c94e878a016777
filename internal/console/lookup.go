package console

// FindCommand returns the first registered command, in registration order,
// whose concrete value satisfies T.
//
//	type flusher interface{ Flush() error }
//	if f, ok := console.FindCommand[flusher](c); ok { ... }
func FindCommand[T any](c *Console) (T, bool) {
	for _, name := range c.commands.names {
		if v, ok := c.commands.byName[name].(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// FindPreProcessor is FindCommand for the preprocessor chain.
func FindPreProcessor[T any](c *Console) (T, bool) {
	for _, p := range c.preprocessors {
		if v, ok := p.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

package transcript

// Indent tracks the current nesting depth in levels. It never goes negative.
type Indent struct {
	depth int
}

// Push increases the depth by levels.
func (i *Indent) Push(levels int) {
	if levels > 0 {
		i.depth += levels
	}
}

// Pop decreases the depth by levels, stopping at zero.
func (i *Indent) Pop(levels int) {
	if levels <= 0 {
		return
	}
	i.depth -= levels
	if i.depth < 0 {
		i.depth = 0
	}
}

// Depth returns the current depth.
func (i *Indent) Depth() int {
	return i.depth
}

// Reset sets the depth to a value previously returned by Depth.
func (i *Indent) Reset(depth int) {
	if depth < 0 {
		depth = 0
	}
	i.depth = depth
}

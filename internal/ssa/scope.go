package ssa

// Frame maps original names to their current SSA names, remembering the
// order in which names were first bound.
type Frame struct {
	order []string
	names map[string]string
}

func newFrame() *Frame {
	return &Frame{names: make(map[string]string)}
}

func (f *Frame) Get(name string) (string, bool) {
	ssa, ok := f.names[name]
	return ssa, ok
}

func (f *Frame) set(name, ssa string) {
	if _, ok := f.names[name]; !ok {
		f.order = append(f.order, name)
	}
	f.names[name] = ssa
}

// Names lists the original names bound in this frame, first binding first.
func (f *Frame) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func (f *Frame) Len() int { return len(f.order) }

// ScopeChain is a stack of frames. Lookups walk from the innermost frame
// outwards; writes only touch the innermost frame.
type ScopeChain struct {
	frames []*Frame
}

func NewScopeChain() *ScopeChain {
	return &ScopeChain{frames: []*Frame{newFrame()}}
}

// Push opens a child frame for one branch.
func (c *ScopeChain) Push() {
	c.frames = append(c.frames, newFrame())
}

// Pop removes and returns the innermost frame. The root frame is never popped.
func (c *ScopeChain) Pop() *Frame {
	if len(c.frames) == 1 {
		panic("ssa: pop of root scope frame")
	}
	top := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return top
}

func (c *ScopeChain) Depth() int { return len(c.frames) }

func (c *ScopeChain) Lookup(name string) (string, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if ssa, ok := c.frames[i].names[name]; ok {
			return ssa, true
		}
	}
	return "", false
}

func (c *ScopeChain) Bind(name, ssa string) {
	c.frames[len(c.frames)-1].set(name, ssa)
}

// Adopt copies a popped child frame's bindings into the innermost frame.
func (c *ScopeChain) Adopt(child *Frame) {
	for _, name := range child.order {
		c.Bind(name, child.names[name])
	}
}

// Snapshot flattens the visible bindings. Later changes to the chain do not
// affect the returned map.
func (c *ScopeChain) Snapshot() map[string]string {
	out := make(map[string]string)
	for _, f := range c.frames {
		for name, ssa := range f.names {
			out[name] = ssa
		}
	}
	return out
}

package internal

// Context is a value scoped to the owner tree.
// Owners inherit the values set by their ancestors.
type Context struct {
	rt      *Runtime
	initial any
}

func (r *Runtime) NewContext(initial any) *Context {
	return &Context{rt: r, initial: initial}
}

// Value looks the context up from the current owner to the root,
// falling back to the initial value.
func (c *Context) Value() any {
	for owner := c.rt.tracker.CurrentOwner(); owner != nil; owner = owner.parent {
		if v, ok := owner.context[c]; ok {
			return v
		}
	}

	return c.initial
}

// Set the value for the current owner. Without an owner there is nowhere to keep it.
func (c *Context) Set(value any) {
	owner := c.rt.tracker.CurrentOwner()
	if owner == nil {
		return
	}

	owner.context[c] = value
}

package internal

import (
	"iter"
)

// Owner is a lifecycle scope. Effects are owners themselves, so every effect,
// computed or owner created while another one is current becomes its child and
// is disposed along with it.
type Owner struct {
	rt *Runtime

	// cleanup functions to be called once, the next time the owner is reset or disposed
	cleanups []func()

	// functions to be called every time the owner is disposed
	disposers []func()

	// panic error handlers
	catchers []func(any)

	// the context values of this owner
	context map[any]any

	// the effect this owner belongs to, if any
	effect *Effect

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

// NewOwner creates an owner attached to the current owner, if any.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{
		rt:       r,
		cleanups: make([]func(), 0),
		context:  make(map[any]any),
	}

	if parent := r.tracker.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

// Run fn with this owner as the current owner.
// A panic is handed to the nearest owner with an error listener, or propagates if there is none.
func (o *Owner) Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if !o.catch(r) {
				panic(r)
			}
		}
	}()

	o.rt.tracker.RunWithOwner(o, fn)
}

// catch hands the panic value to the closest owner with an error listener.
func (o *Owner) catch(v any) bool {
	for owner := o; owner != nil; owner = owner.parent {
		if len(owner.catchers) == 0 {
			continue
		}

		for _, catcher := range owner.catchers {
			catcher(v)
		}
		return true
	}

	return false
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

// detach removes the owner from its parent's children.
func (o *Owner) detach() {
	if o.parent == nil {
		return
	}

	if o.prevSibling != nil {
		o.prevSibling.nextSibling = o.nextSibling
	} else if o.parent.childrenHead == o {
		o.parent.childrenHead = o.nextSibling
	}

	if o.nextSibling != nil {
		o.nextSibling.prevSibling = o.prevSibling
	}

	o.parent = nil
	o.prevSibling = nil
	o.nextSibling = nil
}

// Children iterates over the children, most recently created first.
func (o *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := o.childrenHead

		for child != nil {
			// read ahead, disposing the child may detach it
			next := child.nextSibling
			if !yield(child) {
				return
			}

			child = next
		}
	}
}

// Parent returns the owner this one is attached to.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// Dispose this owner's children and run its cleanups.
func (o *Owner) Dispose() {
	o.reset()

	for _, fn := range o.disposers {
		fn()
	}
}

// reset disposes the children and runs the pending cleanups,
// leaving the owner ready to be reused (e.g. when an effect re-runs).
func (o *Owner) reset() {
	o.DisposeChildren()

	cleanups := o.cleanups
	o.cleanups = make([]func(), 0)
	for _, fn := range cleanups {
		fn()
	}
}

func (o *Owner) DisposeChildren() {
	for child := range o.Children() {
		if child.effect != nil {
			child.effect.Dispose()
			continue
		}

		child.Dispose()
	}
	o.childrenHead = nil
}

func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) OnDispose(fn func()) {
	o.disposers = append(o.disposers, fn)
}

func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}

func (r *Runtime) OnCleanup(fn func()) {
	owner := r.tracker.CurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}

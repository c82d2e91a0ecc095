package internal

// computedKey is the key of the slot backing a computed value.
type computedKey struct{}

// failure holds a panic raised by a computed getter.
type failure struct {
	value any
}

// Computed is a lazily evaluated, cached derivation.
// Its dependencies never run it, they only mark it dirty; the next read recomputes it.
type Computed struct {
	*Effect

	// subscribers of the computed value itself
	slot *Slot

	compute func() any
	equal   func(a, b any) bool

	value       any
	failure     *failure
	initialized bool
}

func (r *Runtime) NewComputed(compute func() any) *Computed {
	c := &Computed{
		compute: compute,
		equal:   Equal,
	}
	// never scheduled, recompute drives the evaluation
	c.Effect = r.newEffect(nil)
	c.Effect.computed = c
	c.slot = newSlot(c, computedKey{})
	c.slot.computed = c

	return c
}

// SetEquals replaces the equality used to decide whether a recomputed value changed.
func (c *Computed) SetEquals(fn func(a, b any) bool) {
	c.equal = fn
}

// Slot returns the slot readers of this computed subscribe to.
func (c *Computed) Slot() *Slot {
	return c.slot
}

// Read returns the cached value, recomputing it first if a dependency changed.
// A panic raised by the getter is re-raised to every reader until a dependency changes.
func (c *Computed) Read() any {
	if c.running {
		panic(ErrCycle)
	}
	if c.disposed {
		// no more caching, behave like a plain function of its dependencies
		c.running = true
		defer func() { c.running = false }()

		return c.compute()
	}

	l := c.rt.tracker.Track(c.slot)
	c.refresh()
	if l != nil {
		l.version = c.slot.version
	}

	if c.failure != nil {
		panic(c.failure.value)
	}

	return c.value
}

// Peek is Read without subscribing the current effect.
func (c *Computed) Peek() any {
	var v any
	c.rt.tracker.RunUntracked(func() { v = c.Read() })
	return v
}

// IsDirty reports whether the next read will have to look at the dependencies again.
func (c *Computed) IsDirty() bool {
	return !c.initialized || c.dirty != dirtyNone
}

// invalidate marks the computed dirty. The first invalidation since the last
// read tells the readers to check it; further ones have nothing new to say.
func (c *Computed) invalidate(level dirtyLevel) {
	wasClean := c.dirty == dirtyNone

	if level > c.dirty {
		c.dirty = level
	}

	if wasClean && c.initialized {
		c.rt.notify(c.slot, dirtyCheck)
	}
}

// refresh brings the cached value up to date without tracking.
func (c *Computed) refresh() {
	if c.initialized && c.dirty == dirtyNone {
		return
	}

	if c.initialized && c.dirty == dirtyCheck && !c.depsChanged() {
		c.dirty = dirtyNone
		return
	}

	c.recompute()
}

func (c *Computed) recompute() {
	var (
		value  any
		failed *failure
	)

	func() {
		defer func() {
			if v := recover(); v != nil {
				failed = &failure{value: v}
			}
		}()

		c.running = true
		defer func() { c.running = false }()

		// cleared first so invalidations raised while computing are kept
		c.dirty = dirtyNone
		c.reset()
		c.unlink()

		c.rt.tracker.RunWithEffect(c.Effect, func() { value = c.compute() })
	}()

	first := !c.initialized
	c.initialized = true
	c.rt.observe(func(o Observer) { o.ComputedRecomputed() })

	if failed != nil {
		c.failure = failed
		c.slot.version++
		return
	}

	recovered := c.failure != nil
	c.failure = nil

	if first || recovered || !c.equal(c.value, value) {
		c.value = value
		c.slot.version++
	}
}

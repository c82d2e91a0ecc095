package internal

// dirtyLevel tells how sure we are that a node has to run again.
type dirtyLevel uint8

const (
	dirtyNone dirtyLevel = iota
	// a computed dependency was invalidated, its value may or may not have changed
	dirtyCheck
	// a dependency was written
	dirtyYes
)

// Effect is a unit of reactive work.
// It runs once when created and then every time the scheduler flushes it after one of its dependencies changed.
type Effect struct {
	*Owner

	rt *Runtime
	id uint64

	fn func()

	// the slots read during the last run
	deps  map[*Slot]*DependencyLink
	order []*DependencyLink // deps in read order

	dirty    dirtyLevel
	running  bool
	disposed bool

	// set when this effect backs a computed value
	computed *Computed
}

func (r *Runtime) newEffect(fn func()) *Effect {
	e := &Effect{
		rt:    r,
		id:    r.nextID(),
		fn:    fn,
		dirty: dirtyYes,
	}
	e.Owner = r.NewOwner()
	e.Owner.effect = e

	return e
}

// NewEffect creates an effect and runs it right away.
// A panic during that first run is reported like any other effect failure.
func (r *Runtime) NewEffect(fn func()) *Effect {
	e := r.newEffect(fn)
	r.execute(e)

	return e
}

func (e *Effect) ID() uint64 { return e.id }

func (e *Effect) IsDisposed() bool { return e.disposed }

func (e *Effect) IsRunning() bool { return e.running }

// Deps returns the slots the effect read during its last run, in read order.
func (e *Effect) Deps() []*Slot {
	deps := make([]*Slot, 0, len(e.order))
	for _, l := range e.order {
		deps = append(deps, l.dep)
	}

	return deps
}

// notify is called by the graph when one of the effect's dependencies changed.
func (e *Effect) notify(level dirtyLevel) {
	if e.disposed {
		return
	}

	if e.computed != nil {
		e.computed.invalidate(level)
		return
	}

	if level > e.dirty {
		e.dirty = level
	}
	e.rt.scheduleEffect(e)
}

// run tears the previous run down and executes the work function, re-tracking every read from scratch.
func (e *Effect) run() {
	e.running = true
	defer func() { e.running = false }()

	e.dirty = dirtyNone
	e.reset()
	e.unlink()

	e.rt.tracker.RunWithEffect(e, e.fn)
}

func (e *Effect) track(l *DependencyLink) {
	e.order = append(e.order, l)
}

func (e *Effect) unlink() {
	unlinkAll(e)
	e.order = e.order[:0]
}

// Dispose permanently stops the effect. Disposing twice is a no-op.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	e.Owner.Dispose()
	e.unlink()
	e.deps = nil
	e.order = nil
	e.detach()
}

// shouldRun decides whether a scheduled effect actually has to run.
// Effects only marked for checking refresh their computed dependencies first,
// in the order they were read, and run only if one of them changed.
func (e *Effect) shouldRun() bool {
	if e.dirty != dirtyCheck {
		return true
	}

	if e.depsChanged() {
		return true
	}

	e.dirty = dirtyNone
	return false
}

func (e *Effect) depsChanged() bool {
	for _, l := range e.order {
		if c := l.dep.computed; c != nil {
			c.refresh()
		}

		if l.version != l.dep.version {
			return true
		}
	}

	return false
}

package internal

// signalKey is the key of the single slot of a signal.
type signalKey struct{}

// Signal is a standalone reactive cell, a record with a single slot.
type Signal struct {
	rt   *Runtime
	slot *Slot

	value any
	equal func(a, b any) bool
}

func (r *Runtime) NewSignal(initial any) *Signal {
	s := &Signal{
		rt:    r,
		value: initial,
		equal: Equal,
	}
	s.slot = newSlot(s, signalKey{})

	return s
}

// SetEquals replaces the equality used to skip no-op writes.
func (s *Signal) SetEquals(fn func(a, b any) bool) {
	s.equal = fn
}

func (s *Signal) Read() any {
	s.rt.Track(s.slot)

	return s.value
}

// Peek returns the value without tracking.
func (s *Signal) Peek() any {
	return s.value
}

func (s *Signal) Write(v any) {
	if s.equal(s.value, v) {
		return
	}

	s.value = v
	s.rt.Trigger(s.slot)
}

func (s *Signal) Slot() *Slot {
	return s.slot
}

package internal

import (
	"fmt"
	"iter"
)

// lengthKey is the slot read by anything depending on the length of a list.
type lengthKey struct{}

// Array is the reactive handle of a *[]any list.
// The list is held by pointer so that growing it keeps its identity.
type Array struct {
	rt    *Runtime
	raw   *[]any
	slots *slotTable
}

func newArray(r *Runtime, raw *[]any) *Array {
	a := &Array{rt: r, raw: raw}
	a.slots = newSlotTable(a)

	return a
}

func (a *Array) reactive() {}

func (a *Array) Raw() any { return a.raw }

func (a *Array) Runtime() *Runtime { return a.rt }

func (a *Array) track(key any) {
	if a.rt.tracker.ShouldTrack() {
		a.rt.tracker.Track(a.slots.get(key, true))
	}
}

func (a *Array) trigger(key any) {
	if s := a.slots.get(key, false); s != nil {
		a.rt.Trigger(s)
	}
}

// triggerRange notifies the readers of indexes [from, to) and of the length.
func (a *Array) triggerRange(from, to int) {
	for i := from; i < to; i++ {
		a.trigger(i)
	}
	a.trigger(lengthKey{})
}

func (a *Array) Len() int {
	a.track(lengthKey{})

	return len(*a.raw)
}

// At returns the element at i, or nil when out of range.
// Reading past the end still tracks i, so growing the list notifies the reader.
func (a *Array) At(i int) any {
	a.track(i)

	if i < 0 || i >= len(*a.raw) {
		return nil
	}

	return a.rt.Wrap((*a.raw)[i])
}

// Set stores v at i, growing the list with nils if i is past the end.
func (a *Array) Set(i int, v any) {
	if i < 0 {
		panic(fmt.Sprintf("reactive: index out of range [%d]", i))
	}

	v = ToRaw(v)
	n := len(*a.raw)

	if i < n {
		if Equal((*a.raw)[i], v) {
			return
		}

		(*a.raw)[i] = v
		a.trigger(i)
		return
	}

	for len(*a.raw) < i {
		*a.raw = append(*a.raw, nil)
	}
	*a.raw = append(*a.raw, v)
	a.triggerRange(n, i+1)
}

// Push appends the values and returns the new length.
func (a *Array) Push(values ...any) int {
	if len(values) == 0 {
		return len(*a.raw)
	}

	n := len(*a.raw)
	for _, v := range values {
		*a.raw = append(*a.raw, ToRaw(v))
	}
	a.triggerRange(n, len(*a.raw))

	return len(*a.raw)
}

// Pop removes and returns the last element, or nil if the list is empty.
func (a *Array) Pop() any {
	n := len(*a.raw)
	if n == 0 {
		return nil
	}

	v := (*a.raw)[n-1]
	(*a.raw)[n-1] = nil
	*a.raw = (*a.raw)[:n-1]
	a.triggerRange(n-1, n)

	return a.rt.Wrap(v)
}

// Truncate shortens the list to n elements.
func (a *Array) Truncate(n int) {
	n = max(n, 0)

	old := len(*a.raw)
	if n >= old {
		return
	}

	clear((*a.raw)[n:])
	*a.raw = (*a.raw)[:n]
	a.triggerRange(n, old)
}

// Values returns a copy of the elements, reading each of them.
func (a *Array) Values() []any {
	values := make([]any, 0, a.Len())
	for _, v := range a.All() {
		values = append(values, v)
	}

	return values
}

func (a *Array) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.At(i)) {
				return
			}
		}
	}
}

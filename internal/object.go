package internal

import (
	"iter"
	"maps"
	"slices"
)

// iterateKey is the slot read by anything depending on the set of keys.
type iterateKey struct{}

// Object is the reactive handle of a map[string]any record.
type Object struct {
	rt    *Runtime
	raw   map[string]any
	slots *slotTable
}

func newObject(r *Runtime, raw map[string]any) *Object {
	o := &Object{rt: r, raw: raw}
	o.slots = newSlotTable(o)

	return o
}

func (o *Object) reactive() {}

func (o *Object) Raw() any { return o.raw }

func (o *Object) Runtime() *Runtime { return o.rt }

func (o *Object) track(key any) {
	if o.rt.tracker.ShouldTrack() {
		o.rt.tracker.Track(o.slots.get(key, true))
	}
}

func (o *Object) trigger(key any) {
	if s := o.slots.get(key, false); s != nil {
		o.rt.Trigger(s)
	}
}

// Get returns the value of key, wrapping records and lists.
func (o *Object) Get(key string) any {
	o.track(key)

	return o.rt.Wrap(o.raw[key])
}

// Set stores the raw form of v under key, notifying readers unless the value is unchanged.
func (o *Object) Set(key string, v any) {
	v = ToRaw(v)

	old, had := o.raw[key]
	if had && Equal(old, v) {
		return
	}

	o.raw[key] = v
	o.trigger(key)
	if !had {
		o.trigger(iterateKey{})
	}
}

// Delete removes key, notifying readers of the key and of the key set.
func (o *Object) Delete(key string) {
	if _, had := o.raw[key]; !had {
		return
	}

	delete(o.raw, key)
	o.trigger(key)
	o.trigger(iterateKey{})
}

// Has reports whether key is present. Adding or deleting it notifies the reader.
func (o *Object) Has(key string) bool {
	o.track(key)

	_, ok := o.raw[key]
	return ok
}

// Keys returns the sorted keys.
func (o *Object) Keys() []string {
	o.track(iterateKey{})

	return slices.Sorted(maps.Keys(o.raw))
}

func (o *Object) Len() int {
	o.track(iterateKey{})

	return len(o.raw)
}

// All iterates over the entries in key order, reading each of them.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range o.Keys() {
			if !yield(key, o.Get(key)) {
				return
			}
		}
	}
}

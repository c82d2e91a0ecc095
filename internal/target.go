package internal

import (
	"reflect"
	"runtime"
	"sync"
	"weak"
)

// Reactive is implemented by the handles returned by Wrap, and only by them.
type Reactive interface {
	// Raw returns the wrapped record.
	Raw() any

	// Runtime returns the runtime the handle belongs to.
	Runtime() *Runtime

	reactive()
}

// targetTable maps a record's identity to its handle without keeping either alive.
// Entries are evicted once the handle is collected.
type targetTable struct {
	// cleanups run on a separate goroutine
	mu sync.Mutex

	objects map[uintptr]weak.Pointer[Object]
	arrays  map[uintptr]weak.Pointer[Array]
}

func newTargetTable() *targetTable {
	return &targetTable{
		objects: make(map[uintptr]weak.Pointer[Object]),
		arrays:  make(map[uintptr]weak.Pointer[Array]),
	}
}

// Len returns the number of handles still registered.
func (t *targetTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.objects) + len(t.arrays)
}

func lookupOrCreate[T any](t *targetTable, entries map[uintptr]weak.Pointer[T], key uintptr, create func() *T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()

	if wp, ok := entries[key]; ok {
		if h := wp.Value(); h != nil {
			return h
		}
	}

	h := create()
	entries[key] = weak.Make(h)
	runtime.AddCleanup(h, func(key uintptr) { evict(t, entries, key) }, key)

	return h
}

func evict[T any](t *targetTable, entries map[uintptr]weak.Pointer[T], key uintptr) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// the record may have been wrapped again since
	if wp, ok := entries[key]; ok && wp.Value() == nil {
		delete(entries, key)
	}
}

// WrapObject returns the handle of the record, creating it on first use.
func (r *Runtime) WrapObject(raw map[string]any) *Object {
	if raw == nil {
		return nil
	}

	key := reflect.ValueOf(raw).Pointer()
	return lookupOrCreate(r.targets, r.targets.objects, key, func() *Object {
		return newObject(r, raw)
	})
}

// WrapArray returns the handle of the list, creating it on first use.
func (r *Runtime) WrapArray(raw *[]any) *Array {
	if raw == nil {
		return nil
	}

	key := reflect.ValueOf(raw).Pointer()
	return lookupOrCreate(r.targets, r.targets.arrays, key, func() *Array {
		return newArray(r, raw)
	})
}

// Wrap returns the handle of composite values (map[string]any and *[]any)
// and any other value unchanged. Handles are returned as is.
func (r *Runtime) Wrap(v any) any {
	switch x := v.(type) {
	case Reactive:
		return x
	case map[string]any:
		if x != nil {
			return r.WrapObject(x)
		}
	case *[]any:
		if x != nil {
			return r.WrapArray(x)
		}
	}

	return v
}

// Targets returns the number of live handles of the runtime.
func (r *Runtime) Targets() int {
	return r.targets.Len()
}

func IsReactive(v any) bool {
	_, ok := v.(Reactive)
	return ok
}

// ToRaw unwraps one level: handles give back their record, other values are returned unchanged.
func ToRaw(v any) any {
	if h, ok := v.(Reactive); ok {
		return h.Raw()
	}

	return v
}

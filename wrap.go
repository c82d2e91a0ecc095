package reactive

import "github.com/AnatoleLucet/reactive/internal"

type (
	// Object is the reactive handle of a map[string]any record.
	Object = internal.Object

	// Array is the reactive handle of a *[]any list.
	Array = internal.Array

	// Reactive is implemented by *Object and *Array only.
	Reactive = internal.Reactive
)

// Wrap returns the reactive handle of a map[string]any or *[]any,
// creating it on first use. Wrapping a handle returns it unchanged,
// any other value is returned as is.
func Wrap(v any) any {
	return runtime().Wrap(v)
}

// WrapObject is Wrap for records. It returns nil for a nil map.
func WrapObject(raw map[string]any) *Object {
	return runtime().WrapObject(raw)
}

// WrapArray is Wrap for lists. It returns nil for a nil pointer.
func WrapArray(raw *[]any) *Array {
	return runtime().WrapArray(raw)
}

// IsReactive reports whether v is a handle returned by Wrap.
func IsReactive(v any) bool {
	return internal.IsReactive(v)
}

// ToRaw returns the record behind a handle, or v itself.
func ToRaw(v any) any {
	return internal.ToRaw(v)
}

// Field reads key from o as a T, returning the zero value when missing.
// Nested records and lists come back as *Object and *Array.
func Field[T any](o *Object, key string) T {
	return as[T](o.Get(key))
}

// Elem reads index i from a as a T, returning the zero value when out of range.
func Elem[T any](a *Array, i int) T {
	return as[T](a.At(i))
}

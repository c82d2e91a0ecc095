package internal

import (
	"math"
	"reflect"
)

// Equal reports whether a write of b over a would be a no-op.
//
// Comparable values use ==, except NaN which equals itself, also inside arrays,
// structs and interfaces. Maps, slices, funcs and pointers compare by identity
// (a slice also by length), so writing a mutated copy is a change but writing
// the same record back is not. Anything else falls back to reflect.DeepEqual.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Func, reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if va.Comparable() && vb.Comparable() {
		return equalComparable(va, vb)
	}

	return reflect.DeepEqual(a, b)
}

// equalComparable is == walking arrays, structs and interfaces so that NaN
// fields equal themselves. va and vb have the same type.
func equalComparable(va, vb reflect.Value) bool {
	switch va.Kind() {
	case reflect.Float32, reflect.Float64:
		return equalFloat(va.Float(), vb.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := va.Complex(), vb.Complex()
		return equalFloat(real(ca), real(cb)) && equalFloat(imag(ca), imag(cb))
	case reflect.Array:
		for i := range va.Len() {
			if !equalComparable(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := range va.NumField() {
			if !equalComparable(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		ea, eb := va.Elem(), vb.Elem()
		if ea.Type() != eb.Type() {
			return false
		}
		return equalComparable(ea, eb)
	}

	return va.Equal(vb)
}

func equalFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

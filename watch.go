package reactive

import "github.com/AnatoleLucet/reactive/internal"

// Watch calls cb with the new and previous result of read each time it changes.
// read is tracked like an effect, cb is not. cb is never called for the first value.
func Watch[T any](read func() T, cb func(newV, oldV T)) Disposer {
	var (
		old   T
		first = true
	)

	return NewEffect(func() {
		v := read()
		if first {
			first = false
			old = v
			return
		}

		if internal.Equal(v, old) {
			return
		}

		prev := old
		old = v
		runtime().Untrack(func() { cb(v, prev) })
	})
}

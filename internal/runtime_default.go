//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// one runtime per goroutine, reactive state is never shared between them
var runtimes sync.Map

func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// DropRuntime forgets the current goroutine's runtime.
// The next call to GetRuntime on this goroutine starts from a fresh one.
func DropRuntime() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}

//go:build wasm

package internal

import "sync"

var mu sync.Mutex
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	mu.Lock()
	defer mu.Unlock()

	if globalRuntime == nil {
		globalRuntime = NewRuntime()
	}

	return globalRuntime
}

// DropRuntime forgets the global runtime.
func DropRuntime() {
	mu.Lock()
	defer mu.Unlock()

	globalRuntime = nil
}

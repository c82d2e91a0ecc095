// Package reactive is a fine-grained reactive state engine.
//
// Records (map[string]any) and lists (*[]any) are wrapped into handles whose
// accessors record which effect reads which key. Writing a key schedules the
// effects that read it; they run again, once each, on the next [Flush], or when
// the outermost [Batch] returns.
//
//	todo := reactive.WrapObject(map[string]any{"title": "write docs", "done": false})
//
//	reactive.NewEffect(func() {
//		fmt.Println(todo.Get("title"), todo.Get("done"))
//	})
//
//	todo.Set("done", true)
//	reactive.Flush() // prints "write docs true"
//
// Each goroutine has its own runtime. Handles, signals, effects and computeds
// belong to the runtime of the goroutine that created them and must only be
// used from it.
package reactive

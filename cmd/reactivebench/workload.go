package main

import (
	"fmt"
	"slices"

	"github.com/AnatoleLucet/reactive"
)

// sink keeps the results of benchmark effects observable.
var sink int

// workload builds a reactive graph of the given size and returns one round of updates.
type workload struct {
	name  string
	help  string
	build func(size int) func(round int)
}

var workloads = []workload{
	{
		name: "fanout",
		help: "one record key read by size effects",
		build: func(size int) func(int) {
			state := reactive.WrapObject(map[string]any{"n": 0})
			for range size {
				reactive.NewEffect(func() { state.Get("n") })
			}

			return func(round int) {
				state.Set("n", round+1)
				reactive.Flush()
			}
		},
	},
	{
		name: "chain",
		help: "size computeds each derived from the previous one, read by one effect",
		build: func(size int) func(int) {
			head := reactive.NewSignal(0)

			prev := func() int { return head.Read() }
			for range size {
				read := prev
				prev = reactive.NewComputed(func() int { return read() + 1 }).Read
			}
			reactive.NewEffect(func() { sink = prev() })

			return func(round int) {
				head.Write(round + 1)
				reactive.Flush()
			}
		},
	},
	{
		name: "diamond",
		help: "size computeds over one signal, joined by a single effect",
		build: func(size int) func(int) {
			head := reactive.NewSignal(0)

			branches := make([]*reactive.Computed[int], size)
			for i := range branches {
				branches[i] = reactive.NewComputed(func() int { return head.Read() * i })
			}
			reactive.NewEffect(func() {
				sum := 0
				for _, b := range branches {
					sum += b.Read()
				}
				sink = sum
			})

			return func(round int) {
				head.Write(round + 1)
				reactive.Flush()
			}
		},
	},
	{
		name: "batch",
		help: "size list items rewritten in one batch, one effect per item plus a length watcher",
		build: func(size int) func(int) {
			items := reactive.WrapArray(&[]any{})
			for i := range size {
				items.Push(i)
				reactive.NewEffect(func() { items.At(i) })
			}
			reactive.Watch(items.Len, func(int, int) {})

			return func(round int) {
				reactive.NewBatch(func() {
					for i := range size {
						items.Set(i, round*size+i)
					}
				})
			}
		},
	},
}

func findWorkload(name string) (workload, error) {
	i := slices.IndexFunc(workloads, func(w workload) bool { return w.name == name })
	if i < 0 {
		return workload{}, fmt.Errorf("unknown workload %q", name)
	}

	return workloads[i], nil
}

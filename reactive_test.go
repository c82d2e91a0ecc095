package reactive

import (
	"fmt"
)

func ExampleNewSignal() {
	count := NewSignal(0)
	fmt.Println(count.Read())

	count.Write(10)
	fmt.Println(count.Read())

	// Output:
	// 0
	// 10
}

func ExampleNewComputed() {
	count := NewSignal(1)
	double := NewComputed(func() int {
		fmt.Println("doubling")
		return count.Read() * 2
	})

	fmt.Println(double.Read())
	fmt.Println(double.Read())

	count.Write(10)
	fmt.Println(double.Read())

	// Output:
	// doubling
	// 2
	// 2
	// doubling
	// 20
}

func ExampleNewEffect() {
	todo := WrapObject(map[string]any{"title": "write docs", "done": false})

	NewEffect(func() {
		fmt.Println(todo.Get("title"), todo.Get("done"))
	})

	todo.Set("done", true)
	fmt.Println("written")
	Flush()

	// Output:
	// write docs false
	// written
	// write docs true
}

func ExampleBatch() {
	cart := WrapArray(&[]any{})

	NewEffect(func() {
		fmt.Println("items:", cart.Len())
	})

	total := Batch(func() int {
		cart.Push("apple")
		cart.Push("pear")
		return cart.Push("plum")
	})
	fmt.Println("total:", total)

	// Output:
	// items: 0
	// items: 3
	// total: 3
}

func ExampleWatch() {
	status := NewSignal("idle")

	Watch(status.Read, func(next, prev string) {
		fmt.Println(prev, "->", next)
	})

	status.Write("loading")
	Flush()
	status.Write("done")
	Flush()

	// Output:
	// idle -> loading
	// loading -> done
}

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnatoleLucet/reactive"
	"github.com/AnatoleLucet/reactive/loop"
)

func demoCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a todo list on the event loop",
		Long: `Run a small todo list on the event loop: every task is a user action,
effects print the list once the action is done.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			return runDemo(ctx, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "Give up after this long")

	return cmd
}

func runDemo(ctx context.Context, out io.Writer) error {
	l := loop.New(loop.WithRuntimeOptions(runtimeOptions...))

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	var todos *reactive.Array

	steps := []func(){
		func() {
			todos = reactive.WrapArray(&[]any{})

			remaining := reactive.NewComputed(func() int {
				n := 0
				for _, v := range todos.All() {
					if !reactive.Field[bool](v.(*reactive.Object), "done") {
						n++
					}
				}
				return n
			})

			reactive.NewEffect(func() {
				fmt.Fprintf(out, "%d todo(s), %d remaining\n", todos.Len(), remaining.Read())
			})

			reactive.Watch(remaining.Read, func(n, _ int) {
				if n == 0 {
					fmt.Fprintln(out, "all done!")
				}
			})
		},
		func() {
			todos.Push(
				map[string]any{"title": "write the engine", "done": false},
				map[string]any{"title": "write the docs", "done": false},
			)
		},
		func() {
			reactive.Elem[*reactive.Object](todos, 0).Set("done", true)
		},
		func() {
			// renaming doesn't change the counts, nothing is printed
			reactive.Elem[*reactive.Object](todos, 1).Set("title", "write better docs")
		},
		func() {
			reactive.Elem[*reactive.Object](todos, 1).Set("done", true)
		},
	}

	for _, step := range steps {
		if err := l.Do(ctx, step); err != nil {
			return err
		}
	}

	if err := l.Shutdown(ctx); err != nil {
		return err
	}

	return <-errc
}

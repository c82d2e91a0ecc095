package loop

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnatoleLucet/reactive"
)

func start(t *testing.T, opts ...Option) *Loop {
	t.Helper()

	l := New(opts...)
	go l.Run(context.Background())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		l.Shutdown(ctx)
	})

	return l
}

func TestLoop(t *testing.T) {
	t.Run("flushes after each task", func(t *testing.T) {
		ctx := context.Background()
		l := start(t)
		log := []string{}

		var count *reactive.Signal[int]
		require.NoError(t, l.Do(ctx, func() {
			count = reactive.NewSignal(0)
			reactive.NewEffect(func() {
				log = append(log, fmt.Sprintf("effect %d", count.Read()))
			})
		}))

		require.NoError(t, l.Do(ctx, func() {
			count.Write(1)
			count.Write(2)
			log = append(log, "task")
		}))

		assert.Equal(t, []string{"effect 0", "task", "effect 2"}, log)
	})

	t.Run("microtasks run before the next task", func(t *testing.T) {
		ctx := context.Background()
		l := start(t)
		log := []string{}

		require.NoError(t, l.Submit(func() {
			l.QueueMicrotask(func() { log = append(log, "microtask") })
			log = append(log, "first")
		}))
		require.NoError(t, l.Do(ctx, func() {
			log = append(log, "second")
		}))

		assert.Equal(t, []string{"first", "microtask", "second"}, log)
	})

	t.Run("survives panicking tasks", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := context.Background()
		l := start(t, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		require.NoError(t, l.Do(ctx, func() { panic("oops") }))

		ran := false
		require.NoError(t, l.Do(ctx, func() { ran = true }))

		assert.True(t, ran)
		assert.Contains(t, buf.String(), "task panicked")
	})

	t.Run("configures the runtime", func(t *testing.T) {
		ctx := context.Background()
		errs := []error{}
		l := start(t, WithRuntimeOptions(reactive.WithErrorHandler(func(err error) {
			errs = append(errs, err)
		})))

		require.NoError(t, l.Do(ctx, func() {
			reactive.NewEffect(func() { panic("oops") })
		}))

		require.NoError(t, l.Do(ctx, func() {}))
		assert.Len(t, errs, 1)
	})

	t.Run("shutdown", func(t *testing.T) {
		ctx := context.Background()
		l := New()

		errc := make(chan error, 1)
		go func() { errc <- l.Run(ctx) }()

		ran := false
		require.NoError(t, l.Do(ctx, func() { ran = true }))
		require.NoError(t, l.Shutdown(ctx))

		assert.True(t, ran)
		assert.NoError(t, <-errc)
		assert.ErrorIs(t, l.Submit(func() {}), ErrLoopTerminated)
		assert.ErrorIs(t, l.Run(ctx), ErrLoopTerminated)
		assert.ErrorIs(t, l.Shutdown(ctx), ErrLoopTerminated)
	})

	t.Run("shutdown before run", func(t *testing.T) {
		l := New()

		require.NoError(t, l.Shutdown(context.Background()))
		assert.ErrorIs(t, l.Run(context.Background()), ErrLoopTerminated)

		select {
		case <-l.Done():
		default:
			t.Fatal("expected the loop to be done")
		}
	})

	t.Run("run twice", func(t *testing.T) {
		l := start(t)
		require.NoError(t, l.Do(context.Background(), func() {}))

		assert.ErrorIs(t, l.Run(context.Background()), ErrLoopRunning)
	})

	t.Run("context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		l := New()

		errc := make(chan error, 1)
		go func() { errc <- l.Run(ctx) }()

		cancel()
		assert.ErrorIs(t, <-errc, context.Canceled)
		<-l.Done()
	})

	t.Run("do after cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		l := New()

		errc := make(chan error, 1)
		go func() { errc <- l.Run(ctx) }()

		require.NoError(t, l.Do(context.Background(), func() {}))
		cancel()
		require.ErrorIs(t, <-errc, context.Canceled)

		deadline, stop := context.WithTimeout(context.Background(), time.Second)
		defer stop()

		ran := false
		err := l.Do(deadline, func() { ran = true })

		assert.ErrorIs(t, err, ErrLoopTerminated)
		assert.NoError(t, deadline.Err())
		assert.False(t, ran)
	})
}

// Package loop runs a reactive runtime on a dedicated goroutine.
//
// Tasks submitted from any goroutine run one at a time on the loop goroutine.
// Writes made by a task are flushed right after it, as a microtask, so effects
// never observe a task half done.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/AnatoleLucet/reactive"
)

var (
	// ErrLoopRunning is returned when Run is called on a loop that is already running.
	ErrLoopRunning = errors.New("loop: already running")

	// ErrLoopTerminated is returned when using a loop that was shut down.
	ErrLoopTerminated = errors.New("loop: terminated")
)

// microtaskBudget bounds the microtasks drained in one go, effects re-triggering
// each other forever must not starve submitted tasks.
const microtaskBudget = 1024

type state int32

const (
	stateIdle state = iota
	stateRunning
	stateTerminating
	stateTerminated
)

type Option func(*Loop)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithRuntimeOptions configures the runtime of the loop goroutine.
func WithRuntimeOptions(opts ...reactive.Option) Option {
	return func(l *Loop) {
		l.runtimeOpts = append(l.runtimeOpts, opts...)
	}
}

type Loop struct {
	state atomic.Int32

	mu      sync.Mutex
	ingress []func()

	// only touched by the loop goroutine
	microtasks []func()

	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	logger      *slog.Logger
	runtimeOpts []reactive.Option
}

func New(opts ...Option) *Loop {
	l := &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Run processes tasks until the loop is shut down or ctx is done.
// It blocks, call it from the goroutine that should own the reactive state.
func (l *Loop) Run(ctx context.Context) error {
	if !l.state.CompareAndSwap(int32(stateIdle), int32(stateRunning)) {
		if state(l.state.Load()) == stateTerminated {
			return ErrLoopTerminated
		}
		return ErrLoopRunning
	}
	defer close(l.done)

	opts := append([]reactive.Option{reactive.WithMicrotask(l.QueueMicrotask)}, l.runtimeOpts...)
	reactive.Configure(opts...)
	defer reactive.Release()

	for {
		l.drainMicrotasks()

		tasks := l.take()
		for _, task := range tasks {
			l.execute(task)
			l.drainMicrotasks()
		}

		if len(tasks) > 0 || len(l.microtasks) > 0 {
			continue
		}

		if state(l.state.Load()) == stateTerminating {
			// a task may have been accepted since the last take
			l.mu.Lock()
			if len(l.ingress) > 0 {
				l.mu.Unlock()
				continue
			}
			l.state.Store(int32(stateTerminated))
			l.mu.Unlock()
			return nil
		}

		select {
		case <-l.wake:
		case <-ctx.Done():
			if dropped := l.terminate(); len(dropped) > 0 {
				l.logger.Warn("loop canceled, dropping tasks", slog.Int("dropped", len(dropped)))
			}
			return ctx.Err()
		}
	}
}

// Submit queues fn to run on the loop goroutine. It is safe to call from any goroutine.
func (l *Loop) Submit(fn func()) error {
	l.mu.Lock()
	switch state(l.state.Load()) {
	case stateTerminating, stateTerminated:
		l.mu.Unlock()
		return ErrLoopTerminated
	}
	l.ingress = append(l.ingress, fn)
	l.mu.Unlock()

	l.notify()
	return nil
}

// Do runs fn on the loop goroutine and waits for it, and for the flush following it.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})

	err := l.Submit(func() {
		defer close(finished)
		fn()
	})
	if err != nil {
		return err
	}

	// the flush is a microtask of the task, waiting on an empty task covers it
	select {
	case <-finished:
	case <-l.done:
		select {
		case <-finished:
		default:
			// the loop stopped before running fn
			return ErrLoopTerminated
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	synced := make(chan struct{})
	if err := l.Submit(func() { close(synced) }); err != nil {
		// shutting down, the loop still drains its microtasks before stopping
		synced = nil
	}

	select {
	case <-synced:
		return nil
	case <-l.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// QueueMicrotask runs fn after the current task, before the next one.
// It must be called from the loop goroutine.
func (l *Loop) QueueMicrotask(fn func()) {
	l.microtasks = append(l.microtasks, fn)
}

// Shutdown stops accepting tasks, lets the queued ones finish and waits for Run to return.
// Only the first call shuts the loop down, later ones return ErrLoopTerminated.
func (l *Loop) Shutdown(ctx context.Context) error {
	err := ErrLoopTerminated

	l.stopOnce.Do(func() {
		l.mu.Lock()
		if l.state.CompareAndSwap(int32(stateIdle), int32(stateTerminated)) {
			l.mu.Unlock()
			close(l.done)
			err = nil
			return
		}
		if !l.state.CompareAndSwap(int32(stateRunning), int32(stateTerminating)) {
			l.mu.Unlock()
			return
		}
		l.mu.Unlock()

		l.notify()
		select {
		case <-l.done:
			err = nil
		case <-ctx.Done():
			err = ctx.Err()
		}
	})

	return err
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) take() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	tasks := l.ingress
	l.ingress = nil
	return tasks
}

// terminate marks the loop terminated and returns the tasks it will never run.
// Holding mu keeps Submit from accepting a task in between.
func (l *Loop) terminate() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state.Store(int32(stateTerminated))
	leftover := l.ingress
	l.ingress = nil
	return leftover
}

func (l *Loop) drainMicrotasks() {
	for executed := 0; len(l.microtasks) > 0; executed++ {
		if executed >= microtaskBudget {
			l.logger.Warn("microtask budget exceeded, yielding", slog.Int("queued", len(l.microtasks)))
			return
		}

		task := l.microtasks[0]
		l.microtasks[0] = nil
		l.microtasks = l.microtasks[1:]

		l.execute(task)
	}
}

// execute runs a task, a panicking task doesn't stop the loop.
func (l *Loop) execute(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked", slog.Any("panic", r))
		}
	}()

	task()
}

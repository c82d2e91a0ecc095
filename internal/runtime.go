package internal

import (
	"log/slog"
	"runtime/debug"
)

// Runtime owns the whole reactive graph of one logical thread.
// It is not safe for concurrent use: a runtime and every handle, effect and
// computed created from it must be used from a single goroutine at a time.
type Runtime struct {
	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler
	targets   *targetTable

	lastID uint64

	logger      *slog.Logger
	onError     func(error)
	observers   []Observer
	settleLimit int
	debug       bool
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		tracker:     NewTracker(),
		batcher:     NewBatcher(),
		scheduler:   NewScheduler(),
		targets:     newTargetTable(),
		logger:      slog.Default(),
		settleLimit: DefaultSettleLimit,
	}

	r.Configure(opts...)
	return r
}

func (r *Runtime) Configure(opts ...Option) {
	for _, opt := range opts {
		opt(r)
	}
}

func (r *Runtime) Logger() *slog.Logger {
	return r.logger
}

func (r *Runtime) nextID() uint64 {
	r.lastID++
	return r.lastID
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) CurrentEffect() *Effect {
	return r.tracker.CurrentEffect()
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// Track subscribes the current effect, if any, to the slot.
func (r *Runtime) Track(slot *Slot) {
	r.tracker.Track(slot)
}

// Trigger records a change of the slot and notifies its subscribers.
func (r *Runtime) Trigger(slot *Slot) {
	slot.version++
	r.notify(slot, dirtyYes)
}

// notify walks a snapshot of the subscribers, since an effect may unsubscribe
// (or subscribe others) while being notified.
func (r *Runtime) notify(slot *Slot, level dirtyLevel) {
	if slot.subCount == 0 {
		return
	}

	for _, e := range slot.Subs() {
		e.notify(level)
	}
}

type runResult int

const (
	runSkipped runResult = iota
	runDone
	runFailed
)

// execute runs the effect if it still has to, recovering from its panics.
func (r *Runtime) execute(e *Effect) (res runResult) {
	if e.disposed {
		return runSkipped
	}

	// re-triggered from within its own run, keep it for the next flush
	if e.running {
		r.scheduleEffect(e)
		return runSkipped
	}

	defer func() {
		if v := recover(); v != nil {
			r.fail(e, v)
			res = runFailed
		}
	}()

	if !e.shouldRun() {
		return runSkipped
	}

	e.run()
	return runDone
}

// fail reports an effect panic to the closest owner listening for errors,
// or to the runtime's error handler.
func (r *Runtime) fail(e *Effect, v any) {
	err := &EffectError{ID: e.id, Value: v, Stack: debug.Stack()}

	r.observe(func(o Observer) { o.EffectFailed(err) })

	if e.Owner.catch(v) {
		return
	}

	if r.onError != nil {
		r.onError(err)
		return
	}

	r.logger.Error("effect panicked",
		slog.Uint64("effect", err.ID),
		slog.Any("panic", err.Value),
		slog.String("stack", string(err.Stack)),
	)
}

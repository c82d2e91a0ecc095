package internal

import (
	"log/slog"
	"time"
)

type Scheduler struct {
	// incremented each time the scheduler is flushed
	clock uint64

	pending *PendingQueue
	settled *SettledQueue

	// set when a flush has been requested and not started yet
	scheduled bool

	// depth of nested flushes (a batch closing inside an effect flushes again)
	flushing int

	// asks the host to call flush after the current task, nil if the host flushes by itself
	microtask func(flush func())
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: NewPendingQueue(),
		settled: NewSettledQueue(),
	}
}

func (s *Scheduler) Time() uint64 {
	return s.clock
}

// scheduleEffect queues the effect for the next flush and requests one if needed.
func (r *Runtime) scheduleEffect(e *Effect) {
	if e.disposed {
		return
	}

	s := r.scheduler
	if !s.pending.Enqueue(e) || s.scheduled {
		return
	}

	s.scheduled = true
	if s.microtask != nil {
		s.microtask(r.Flush)
	}
}

// NewBatch runs fn with flushes held, then flushes once the outermost batch closes.
func (r *Runtime) NewBatch(fn func()) {
	r.batcher.Hold(fn, r.Flush)
}

// Flush runs the effects queued so far, in the order they were first queued.
// The queue is swapped out before anything runs: effects scheduled meanwhile
// wait for the next flush. Nothing happens while a batch is open.
func (r *Runtime) Flush() {
	if r.batcher.IsBatching() {
		return
	}

	s := r.scheduler
	effects := s.pending.Drain()
	s.scheduled = false

	if len(effects) > 0 {
		r.flush(effects)
	}

	if s.flushing == 0 && s.pending.Len() == 0 && s.settled.Len() > 0 {
		s.settled.Run()
	}
}

func (r *Runtime) flush(effects []*Effect) {
	s := r.scheduler
	stats := FlushStats{Cycle: s.clock, Queued: len(effects)}
	start := time.Now()

	r.observe(func(o Observer) { o.FlushStarted(len(effects)) })

	s.flushing++
	for _, e := range effects {
		switch r.execute(e) {
		case runDone:
			stats.Ran++
		case runFailed:
			stats.Failed++
		default:
			stats.Skipped++
		}
	}
	s.flushing--
	s.clock++

	stats.Duration = time.Since(start)
	r.observe(func(o Observer) { o.FlushFinished(stats) })

	if r.debug {
		r.logger.Debug("flush",
			slog.Uint64("cycle", stats.Cycle),
			slog.Int("queued", stats.Queued),
			slog.Int("ran", stats.Ran),
			slog.Int("skipped", stats.Skipped),
			slog.Int("failed", stats.Failed),
			slog.Duration("duration", stats.Duration),
		)
	}
}

// Settle flushes until no effect is left in the queue.
func (r *Runtime) Settle() error {
	if r.batcher.IsBatching() {
		return ErrBatchOpen
	}

	for round := 0; r.scheduler.pending.Len() > 0; round++ {
		if round >= r.settleLimit {
			return ErrSettleLimit
		}

		r.Flush()
	}

	if r.scheduler.settled.Len() > 0 {
		r.Flush()
	}

	return nil
}

// Pending returns the number of effects waiting for the next flush.
func (r *Runtime) Pending() int {
	return r.scheduler.pending.Len()
}

// FlushScheduled reports whether a flush has been requested since the last one.
func (r *Runtime) FlushScheduled() bool {
	return r.scheduler.scheduled
}

// OnSettled runs fn once, after the next flush that leaves no effect queued.
func (r *Runtime) OnSettled(fn func()) {
	r.scheduler.settled.Enqueue(fn)
}

// IsBatching reports whether a batch is currently open.
func (r *Runtime) IsBatching() bool {
	return r.batcher.IsBatching()
}

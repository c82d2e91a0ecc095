package internal

import "time"

// FlushStats summarizes one flush.
type FlushStats struct {
	// Cycle is the number of flushes completed before this one
	Cycle uint64

	Queued  int
	Ran     int
	Skipped int
	Failed  int

	Duration time.Duration
}

// Observer is notified of the runtime's activity, for metrics and tracing.
// Callbacks run synchronously on the runtime's goroutine.
type Observer interface {
	FlushStarted(queued int)
	FlushFinished(stats FlushStats)
	EffectFailed(err *EffectError)
	ComputedRecomputed()
}

func (r *Runtime) observe(fn func(Observer)) {
	for _, o := range r.observers {
		fn(o)
	}
}

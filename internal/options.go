package internal

import "log/slog"

const DefaultSettleLimit = 100

type Option func(*Runtime)

// WithLogger sets the logger used for failures and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithErrorHandler replaces the default handler of effect failures (which logs them).
// Owners with an error listener still take precedence.
func WithErrorHandler(fn func(error)) Option {
	return func(r *Runtime) {
		r.onError = fn
	}
}

// WithMicrotask sets how the runtime asks its host to flush after the current task.
// Without it, the host calls Flush itself.
func WithMicrotask(fn func(flush func())) Option {
	return func(r *Runtime) {
		r.scheduler.microtask = fn
	}
}

// WithObserver adds an observer of flushes, failures and recomputations.
func WithObserver(o Observer) Option {
	return func(r *Runtime) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// WithSettleLimit bounds the number of flush rounds Settle runs before giving up.
func WithSettleLimit(n int) Option {
	return func(r *Runtime) {
		if n > 0 {
			r.settleLimit = n
		}
	}
}

// WithDebug logs every flush at debug level.
func WithDebug(debug bool) Option {
	return func(r *Runtime) {
		r.debug = debug
	}
}

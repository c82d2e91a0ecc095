package reactive

import (
	"log/slog"

	"github.com/AnatoleLucet/reactive/internal"
)

const DefaultSettleLimit = internal.DefaultSettleLimit

type (
	// Option configures a runtime, see Configure.
	Option = internal.Option

	// Observer is notified of flushes, effect failures and recomputations.
	Observer = internal.Observer

	FlushStats = internal.FlushStats
)

// WithLogger sets the logger used for failures and debug output.
func WithLogger(logger *slog.Logger) Option {
	return internal.WithLogger(logger)
}

// WithErrorHandler handles the failures of effects whose owners don't listen for errors.
// By default they are logged.
func WithErrorHandler(fn func(error)) Option {
	return internal.WithErrorHandler(fn)
}

// WithMicrotask lets the runtime request a flush from its host.
// fn is called once per batch of writes, with the function to call after the current task.
func WithMicrotask(fn func(flush func())) Option {
	return internal.WithMicrotask(fn)
}

func WithObserver(o Observer) Option {
	return internal.WithObserver(o)
}

// WithSettleLimit bounds the number of flush rounds of Settle.
func WithSettleLimit(n int) Option {
	return internal.WithSettleLimit(n)
}

// WithDebug logs every flush at debug level.
func WithDebug(debug bool) Option {
	return internal.WithDebug(debug)
}

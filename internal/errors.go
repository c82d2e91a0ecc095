package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrSettleLimit is returned by Settle when effects keep scheduling each other
	// past the configured number of flush rounds.
	ErrSettleLimit = errors.New("reactive: settle limit exceeded, effects keep re-triggering each other")

	// ErrBatchOpen is returned by Settle when called inside a batch, where nothing can be flushed.
	ErrBatchOpen = errors.New("reactive: cannot settle while a batch is open")

	// ErrCycle is raised when a computed value reads itself while computing.
	ErrCycle = errors.New("reactive: computed read itself while computing")
)

// EffectError reports a panic raised by an effect.
type EffectError struct {
	// ID of the effect that panicked
	ID uint64

	// Value is what was passed to panic
	Value any

	// Stack is the goroutine stack at the time of the panic
	Stack []byte
}

func (e *EffectError) Error() string {
	return fmt.Sprintf("reactive: effect %d panicked: %v", e.ID, e.Value)
}

// Unwrap gives access to the panic value when it is an error.
func (e *EffectError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

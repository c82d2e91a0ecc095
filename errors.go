package reactive

import "github.com/AnatoleLucet/reactive/internal"

// EffectError is what the error handler receives when an effect panics.
type EffectError = internal.EffectError

var (
	ErrSettleLimit = internal.ErrSettleLimit
	ErrBatchOpen   = internal.ErrBatchOpen
	ErrCycle       = internal.ErrCycle
)

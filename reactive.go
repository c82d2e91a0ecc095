package reactive

import "github.com/AnatoleLucet/reactive/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

func runtime() *internal.Runtime {
	return internal.GetRuntime()
}

// Disposer permanently stops an effect or a watcher. Calling it again is a no-op.
type Disposer func()

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates your tipical read/write signal.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		runtime().NewSignal(initial),
	}
}

// WithEquals replaces the equality used to skip writes of an unchanged value.
func (s *Signal[T]) WithEquals(equal func(a, b T) bool) *Signal[T] {
	s.signal.SetEquals(func(a, b any) bool { return equal(as[T](a), as[T](b)) })
	return s
}

// Read the current value of the signal, tracking the dependency if within a reactive context.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

// Write a new value to the signal, scheduling its dependents for the next flush.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Update writes fn applied to the current value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Write(fn(s.Peek()))
}

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a lazily evaluated signal that derives its value from other signals (its a memo).
// The getter runs on the first read, and again on the next read after one of its dependencies changed.
func NewComputed[T any](getter func() T) *Computed[T] {
	return &Computed[T]{
		runtime().NewComputed(func() any {
			return getter()
		}),
	}
}

// WithEquals replaces the equality used to decide whether a recomputed value is new.
func (c *Computed[T]) WithEquals(equal func(a, b T) bool) *Computed[T] {
	c.computed.SetEquals(func(a, b any) bool { return equal(as[T](a), as[T](b)) })
	return c
}

// Read the current value of the computed signal, tracking the dependency if within a reactive context.
// A panic raised by the getter is raised again here.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Read())
}

// Peek reads the current value without tracking.
func (c *Computed[T]) Peek() T {
	return as[T](c.computed.Peek())
}

// Dispose stops caching. Later reads call the getter directly.
func (c *Computed[T]) Dispose() {
	c.computed.Dispose()
}

// NewEffect creates a reactive effect that runs the given function right away,
// and again on the next flush after any of the values it read changed.
func NewEffect(fn func()) Disposer {
	return runtime().NewEffect(fn).Dispose
}

// NewBatch holds flushing while fn runs, then flushes once if this is the outermost batch.
func NewBatch(fn func()) {
	runtime().NewBatch(fn)
}

// Batch is NewBatch for functions returning a value.
func Batch[T any](fn func() T) T {
	var result T
	runtime().NewBatch(func() { result = fn() })
	return result
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	runtime().Untrack(func() { result = fn() })
	return result
}

// OnCleanup registers a function to be called when the current owner is disposed,
// or before the current effect runs again.
func OnCleanup(fn func()) {
	runtime().OnCleanup(fn)
}

// Flush runs the effects scheduled since the last flush.
// Effects scheduled while flushing wait for the next one.
func Flush() {
	runtime().Flush()
}

// Settle flushes until no effect is scheduled anymore.
func Settle() error {
	return runtime().Settle()
}

// Pending returns the number of effects waiting for the next flush.
func Pending() int {
	return runtime().Pending()
}

// OnSettled registers a function to be called once, after the next flush leaving no effect scheduled.
func OnSettled(fn func()) {
	runtime().OnSettled(fn)
}

// Configure applies options to the current goroutine's runtime.
func Configure(opts ...Option) {
	runtime().Configure(opts...)
}

// Release drops the current goroutine's runtime. Handles, effects and computeds
// created before must not be used afterwards.
func Release() {
	internal.DropRuntime()
}

type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a new reactive context with an initial value.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{
		runtime().NewContext(initial),
	}
}

// Value retrieves the current value of the context,
// inheriting from parent owners if not set in the current owner.
func (c *Context[T]) Value() T {
	return as[T](c.ctx.Value())
}

// Set a new value for the context in the current owner.
func (c *Context[T]) Set(value T) {
	c.ctx.Set(value)
}

type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new reactive owner.
// An owner manages the lifecycle of reactive nodes created within its context.
func NewOwner() *Owner {
	return &Owner{
		runtime().NewOwner(),
	}
}

// Run a function within the context of this owner.
// Each reactive node created within the function will be a child of this owner,
// and will be disposed when owner.Dispose() is called on this owner.
func (o *Owner) Run(fn func() error) error {
	var err error
	o.owner.Run(func() { err = fn() })
	return err
}

// Dispose this owner and all its children.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when the owner is disposed (each time Dispose is called).
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// Add a function to be called when a panic occurs within this owner.
// If no error listener is registered, the panic will propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }

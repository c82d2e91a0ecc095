// Package tracing reports reactive flushes as OpenTelemetry spans.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AnatoleLucet/reactive"
)

const defaultTracerName = "github.com/AnatoleLucet/reactive"

type Config struct {
	// TracerName is the name of the tracer.
	TracerName string

	// TracerProvider provides the tracer (default: the global provider).
	TracerProvider trace.TracerProvider

	// Context is the parent of the top level flush spans.
	Context context.Context
}

type Option func(*Config)

func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithContext sets the context flush spans are started from.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		c.Context = ctx
	}
}

// frame is an open flush span. Flushes nest when a batch closes inside an effect.
type frame struct {
	ctx        context.Context
	span       trace.Span
	recomputes int
}

// Observer is a reactive.Observer starting a span per flush.
// Like the runtime it observes, it must only be used from one goroutine.
type Observer struct {
	tracer trace.Tracer
	ctx    context.Context
	stack  []*frame
}

func New(opts ...Option) *Observer {
	config := Config{
		TracerName: defaultTracerName,
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Observer{
		tracer: tp.Tracer(config.TracerName),
		ctx:    config.Context,
	}
}

// Option returns the runtime option installing the observer.
func (o *Observer) Option() reactive.Option {
	return reactive.WithObserver(o)
}

func (o *Observer) current() *frame {
	if len(o.stack) == 0 {
		return nil
	}

	return o.stack[len(o.stack)-1]
}

func (o *Observer) FlushStarted(queued int) {
	parent := o.ctx
	if f := o.current(); f != nil {
		parent = f.ctx
	}

	ctx, span := o.tracer.Start(parent, "reactive.flush",
		trace.WithAttributes(attribute.Int("reactive.queued", queued)),
	)
	o.stack = append(o.stack, &frame{ctx: ctx, span: span})
}

func (o *Observer) FlushFinished(stats reactive.FlushStats) {
	f := o.current()
	if f == nil {
		return
	}
	o.stack = o.stack[:len(o.stack)-1]

	f.span.SetAttributes(
		attribute.Int64("reactive.cycle", int64(stats.Cycle)),
		attribute.Int("reactive.ran", stats.Ran),
		attribute.Int("reactive.skipped", stats.Skipped),
		attribute.Int("reactive.failed", stats.Failed),
		attribute.Int("reactive.recomputes", f.recomputes),
	)
	if stats.Failed > 0 {
		f.span.SetStatus(codes.Error, "effects failed")
	}
	f.span.End()
}

// EffectFailed records the failure on the running flush span.
// Effects failing on their first run, outside of any flush, get a span of their own.
func (o *Observer) EffectFailed(err *reactive.EffectError) {
	attrs := trace.WithAttributes(attribute.Int64("reactive.effect", int64(err.ID)))

	if f := o.current(); f != nil {
		f.span.RecordError(err, attrs)
		return
	}

	_, span := o.tracer.Start(o.ctx, "reactive.effect", attrs)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}

func (o *Observer) ComputedRecomputed() {
	if f := o.current(); f != nil {
		f.recomputes++
	}
}

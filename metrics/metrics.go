// Package metrics exports the activity of reactive runtimes to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnatoleLucet/reactive"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "reactive").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush duration buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reactive",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector is a reactive.Observer recording flushes, effect runs and recomputations.
// A single collector can observe any number of runtimes.
type Collector struct {
	flushesTotal    prometheus.Counter
	effectsTotal    *prometheus.CounterVec
	failuresTotal   prometheus.Counter
	recomputesTotal prometheus.Counter
	flushDuration   prometheus.Histogram
	flushSize       prometheus.Histogram
	flushesInFlight prometheus.Gauge
}

// New registers the metrics and returns their collector.
//
// Metrics collected:
//   - reactive_flushes_total: Counter of flushes that had effects to run
//   - reactive_effect_runs_total: Counter of flushed effects by result (ran, skipped, failed)
//   - reactive_effect_failures_total: Counter of effect panics, including first runs
//   - reactive_computed_recomputes_total: Counter of computed getter calls
//   - reactive_flush_duration_seconds: Histogram of flush duration
//   - reactive_flush_size: Histogram of the number of effects per flush
//   - reactive_flushes_in_flight: Gauge of running flushes (nested flushes included)
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Collector{
		flushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of flushes that had effects to run",
			ConstLabels: config.ConstLabels,
		}),

		effectsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_runs_total",
			Help:        "Total number of flushed effects by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		failuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effect_failures_total",
			Help:        "Total number of effect panics",
			ConstLabels: config.ConstLabels,
		}),

		recomputesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "computed_recomputes_total",
			Help:        "Total number of computed getter calls",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		flushSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_size",
			Help:        "Number of effects queued per flush",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 8), // 1 to 16384
		}),

		flushesInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_in_flight",
			Help:        "Number of flushes currently running",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Option returns the runtime option installing the collector.
func (c *Collector) Option() reactive.Option {
	return reactive.WithObserver(c)
}

func (c *Collector) FlushStarted(queued int) {
	c.flushesInFlight.Inc()
	c.flushSize.Observe(float64(queued))
}

func (c *Collector) FlushFinished(stats reactive.FlushStats) {
	c.flushesInFlight.Dec()
	c.flushesTotal.Inc()
	c.flushDuration.Observe(stats.Duration.Seconds())

	c.effectsTotal.WithLabelValues("ran").Add(float64(stats.Ran))
	c.effectsTotal.WithLabelValues("skipped").Add(float64(stats.Skipped))
	c.effectsTotal.WithLabelValues("failed").Add(float64(stats.Failed))
}

func (c *Collector) EffectFailed(*reactive.EffectError) {
	c.failuresTotal.Inc()
}

func (c *Collector) ComputedRecomputed() {
	c.recomputesTotal.Inc()
}

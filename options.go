package tableau

import (
	"github.com/hashicorp/go-hclog"

	"tableau/internal/engine"
)

// Options configures a Facade, re-exporting the engine's knobs
// (spec.md §6.4) plus the façade-level cache toggle.
type Options struct {
	MaxBranches                   int
	MaxInstantiationsPerUniversal int
	EnableSubsumption             bool
	EnableCaching                 bool
	CacheSize                     int
	Logger                        hclog.Logger
}

// DefaultOptions returns spec.md §6.4's documented defaults, with
// caching on (also the documented default) and a 256-entry cache.
func DefaultOptions() Options {
	base := engine.DefaultOptions()
	return Options{
		MaxBranches:                   base.MaxBranches,
		MaxInstantiationsPerUniversal: base.MaxInstantiationsPerUniversal,
		EnableSubsumption:             base.EnableSubsumption,
		EnableCaching:                 true,
		CacheSize:                     256,
		Logger:                        base.Logger,
	}
}

// Option applies one configuration change to an Options value, the
// teacher's preferred construction idiom over config files (front-ends
// own their own configuration surface — see spec.md §1's Non-goals).
type Option func(*Options)

// WithMaxBranches overrides the branch-count safety bound (default 100000).
func WithMaxBranches(n int) Option {
	return func(o *Options) { o.MaxBranches = n }
}

// WithMaxInstantiationsPerUniversal overrides the γ-rule re-firing cap
// (default 64).
func WithMaxInstantiationsPerUniversal(n int) Option {
	return func(o *Options) { o.MaxInstantiationsPerUniversal = n }
}

// WithSubsumption toggles the optional subsumption-elimination pass
// (disabled by default).
func WithSubsumption(enabled bool) Option {
	return func(o *Options) { o.EnableSubsumption = enabled }
}

// WithCaching toggles the façade query cache (enabled by default).
func WithCaching(enabled bool) Option {
	return func(o *Options) { o.EnableCaching = enabled }
}

// WithCacheSize overrides the façade query cache's entry capacity
// (default 256).
func WithCacheSize(n int) Option {
	return func(o *Options) { o.CacheSize = n }
}

// WithLogger overrides the structured logger (default
// hclog.NewNullLogger()).
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// NewOptions builds an Options value from DefaultOptions() plus any
// functional options applied in order, e.g.
// NewOptions(WithMaxBranches(5000), WithSubsumption(true)).
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o Options) engineOptions() engine.Options {
	return engine.Options{
		MaxBranches:                   o.MaxBranches,
		MaxInstantiationsPerUniversal: o.MaxInstantiationsPerUniversal,
		EnableSubsumption:             o.EnableSubsumption,
		Logger:                        o.Logger,
	}
}

package engine

import "github.com/hashicorp/go-hclog"

// Options configures a single Build call. Per spec.md §6.4 the core
// exposes no configuration beyond these; logging, pretty-printing and
// output encoding are the concern of external collaborators.
type Options struct {
	// MaxBranches caps the total number of branches the engine will
	// ever create (root included) before yielding ResourceExhausted.
	MaxBranches int
	// MaxInstantiationsPerUniversal caps γ-rule firings per universal
	// signed formula per branch.
	MaxInstantiationsPerUniversal int
	// EnableSubsumption prunes open branches whose signed-formula set
	// is a superset of another open branch's. Disabled by default.
	EnableSubsumption bool
	// Logger receives Trace/Debug tracing of rule applications and
	// branch events; a null logger is used if nil.
	Logger hclog.Logger
}

// DefaultOptions returns spec.md §6.4's documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxBranches:                   100000,
		MaxInstantiationsPerUniversal: 64,
		EnableSubsumption:             false,
		Logger:                        hclog.NewNullLogger(),
	}
}

// Option applies one configuration change to an Options value, the
// teacher's preferred construction idiom over config files.
type Option func(*Options)

// WithMaxBranches overrides the branch-count safety bound.
func WithMaxBranches(n int) Option {
	return func(o *Options) { o.MaxBranches = n }
}

// WithMaxInstantiationsPerUniversal overrides the γ-rule re-firing cap.
func WithMaxInstantiationsPerUniversal(n int) Option {
	return func(o *Options) { o.MaxInstantiationsPerUniversal = n }
}

// WithSubsumption toggles the optional subsumption-elimination pass.
func WithSubsumption(enabled bool) Option {
	return func(o *Options) { o.EnableSubsumption = enabled }
}

// WithLogger overrides the structured logger.
func WithLogger(l hclog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// NewOptions builds an Options value from DefaultOptions() plus any
// functional options applied in order.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o Options) withDefaults() Options {
	if o.MaxBranches <= 0 {
		o.MaxBranches = 100000
	}
	if o.MaxInstantiationsPerUniversal <= 0 {
		o.MaxInstantiationsPerUniversal = 64
	}
	if o.Logger == nil {
		o.Logger = hclog.NewNullLogger()
	}
	return o
}

package filter

import "log/slog"

// Options configures how a filter hashes and logs. Sizing is not an option;
// it always comes from the false positive rate and expected item count.
type Options struct {
	// Seeds keys the base hashes. Nil draws RandomSeeds per instance, which
	// makes two filters built with the same parameters disagree on positions.
	Seeds     *Seeds
	Algorithm Algorithm
	Logger    *slog.Logger
}

type Option func(*Options)

// WithSeeds fixes the hash seeds so positions are reproducible across
// instances and runs.
func WithSeeds(seeds Seeds) Option {
	return func(o *Options) {
		o.Seeds = &seeds
	}
}

func WithAlgorithm(alg Algorithm) Option {
	return func(o *Options) {
		o.Algorithm = alg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// NewOptions applies opts over the defaults: random seeds, metro hash and
// slog.Default.
func NewOptions(opts ...Option) Options {
	o := Options{Algorithm: AlgorithmMetro}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Hasher resolves the seeds and builds the configured Hasher.
func (o Options) Hasher() (Hasher, Seeds, error) {
	seeds := RandomSeeds()
	if o.Seeds != nil {
		seeds = o.Seeds.distinct()
	}
	h, err := NewHasher(o.Algorithm, seeds)
	if err != nil {
		return nil, Seeds{}, err
	}
	return h, seeds, nil
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/rag-nar1/Bloom-Filter/filter"
	blockedbloom "github.com/rag-nar1/Bloom-Filter/filter/blocked-bloom"
	"github.com/rag-nar1/Bloom-Filter/filter/bloom"
)

// NewFilter builds the filter variant named by cfg.
func NewFilter(cfg *Config, logger *slog.Logger) (filter.Sized, error) {
	alg, err := filter.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	opts := []filter.Option{filter.WithAlgorithm(alg), filter.WithLogger(logger)}
	if cfg.FixedSeeds() {
		opts = append(opts, filter.WithSeeds(filter.Seeds{One: cfg.SeedOne, Two: cfg.SeedTwo}))
	}

	var (
		f      filter.Sized
		fpRate = float32(cfg.FalsePositiveRate)
	)
	switch cfg.Variant {
	case "bloom", "":
		f, err = bloom.New(fpRate, cfg.Items, opts...)
	case "blocked":
		f, err = blockedbloom.New(fpRate, cfg.Items, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, cfg.Variant)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

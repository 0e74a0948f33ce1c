package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"
)

// Execute runs the probe with the given command line arguments.
func Execute(args []string) error {
	cfg, err := LoadConfig(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		return err
	}

	logger, closer := NewLogger(cfg.Log)
	defer closer.Close()

	return run(cfg, logger)
}

func run(cfg *Config, logger *slog.Logger) error {
	f, err := NewFilter(cfg, logger)
	if err != nil {
		logger.Error("build filter", slog.Any("error", err))
		return err
	}

	logger.Info("probe started",
		slog.String("variant", cfg.Variant),
		slog.String("algorithm", cfg.Algorithm),
		slog.Bool("fixed_seeds", cfg.FixedSeeds()))

	report := Probe(f, cfg.Items, cfg.Probes, cfg.FalsePositiveRate)
	if report.FalseNegatives > 0 {
		err := fmt.Errorf("%w: %d of %d keys", ErrFalseNegative, report.FalseNegatives, cfg.Items)
		logger.Error("probe failed", slog.Any("report", report), slog.Any("error", err))
		return err
	}

	if report.ObservedFPR > 2*cfg.FalsePositiveRate {
		logger.Warn("observed false positive rate above twice the target", slog.Any("report", report))
	}
	logger.Info("probe finished", slog.Any("report", report))
	return nil
}

// Package cmd implements the bloom probe: it sizes a filter from
// configuration, fills it with synthetic keys and reports how the observed
// false positive rate compares with the target.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "BLOOM"

type Config struct {
	FalsePositiveRate float64   `mapstructure:"fp_rate"   validate:"gt=0,lt=1"`
	Items             uint32    `mapstructure:"items"     validate:"gt=0"`
	Probes            uint32    `mapstructure:"probes"    validate:"gt=0"`
	Algorithm         string    `mapstructure:"algorithm" validate:"oneof=metro xxh3 city murmur"`
	Variant           string    `mapstructure:"variant"   validate:"oneof=bloom blocked"`
	SeedOne           uint64    `mapstructure:"seed_one"`
	SeedTwo           uint64    `mapstructure:"seed_two"`
	Log               LogConfig `mapstructure:"log"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=text json"`
	File       string `mapstructure:"file"` // empty logs to stderr
	MaxSize    int    `mapstructure:"max_size"    validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// FixedSeeds reports whether both seeds were configured. Zero means random.
func (c *Config) FixedSeeds() bool {
	return c.SeedOne != 0 || c.SeedTwo != 0
}

var defaults = map[string]any{
	"fp_rate":         0.01,
	"items":           100000,
	"probes":          100000,
	"algorithm":       "metro",
	"variant":         "bloom",
	"seed_one":        0,
	"seed_two":        0,
	"log.level":       "info",
	"log.format":      "text",
	"log.file":        "",
	"log.max_size":    100,
	"log.max_backups": 3,
	"log.max_age":     28,
	"log.compress":    false,
}

// flag name -> config key
var flagKeys = map[string]string{
	"fp-rate":    "fp_rate",
	"items":      "items",
	"probes":     "probes",
	"algorithm":  "algorithm",
	"variant":    "variant",
	"seed-one":   "seed_one",
	"seed-two":   "seed_two",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("bloomprobe", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, json or toml)")
	fs.Float64("fp-rate", 0.01, "target false positive rate, in (0, 1)")
	fs.Uint32("items", 100000, "number of keys inserted")
	fs.Uint32("probes", 100000, "number of unseen keys checked")
	fs.String("algorithm", "metro", "base hash: metro, xxh3, city or murmur")
	fs.String("variant", "bloom", "filter layout: bloom or blocked")
	fs.Uint64("seed-one", 0, "first hash seed, 0 for random")
	fs.Uint64("seed-two", 0, "second hash seed, 0 for random")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.String("log-format", "text", "text or json")
	fs.String("log-file", "", "rotate logs into this file instead of stderr")
	return fs
}

// LoadConfig resolves the probe configuration from, in increasing priority,
// defaults, an optional config file, BLOOM_* environment variables and args.
func LoadConfig(args []string) (*Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func validateConfig(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Package config defines the application configuration, its command-line
// flags and the layered resolution of values from flags, BIGMUL_*
// environment variables and an optional YAML file.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/bigmul/internal/errors"
	"github.com/agbru/bigmul/internal/multiply"
)

// ─────────────────────────────────────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────────────────────────────────────

const (
	// EnvPrefix prefixes every environment override (e.g. BIGMUL_DIGITS).
	EnvPrefix = "BIGMUL_"

	// AlgoAll selects every registered multiplier.
	AlgoAll = "all"

	DefaultDigits   = 10000
	DefaultRuns     = 1
	DefaultSeed     = 42
	DefaultTimeout  = 5 * time.Minute
	DefaultLogLevel = "warn"
)

// AppConfig aggregates the configuration for every command.
type AppConfig struct {
	// ConfigFile is the path of an optional YAML configuration file.
	ConfigFile string

	// Algo is the multiplier to run, or AlgoAll.
	Algo string
	// Digits is the length of each random benchmark operand.
	Digits int
	// Runs is the number of timed repetitions per algorithm.
	Runs int
	// Seed makes benchmark operands reproducible.
	Seed uint64
	// Timeout bounds the whole command.
	Timeout time.Duration

	// Engine tuning. Zero values are filled by the threshold resolution chain.
	RecursionThreshold int
	ParallelThreshold  int
	Workers            int

	// Concurrency is the number of algorithms benchmarked at once. Zero runs
	// them one after another so timings do not interfere.
	Concurrency int

	OutputFile  string
	Quiet       bool
	Verbose     bool
	Details     bool
	NoColor     bool
	LogLevel    string
	MetricsAddr string

	CalibrationProfile string
	AutoCalibrate      bool
}

// Default returns the configuration used before any flag, environment
// variable or file is applied.
func Default() AppConfig {
	return AppConfig{
		Algo:     AlgoAll,
		Digits:   DefaultDigits,
		Runs:     DefaultRuns,
		Seed:     DefaultSeed,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}
}

// EngineOptions converts the tuning fields into engine options.
func (c AppConfig) EngineOptions() multiply.Options {
	return multiply.Options{
		RecursionThreshold: c.RecursionThreshold,
		ParallelThreshold:  c.ParallelThreshold,
		Workers:            c.Workers,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Flags
// ─────────────────────────────────────────────────────────────────────────────

// flagBinders declares every flag once. Commands pick the subset they need.
var flagBinders = map[string]func(fs *pflag.FlagSet, c *AppConfig){
	"config": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML configuration file")
	},
	"algo": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.StringVarP(&c.Algo, "algo", "a", c.Algo, "multiplier to run ('all' or a registered name)")
	},
	"digits": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.IntVarP(&c.Digits, "digits", "n", c.Digits, "digits per random operand")
	},
	"runs": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.IntVar(&c.Runs, "runs", c.Runs, "timed repetitions per algorithm")
	},
	"seed": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for random operands")
	},
	"timeout": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "maximum run time")
	},
	"recursion-threshold": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.IntVar(&c.RecursionThreshold, "recursion-threshold", c.RecursionThreshold, "operand length at which recursion stops (0 = auto)")
	},
	"parallel-threshold": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.IntVar(&c.ParallelThreshold, "parallel-threshold", c.ParallelThreshold, "operand length below which no task is forked (0 = auto)")
	},
	"workers": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines per parallel engine (0 = GOMAXPROCS)")
	},
	"concurrency": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.IntVar(&c.Concurrency, "concurrency", c.Concurrency, "algorithms benchmarked at once (0 = one at a time)")
	},
	"output": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.StringVarP(&c.OutputFile, "output", "o", c.OutputFile, "write the product to this file")
	},
	"quiet": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.BoolVarP(&c.Quiet, "quiet", "q", c.Quiet, "print only the result")
	},
	"verbose": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "print full products instead of truncated ones")
	},
	"details": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.BoolVarP(&c.Details, "details", "d", c.Details, "print system and engine details")
	},
	"no-color": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "disable colored output")
	},
	"log-level": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	},
	"metrics-addr": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "serve Prometheus metrics on this address")
	},
	"calibration-profile": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.StringVar(&c.CalibrationProfile, "calibration-profile", c.CalibrationProfile, "calibration profile path")
	},
	"auto-calibrate": func(fs *pflag.FlagSet, c *AppConfig) {
		fs.BoolVar(&c.AutoCalibrate, "auto-calibrate", c.AutoCalibrate, "calibrate thresholds when no valid profile exists")
	},
}

// GlobalFlags are bound on the root command and shared by all subcommands.
var GlobalFlags = []string{
	"config", "log-level", "no-color", "timeout",
	"recursion-threshold", "parallel-threshold", "workers",
}

// BindFlags registers the named flags on fs, writing into c. The current
// values of c become the flag defaults. It panics on an unknown name.
func BindFlags(fs *pflag.FlagSet, c *AppConfig, names ...string) {
	for _, name := range names {
		bind, ok := flagBinders[name]
		if !ok {
			panic(fmt.Sprintf("config: unknown flag %q", name))
		}
		bind(fs, c)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the semantic validity of the configuration.
//
// Parameters:
//   - availableAlgos: The registered multiplier names.
//
// Returns:
//   - error: A ConfigError describing the first invalid value, or nil.
func (c AppConfig) Validate(availableAlgos []string) error {
	switch {
	case c.Digits < 1:
		return apperrors.NewConfigError("--digits must be at least 1, got %d", c.Digits)
	case c.Runs < 1:
		return apperrors.NewConfigError("--runs must be at least 1, got %d", c.Runs)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	case c.RecursionThreshold < 0:
		return apperrors.NewConfigError("--recursion-threshold cannot be negative")
	case c.ParallelThreshold < 0:
		return apperrors.NewConfigError("--parallel-threshold cannot be negative")
	case c.Workers < 0:
		return apperrors.NewConfigError("--workers cannot be negative")
	case c.Concurrency < 0:
		return apperrors.NewConfigError("--concurrency cannot be negative")
	case !slices.Contains(logLevels, strings.ToLower(c.LogLevel)):
		return apperrors.NewConfigError("--log-level must be one of %s, got %q", strings.Join(logLevels, ", "), c.LogLevel)
	}

	algo := strings.ToLower(c.Algo)
	if algo != AlgoAll && !slices.Contains(availableAlgos, algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: %s, %s)", c.Algo, AlgoAll, strings.Join(availableAlgos, ", "))
	}
	return nil
}

package config

import (
	"runtime"

	"github.com/agbru/bigmul/internal/multiply"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--recursion-threshold, --parallel-threshold, --workers)
//   2. Environment variables (BIGMUL_RECURSION_THRESHOLD, etc.)
//   3. YAML configuration file
//   4. Cached calibration profile (~/.bigmul_calibration.yaml)
//   5. Adaptive hardware estimation (this file)
//   6. Static defaults in multiply/options.go

// ApplyAdaptiveThresholds fills every tuning field still at zero with an
// estimate derived from the hardware. Non-zero values are left untouched.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.RecursionThreshold == 0 {
		cfg.RecursionThreshold = EstimateOptimalRecursionThreshold()
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return cfg
}

// EstimateOptimalParallelThreshold returns an operand length, in digits,
// below which forking is not worth its overhead on this machine.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 1 << 30 // No parallelism
	case numCPU <= 2:
		return 4096
	case numCPU <= 4:
		return 2048
	case numCPU <= 8:
		return multiply.DefaultParallelThreshold
	case numCPU <= 16:
		return 512
	default:
		return 256
	}
}

// EstimateOptimalRecursionThreshold returns the schoolbook cut-off. Wider
// words make the base-case inner loop cheaper relative to recursion.
func EstimateOptimalRecursionThreshold() int {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return multiply.DefaultRecursionThreshold
	}
	return 32
}

// This file implements adaptive threshold generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/bigmul/internal/config"
)

// SequentialThreshold is a parallel threshold no operand reaches, so the
// parallel engines never fork.
const SequentialThreshold = 1 << 30

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Parallel Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateParallelThresholds returns the parallel thresholds, in digits, to
// test on this machine. The list always starts with SequentialThreshold;
// more cores make forking pay off on smaller operands, so lower candidates
// are added as the core count grows.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{SequentialThreshold}

	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 512, 1024, 2048, 4096)
	case numCPU <= 8:
		thresholds = append(thresholds, 256, 512, 1024, 2048, 4096)
	case numCPU <= 16:
		thresholds = append(thresholds, 128, 256, 512, 1024, 2048, 4096)
	default:
		thresholds = append(thresholds, 64, 128, 256, 512, 1024, 2048, 4096)
	}

	return thresholds
}

// GenerateQuickParallelThresholds returns a reduced candidate set for
// startup auto-calibration.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{SequentialThreshold}
	case numCPU <= 4:
		return []int{SequentialThreshold, 1024, 2048}
	case numCPU <= 8:
		return []int{SequentialThreshold, 512, 1024, 2048}
	default:
		return []int{SequentialThreshold, 256, 512, 1024, 2048}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Recursion Threshold Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateRecursionThresholds returns the schoolbook cut-offs to test.
func GenerateRecursionThresholds() []int {
	return []int{16, 24, 32, 48, 64, 96, 128}
}

// GenerateQuickRecursionThresholds returns a reduced set for quick calibration.
func GenerateQuickRecursionThresholds() []int {
	return []int{32, 64, 128}
}

// ─────────────────────────────────────────────────────────────────────────────
// Threshold Estimation (without benchmarking)
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalParallelThreshold delegates to config.EstimateOptimalParallelThreshold.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }

// EstimateOptimalRecursionThreshold delegates to config.EstimateOptimalRecursionThreshold.
func EstimateOptimalRecursionThreshold() int { return config.EstimateOptimalRecursionThreshold() }

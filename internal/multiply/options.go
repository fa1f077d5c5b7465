package multiply

import (
	"math"
	"runtime"
)

// ─────────────────────────────────────────────────────────────────────────────
// Configuration Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultRecursionThreshold is the operand length in digits at or below
	// which the recursive engines fall back to the schoolbook base case.
	DefaultRecursionThreshold = 64

	// MinRecursionThreshold keeps the Toom-Cook split well defined: with
	// n >= 9 the three parts are non-empty and the recombined product fits
	// in 2n positions.
	MinRecursionThreshold = 8

	// DefaultParallelThreshold is the operand length in digits below which
	// the parallel engines stop forking recursive calls.
	DefaultParallelThreshold = 1024
)

// Options configures the multiplication engines. Thresholds only affect
// speed; every setting yields the same product.
type Options struct {
	// RecursionThreshold is the length at or below which recursion stops.
	// Zero selects DefaultRecursionThreshold; smaller positive values are
	// raised to MinRecursionThreshold.
	RecursionThreshold int
	// ParallelThreshold is the length below which parallel engines run a
	// call sequentially. Elementwise loops split once they span at least
	// twice ParallelThreshold/4 positions. Zero selects the default.
	ParallelThreshold int
	// Workers bounds the goroutines a parallel engine forks. Zero selects
	// runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultOptions returns the options used by the package-level entry points.
func DefaultOptions() Options {
	return Options{
		RecursionThreshold: DefaultRecursionThreshold,
		ParallelThreshold:  DefaultParallelThreshold,
		Workers:            runtime.GOMAXPROCS(0),
	}
}

// normalizeOptions returns a copy of opts with defaults filled in.
func normalizeOptions(opts Options) Options {
	n := opts
	switch {
	case n.RecursionThreshold <= 0:
		n.RecursionThreshold = DefaultRecursionThreshold
	case n.RecursionThreshold < MinRecursionThreshold:
		n.RecursionThreshold = MinRecursionThreshold
	}
	if n.ParallelThreshold <= 0 {
		n.ParallelThreshold = DefaultParallelThreshold
	}
	if n.Workers <= 0 {
		n.Workers = runtime.GOMAXPROCS(0)
	}
	return n
}

// loopGrain is the minimum chunk length for range-parallel loops.
func (o Options) loopGrain() int {
	return max(o.ParallelThreshold/4, 1)
}

// ─────────────────────────────────────────────────────────────────────────────
// Exact-capacity limits
// ─────────────────────────────────────────────────────────────────────────────
//
// Raw entries are int64. Each recursion level enlarges operand entries
// (x2 per level for Karatsuba cross sums, x7 for the Toom-Cook point -2),
// the base case sums `threshold` products, and recombination adds a bounded
// factor on top. The string entry points never hand an engine a block longer
// than its capacity; longer operands are multiplied block by block.

// karatsubaCapacity returns the largest power-of-two operand length whose
// Karatsuba recursion keeps every raw entry within int64.
func karatsubaCapacity(threshold int) int {
	base := 1
	for base*2 <= threshold {
		base *= 2
	}
	depth := maxSafeDepth(threshold, 2, 8)
	return base << depth
}

// toomCookCapacity returns the largest operand length whose Toom-Cook
// recursion keeps every raw entry within int64.
func toomCookCapacity(threshold int) int {
	depth := maxSafeDepth(threshold, 7, 16)
	c := threshold
	for range depth {
		c *= 3
	}
	return c
}

// maxSafeDepth returns the deepest recursion whose worst-case entry,
// slack * threshold * (9 * growth^depth)^2, stays below MaxInt64. The depth
// is capped so capacities stay representable.
func maxSafeDepth(threshold int, growth, slack float64) int {
	bound := func(d int) float64 {
		m := 9 * math.Pow(growth, float64(d))
		return slack * float64(threshold) * m * m
	}
	d := 0
	for d < 30 && bound(d+1) < math.MaxInt64 {
		d++
	}
	return d
}

package calibration

import (
	"context"
	"time"

	"github.com/agbru/bigmul/internal/multiply"
)

// maxDuration marks a candidate without a successful trial.
const maxDuration = time.Duration(1<<63 - 1)

// engineBuilders are the parallel engines whose combined time is minimised.
var engineBuilders = []func(multiply.Options) multiply.Engine{
	func(o multiply.Options) multiply.Engine { return multiply.NewKaratsubaParallel(o) },
	func(o multiply.Options) multiply.Engine { return multiply.NewToomCookParallel(o) },
}

// calibrationResult holds the result of a single threshold test.
type calibrationResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// calibrationRunner times trials on one fixed pair of operands.
type calibrationRunner struct {
	ctx     context.Context
	a, b    string
	workers int
	// onTrial is called after every trial, if set.
	onTrial func()
}

func newCalibrationRunner(ctx context.Context, a, b string, workers int) *calibrationRunner {
	return &calibrationRunner{ctx: ctx, a: a, b: b, workers: workers}
}

// runTrial multiplies the operands once with every calibrated engine and
// returns the total time. Engines are not interruptible, so cancellation is
// observed between engines.
func (r *calibrationRunner) runTrial(opts multiply.Options) (time.Duration, error) {
	if r.onTrial != nil {
		defer r.onTrial()
	}
	var total time.Duration
	for _, build := range engineBuilders {
		if err := r.ctx.Err(); err != nil {
			return 0, err
		}
		engine := build(opts)
		start := time.Now()
		if _, err := engine.MultiplyStrings(r.a, r.b); err != nil {
			return 0, err
		}
		total += time.Since(start)
	}
	return total, nil
}

// findBestParallelThreshold times every parallel candidate with a fixed
// recursion threshold.
//
// Returns:
//   - int: The fastest candidate, or defaultThreshold if every trial failed.
//   - []calibrationResult: One entry per candidate, in order.
func (r *calibrationRunner) findBestParallelThreshold(candidates []int, recursion, defaultThreshold int) (int, []calibrationResult) {
	return r.search(candidates, defaultThreshold, func(cand int) multiply.Options {
		return multiply.Options{RecursionThreshold: recursion, ParallelThreshold: cand, Workers: r.workers}
	})
}

// findBestRecursionThreshold times every recursion candidate with a fixed
// parallel threshold.
func (r *calibrationRunner) findBestRecursionThreshold(candidates []int, parallel, defaultThreshold int) (int, []calibrationResult) {
	return r.search(candidates, defaultThreshold, func(cand int) multiply.Options {
		return multiply.Options{RecursionThreshold: cand, ParallelThreshold: parallel, Workers: r.workers}
	})
}

func (r *calibrationRunner) search(candidates []int, defaultThreshold int, optsFor func(int) multiply.Options) (int, []calibrationResult) {
	best := defaultThreshold
	bestDur := maxDuration
	results := make([]calibrationResult, 0, len(candidates))

	for _, cand := range candidates {
		dur, err := r.runTrial(optsFor(cand))
		results = append(results, calibrationResult{Threshold: cand, Duration: dur, Err: err})
		if err != nil {
			continue
		}
		if dur < bestDur {
			bestDur, best = dur, cand
		}
	}
	return best, results
}

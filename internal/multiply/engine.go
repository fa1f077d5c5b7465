package multiply

import (
	"github.com/cockroachdb/errors"

	"github.com/agbru/bigmul/internal/digits"
	"github.com/agbru/bigmul/internal/parallel"
)

// engine holds the configuration shared by every multiplication strategy.
// A nil pool selects the sequential schedule.
type engine struct {
	name string
	opts Options
	pool *parallel.Pool

	// blockLimit overrides the exact-capacity limit of the string entry
	// point when positive.
	blockLimit int
}

func newEngine(name string, opts Options, concurrent bool) engine {
	e := engine{name: name, opts: normalizeOptions(opts)}
	if concurrent {
		e.pool = parallel.NewPool(e.opts.Workers)
	}
	return e
}

// Name returns the registry name of the engine.
func (e *engine) Name() string {
	return e.name
}

// Options returns the effective options, with defaults filled in.
func (e *engine) Options() Options {
	return e.opts
}

// forks reports whether a call on operands of length n may spawn tasks.
func (e *engine) forks(n int) bool {
	return e.pool != nil && n >= e.opts.ParallelThreshold
}

// opsFor returns the vector helpers to use at operand length n.
func (e *engine) opsFor(n int) digits.Ops {
	if !e.forks(n) {
		return digits.Sequential
	}
	return digits.Ops{Pool: e.pool, Grain: e.opts.loopGrain()}
}

// entry returns v[i], or 0 past the end of v.
func entry(v digits.Vector, i int) int64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// fitLength returns v resized to exactly n positions. Positions at or beyond
// n must be zero.
func fitLength(v digits.Vector, n int) digits.Vector {
	if len(v) <= n {
		return digits.Extend(v, n)
	}
	for i := n; i < len(v); i++ {
		if v[i] != 0 {
			panic(errors.AssertionFailedf("multiply: product entry %d (%d) lies beyond length %d", i, v[i], n))
		}
	}
	return v[:n]
}

func requireEqualLengths(x, y digits.Vector) {
	if len(x) != len(y) {
		panic(errors.AssertionFailedf("multiply: operands must have equal length, got %d and %d", len(x), len(y)))
	}
}

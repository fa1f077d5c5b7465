package multiply

import (
	"github.com/agbru/bigmul/internal/digits"
)

// NaiveVector returns the schoolbook product of x and y as a raw vector of
// length len(x)+len(y): position i+j accumulates x[i]*y[j]. The operands may
// have different lengths and are not modified. No carries are propagated.
func NaiveVector(x, y digits.Vector) digits.Vector {
	res := make(digits.Vector, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		row := res[i : i+len(y)]
		for j, yj := range y {
			row[j] += xi * yj
		}
	}
	return res
}

// naiveVectorParallel computes the same accumulator as NaiveVector. Each
// output position is summed by exactly one task, so the split cannot change
// the result.
func naiveVectorParallel(ops digits.Ops, x, y digits.Vector) digits.Vector {
	n, m := len(x), len(y)
	res := make(digits.Vector, n+m)
	if n == 0 || m == 0 {
		return res
	}
	ops.Pool.For(n+m-1, ops.Grain, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			var sum int64
			for i := max(0, p-m+1); i <= min(p, n-1); i++ {
				sum += x[i] * y[p-i]
			}
			res[p] = sum
		}
	})
	return res
}

// MultiplyNaive multiplies two non-negative decimal strings with the
// schoolbook method.
func MultiplyNaive(a, b string) (string, error) {
	return NewNaive(DefaultOptions()).MultiplyStrings(a, b)
}

// MultiplyNaiveParallel is MultiplyNaive with the output positions split
// across goroutines for long operands.
func MultiplyNaiveParallel(a, b string) (string, error) {
	return NewNaiveParallel(DefaultOptions()).MultiplyStrings(a, b)
}

// multiplyNaiveStrings multiplies two validated decimal strings directly on
// their bytes and emits the canonical product. It carries and trims in a
// single pass and shares no code with the vector codec, so it can serve as
// an independent check on it.
func multiplyNaiveStrings(a, b string) string {
	n, m := len(a), len(b)
	acc := make([]int64, n+m)
	for i := 0; i < n; i++ {
		da := int64(a[n-1-i] - '0')
		if da == 0 {
			continue
		}
		for j := 0; j < m; j++ {
			acc[i+j] += da * int64(b[m-1-j]-'0')
		}
	}

	out := make([]byte, n+m)
	var carry int64
	top := 0
	for p := range acc {
		v := acc[p] + carry
		d := v % 10
		carry = v / 10
		out[n+m-1-p] = byte('0' + d)
		if d != 0 {
			top = p
		}
	}
	return string(out[n+m-1-top:])
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine
// ─────────────────────────────────────────────────────────────────────────────

// NaiveEngine is the schoolbook multiplier. The parallel variant splits the
// output positions of long products across the pool.
type NaiveEngine struct {
	engine
}

// NewNaive returns the sequential schoolbook engine.
func NewNaive(opts Options) *NaiveEngine {
	return &NaiveEngine{engine: newEngine("naive", opts, false)}
}

// NewNaiveParallel returns the parallel schoolbook engine.
func NewNaiveParallel(opts Options) *NaiveEngine {
	return &NaiveEngine{engine: newEngine("naive-par", opts, true)}
}

// MulVector returns the raw schoolbook product of x and y.
func (e *NaiveEngine) MulVector(x, y digits.Vector) digits.Vector {
	n := max(len(x), len(y))
	if !e.forks(n) {
		return NaiveVector(x, y)
	}
	return naiveVectorParallel(e.opsFor(n), x, y)
}

// MultiplyStrings validates a and b and returns their canonical product.
func (e *NaiveEngine) MultiplyStrings(a, b string) (string, error) {
	if err := validateOperands(a, b); err != nil {
		return "", err
	}
	if !e.forks(max(len(a), len(b))) {
		return multiplyNaiveStrings(a, b), nil
	}
	x, _ := digits.Encode(a, false)
	y, _ := digits.Encode(b, false)
	return digits.Decode(e.MulVector(x, y)), nil
}

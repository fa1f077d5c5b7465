package multiply

import (
	"github.com/agbru/bigmul/internal/digits"
)

// KaratsubaEngine multiplies equal-length digit vectors with Karatsuba's
// three-product recursion, falling back to the schoolbook method at the
// recursion threshold.
//
// For operands split at k = n/2 into low and high halves:
//
//	P1 = high_x * high_y
//	P2 = low_x * low_y
//	P3 = (low_x + high_x) * (low_y + high_y)
//	x*y = P2 + (P3 - P1 - P2)*10^k + P1*10^(2k)
//
// The parallel variant computes P1, P2 and P3 as concurrent tasks and
// recombines with a range-parallel loop. Both variants use the same split and
// the same per-position combination formula.
type KaratsubaEngine struct {
	engine
}

// NewKaratsuba returns the sequential Karatsuba engine.
func NewKaratsuba(opts Options) *KaratsubaEngine {
	return &KaratsubaEngine{engine: newEngine("karatsuba", opts, false)}
}

// NewKaratsubaParallel returns the fork-join Karatsuba engine.
func NewKaratsubaParallel(opts Options) *KaratsubaEngine {
	return &KaratsubaEngine{engine: newEngine("karatsuba-par", opts, true)}
}

// MultiplyKaratsuba multiplies two non-negative decimal strings with the
// sequential Karatsuba engine.
func MultiplyKaratsuba(a, b string) (string, error) {
	return NewKaratsuba(DefaultOptions()).MultiplyStrings(a, b)
}

// MultiplyKaratsubaParallel multiplies two non-negative decimal strings with
// the fork-join Karatsuba engine.
func MultiplyKaratsubaParallel(a, b string) (string, error) {
	return NewKaratsubaParallel(DefaultOptions()).MultiplyStrings(a, b)
}

// MulVector returns the raw product of x and y, of length 2*len(x). The
// operands must have the same length; any length is accepted.
func (e *KaratsubaEngine) MulVector(x, y digits.Vector) digits.Vector {
	requireEqualLengths(x, y)
	return e.mul(x, y)
}

// MultiplyStrings validates a and b and returns their canonical product.
func (e *KaratsubaEngine) MultiplyStrings(a, b string) (string, error) {
	return e.wrapper().multiply(a, b)
}

// Capacity returns the longest operand multiplied without blocking.
func (e *KaratsubaEngine) Capacity() int {
	if e.blockLimit > 0 {
		return e.blockLimit
	}
	return karatsubaCapacity(e.opts.RecursionThreshold)
}

func (e *KaratsubaEngine) wrapper() decimalWrapper {
	return decimalWrapper{
		threshold: e.opts.RecursionThreshold,
		capacity:  e.Capacity(),
		padPow2:   true,
		mul:       e.mul,
	}
}

func (e *KaratsubaEngine) mul(x, y digits.Vector) digits.Vector {
	n := len(x)
	if n <= e.opts.RecursionThreshold {
		return NaiveVector(x, y)
	}

	k := n / 2
	xl, xh := x[:k], x[k:]
	yl, yh := y[:k], y[k:]
	ops := e.opsFor(n)

	var p1, p2, p3 digits.Vector
	tasks := []func(){
		func() { p1 = e.mul(xh, yh) },
		func() { p2 = e.mul(xl, yl) },
		func() {
			sx := ops.Add(xl, xh)
			sy := ops.Add(yl, yh)
			p3 = e.mul(sx, sy)
		},
	}
	if e.forks(n) {
		e.pool.Do(tasks...)
	} else {
		for _, task := range tasks {
			task()
		}
	}
	return combineKaratsuba(ops, p1, p2, p3, n, k)
}

// combineKaratsuba assembles the 2n-position result. Each position sums its
// contributions from P2, the middle term and P1, so positions are
// independent and may be filled in any order.
func combineKaratsuba(ops digits.Ops, p1, p2, p3 digits.Vector, n, k int) digits.Vector {
	res := make(digits.Vector, 2*n)
	ops.Pool.For(len(res), ops.Grain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			v := entry(p2, i)
			if i >= k {
				j := i - k
				v += entry(p3, j) - entry(p1, j) - entry(p2, j)
			}
			if i >= 2*k {
				v += entry(p1, i-2*k)
			}
			res[i] = v
		}
	})
	return res
}

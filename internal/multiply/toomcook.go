package multiply

import (
	"github.com/agbru/bigmul/internal/digits"
)

// MaxToomCookDigits is the longest operand the Toom-Cook engine multiplies in
// a single recursion at the default recursion threshold. Evaluation at -2
// grows entries up to sevenfold per level, and at 64*3^8 digits the deepest
// base case still fits int64. The string entry points multiply longer
// operands block by block.
const MaxToomCookDigits = 64 * 6561

// ToomCookEngine multiplies equal-length digit vectors with Toom-Cook-3:
// each operand is cut into three parts of k = ceil(n/3) positions, the
// part polynomials are evaluated at 0, 1, -1, -2 and infinity, the five
// pointwise products are computed recursively, and the product coefficients
// are recovered with Bodrato's interpolation sequence.
//
// The parallel variant forks the five pointwise products and runs the vector
// helpers range-parallel. Interpolation divisions are exact; a remainder
// panics.
type ToomCookEngine struct {
	engine
}

// NewToomCook returns the sequential Toom-Cook-3 engine.
func NewToomCook(opts Options) *ToomCookEngine {
	return &ToomCookEngine{engine: newEngine("toomcook", opts, false)}
}

// NewToomCookParallel returns the fork-join Toom-Cook-3 engine.
func NewToomCookParallel(opts Options) *ToomCookEngine {
	return &ToomCookEngine{engine: newEngine("toomcook-par", opts, true)}
}

// MultiplyToomCook multiplies two non-negative decimal strings with the
// sequential Toom-Cook-3 engine.
func MultiplyToomCook(a, b string) (string, error) {
	return NewToomCook(DefaultOptions()).MultiplyStrings(a, b)
}

// MultiplyToomCookParallel multiplies two non-negative decimal strings with
// the fork-join Toom-Cook-3 engine.
func MultiplyToomCookParallel(a, b string) (string, error) {
	return NewToomCookParallel(DefaultOptions()).MultiplyStrings(a, b)
}

// MulVector returns the raw product of x and y, of length 2*len(x). The
// operands must have the same length.
func (e *ToomCookEngine) MulVector(x, y digits.Vector) digits.Vector {
	requireEqualLengths(x, y)
	return e.mul(x, y)
}

// MultiplyStrings validates a and b and returns their canonical product.
func (e *ToomCookEngine) MultiplyStrings(a, b string) (string, error) {
	return e.wrapper().multiply(a, b)
}

// Capacity returns the longest operand multiplied without blocking.
func (e *ToomCookEngine) Capacity() int {
	if e.blockLimit > 0 {
		return e.blockLimit
	}
	return toomCookCapacity(e.opts.RecursionThreshold)
}

func (e *ToomCookEngine) wrapper() decimalWrapper {
	return decimalWrapper{
		threshold: e.opts.RecursionThreshold,
		capacity:  e.Capacity(),
		mul:       e.mul,
	}
}

func (e *ToomCookEngine) mul(x, y digits.Vector) digits.Vector {
	n := len(x)
	if n <= e.opts.RecursionThreshold {
		return NaiveVector(x, y)
	}

	k := (n + 2) / 3
	ops := e.opsFor(n)
	px := evaluateToom3(ops, x, k)
	py := evaluateToom3(ops, y, k)

	var r [5]digits.Vector
	tasks := make([]func(), len(r))
	for i := range r {
		tasks[i] = func() { r[i] = e.mul(px[i], py[i]) }
	}
	if e.forks(n) {
		e.pool.Do(tasks...)
	} else {
		for _, task := range tasks {
			task()
		}
	}

	c := interpolateToom3(ops, r[0], r[1], r[2], r[3], r[4])
	return fitLength(combineToom3(ops, c, k), 2*n)
}

// evaluateToom3 cuts v into parts of k positions and returns the part
// polynomial at 0, 1, -1, -2 and infinity, in that order.
func evaluateToom3(ops digits.Ops, v digits.Vector, k int) [5]digits.Vector {
	v0 := digits.Part(v, 0, k)
	v1 := digits.Part(v, k, 2*k)
	v2 := digits.Part(v, 2*k, len(v))

	v02 := ops.Add(v0, v2)
	atMinusTwo := ops.Add(ops.Sub(v0, ops.Scale(v1, 2)), ops.Scale(v2, 4))
	return [5]digits.Vector{
		v0,
		ops.Add(v02, v1),
		ops.Sub(v02, v1),
		atMinusTwo,
		v2,
	}
}

// interpolateToom3 recovers the five product coefficients from the pointwise
// products at 0, 1, -1, -2 and infinity.
func interpolateToom3(ops digits.Ops, r0, r1, rm1, rm2, rinf digits.Vector) [5]digits.Vector {
	c0 := r0
	c4 := rinf
	c3 := ops.ExactDiv(ops.Sub(rm2, r1), 3)
	c1 := ops.ExactDiv(ops.Sub(r1, rm1), 2)
	c2 := ops.Sub(rm1, r0)
	c3 = ops.Add(ops.ExactDiv(ops.Sub(c2, c3), 2), ops.Scale(rinf, 2))
	c2 = ops.Sub(ops.Add(c2, c1), c4)
	c1 = ops.Sub(c1, c3)
	return [5]digits.Vector{c0, c1, c2, c3, c4}
}

// combineToom3 returns sum c[j]*10^(j*k). Each position sums its own
// contributions, so positions are independent.
func combineToom3(ops digits.Ops, c [5]digits.Vector, k int) digits.Vector {
	size := 0
	for j, cj := range c {
		size = max(size, j*k+len(cj))
	}
	res := make(digits.Vector, size)
	ops.Pool.For(size, ops.Grain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			var v int64
			for j, cj := range c {
				if off := i - j*k; off >= 0 {
					v += entry(cj, off)
				}
			}
			res[i] = v
		}
	})
	return res
}

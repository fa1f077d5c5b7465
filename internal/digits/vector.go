package digits

import (
	"github.com/cockroachdb/errors"

	"github.com/agbru/bigmul/internal/parallel"
)

// Ops evaluates elementwise vector arithmetic. With a non-nil Pool, loops
// over at least 2*Grain positions are split across the pool; every position
// is computed by the same formula either way, so results do not depend on
// the split. The zero value is sequential.
//
// Binary operations zero-extend the shorter operand and return a fresh
// vector of the longer length. Inputs are never modified.
type Ops struct {
	Pool  *parallel.Pool
	Grain int
}

// Sequential is the Ops used by the package-level helpers.
var Sequential = Ops{}

func (o Ops) each(n int, body func(lo, hi int)) {
	if o.Pool == nil {
		body(0, n)
		return
	}
	o.Pool.For(n, o.Grain, body)
}

func at(v Vector, i int) int64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}

// Add returns a + b.
func (o Ops) Add(a, b Vector) Vector {
	out := make(Vector, max(len(a), len(b)))
	o.each(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = at(a, i) + at(b, i)
		}
	})
	return out
}

// Sub returns a - b. Entries may become negative.
func (o Ops) Sub(a, b Vector) Vector {
	out := make(Vector, max(len(a), len(b)))
	o.each(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = at(a, i) - at(b, i)
		}
	})
	return out
}

// Scale returns s * a.
func (o Ops) Scale(a Vector, s int64) Vector {
	out := make(Vector, len(a))
	o.each(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = a[i] * s
		}
	})
	return out
}

// ExactDiv returns a / d entry by entry. Every entry must be a multiple of d;
// a remainder is a defect in the caller's algebra and panics.
func (o Ops) ExactDiv(a Vector, d int64) Vector {
	if d == 0 {
		panic(errors.AssertionFailedf("digits: exact division by zero"))
	}
	out := make(Vector, len(a))
	o.each(len(out), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if a[i]%d != 0 {
				panic(errors.AssertionFailedf("digits: entry %d (%d) is not divisible by %d", i, a[i], d))
			}
			out[i] = a[i] / d
		}
	})
	return out
}

// Shift returns a multiplied by 10^m: m zero positions followed by a.
func Shift(a Vector, m int) Vector {
	out := make(Vector, len(a)+m)
	copy(out[m:], a)
	return out
}

// Add returns a + b sequentially.
func Add(a, b Vector) Vector { return Sequential.Add(a, b) }

// Sub returns a - b sequentially.
func Sub(a, b Vector) Vector { return Sequential.Sub(a, b) }

// Scale returns s * a sequentially.
func Scale(a Vector, s int64) Vector { return Sequential.Scale(a, s) }

// ExactDiv returns a / d sequentially, panicking on a remainder.
func ExactDiv(a Vector, d int64) Vector { return Sequential.ExactDiv(a, d) }

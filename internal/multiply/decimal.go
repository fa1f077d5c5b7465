package multiply

import (
	"github.com/agbru/bigmul/internal/digits"
)

// validateOperands checks both operands before any arithmetic.
func validateOperands(a, b string) error {
	if err := digits.Validate(a); err != nil {
		return err
	}
	return digits.Validate(b)
}

// decimalWrapper adapts a vector engine to decimal strings.
type decimalWrapper struct {
	threshold int
	capacity  int
	padPow2   bool
	mul       func(x, y digits.Vector) digits.Vector
}

// multiply validates a and b and returns their canonical product.
//
// Operands at or below the recursion threshold on either side use the
// schoolbook routine. Otherwise both are encoded and equalized (to a power of
// two when padPow2 is set). Operands longer than the exact capacity are
// multiplied block by block.
func (w decimalWrapper) multiply(a, b string) (string, error) {
	if err := validateOperands(a, b); err != nil {
		return "", err
	}
	short, long := min(len(a), len(b)), max(len(a), len(b))
	if short <= w.threshold {
		return multiplyNaiveStrings(a, b), nil
	}

	x, _ := digits.Encode(a, false)
	y, _ := digits.Encode(b, false)
	if long <= w.capacity {
		return digits.Decode(w.mulEqualized(x, y)), nil
	}
	return digits.Decode(w.mulBlocked(x, y, min(short, w.capacity))), nil
}

func (w decimalWrapper) mulEqualized(x, y digits.Vector) digits.Vector {
	n := max(len(x), len(y))
	if w.padPow2 {
		n = digits.NextPow2(n)
	}
	return w.mul(digits.Extend(x, n), digits.Extend(y, n))
}

// mulBlocked splits x and y into blocks of at most block positions and sums
// the normalized block products at offset (i+j)*block.
func (w decimalWrapper) mulBlocked(x, y digits.Vector, block int) digits.Vector {
	acc := make(digits.Vector, len(x)+len(y))
	for i := 0; i < len(x); i += block {
		xb := digits.Part(x, i, i+block)
		for j := 0; j < len(y); j += block {
			yb := digits.Part(y, j, j+block)
			p := digits.Normalize(w.mulEqualized(xb, yb))
			for t, d := range p {
				acc[i+j+t] += d
			}
		}
	}
	return acc
}

//go:build gmp

package multiply

import (
	"github.com/ncw/gmp"
)

// GMPEngine multiplies through the GNU Multiple Precision library. It is a
// reference strategy for benchmarks and cross-checks and is only built with
// the gmp tag.
type GMPEngine struct{}

func init() {
	creator := func(Options) Engine { return &GMPEngine{} }
	registerBuiltin("gmp", creator)
	_ = globalFactory.Register("gmp", creator)
}

// Name returns "gmp".
func (e *GMPEngine) Name() string {
	return "gmp"
}

// MultiplyStrings validates a and b and returns their canonical product.
func (e *GMPEngine) MultiplyStrings(a, b string) (string, error) {
	if err := validateOperands(a, b); err != nil {
		return "", err
	}
	x, _ := new(gmp.Int).SetString(a, 10)
	y, _ := new(gmp.Int).SetString(b, 10)
	return new(gmp.Int).Mul(x, y).String(), nil
}

package multiply

import (
	"math/big"
	"math/rand/v2"
	"strings"

	"github.com/agbru/bigmul/internal/digits"
)

// vectorEngine is implemented by every engine in this package.
type vectorEngine interface {
	Engine
	MulVector(x, y digits.Vector) digits.Vector
}

// smallOpts forces deep recursion and forking on short operands.
var smallOpts = Options{RecursionThreshold: MinRecursionThreshold, ParallelThreshold: 1, Workers: 4}

func allEngines(opts Options) []vectorEngine {
	return []vectorEngine{
		NewNaive(opts),
		NewNaiveParallel(opts),
		NewKaratsuba(opts),
		NewKaratsubaParallel(opts),
		NewToomCook(opts),
		NewToomCookParallel(opts),
	}
}

// randomDigits returns an n-digit decimal string with a non-zero leading
// digit.
func randomDigits(r *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	sb.WriteByte(byte('1' + r.IntN(9)))
	for i := 1; i < n; i++ {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	return sb.String()
}

func randomVector(r *rand.Rand, n int) digits.Vector {
	v := make(digits.Vector, n)
	for i := range v {
		v[i] = int64(r.IntN(10))
	}
	return v
}

func bigProduct(a, b string) string {
	x, _ := new(big.Int).SetString(a, 10)
	y, _ := new(big.Int).SetString(b, 10)
	return new(big.Int).Mul(x, y).String()
}

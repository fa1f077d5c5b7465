package multiply

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// operandPair builds two operands of the given lengths from a seed, so gopter
// shrinks towards short, reproducible inputs.
func operandPair(la, lb int, seed uint64) (string, string) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return randomDigits(r, la), randomDigits(r, lb)
}

// TestEnginesAgreeWithBig_PropertyBased checks every engine against math/big
// on random operand lengths, with thresholds low enough that recursion,
// forking and unbalanced equalization are all exercised.
func TestEnginesAgreeWithBig_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	opts := Options{RecursionThreshold: 8, ParallelThreshold: 32, Workers: 4}
	for _, e := range allEngines(opts) {
		properties.Property(e.Name()+" agrees with math/big", prop.ForAll(
			func(la, lb int, seed uint64) bool {
				a, b := operandPair(la, lb, seed)
				got, err := e.MultiplyStrings(a, b)
				if err != nil {
					t.Logf("%s: unexpected error %v", e.Name(), err)
					return false
				}
				return got == bigProduct(a, b)
			},
			gen.IntRange(1, 400),
			gen.IntRange(1, 400),
			gen.UInt64(),
		))
	}
	properties.TestingRun(t)
}

func TestAlgebraicProperties_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40
	properties := gopter.NewProperties(parameters)

	opts := Options{RecursionThreshold: 8, ParallelThreshold: 64, Workers: 4}
	for _, e := range allEngines(opts) {
		properties.Property(e.Name()+" is commutative", prop.ForAll(
			func(la, lb int, seed uint64) bool {
				a, b := operandPair(la, lb, seed)
				ab, _ := e.MultiplyStrings(a, b)
				ba, _ := e.MultiplyStrings(b, a)
				return ab == ba
			},
			gen.IntRange(1, 300),
			gen.IntRange(1, 300),
			gen.UInt64(),
		))

		properties.Property(e.Name()+" has zero and one", prop.ForAll(
			func(la int, seed uint64) bool {
				a, _ := operandPair(la, 1, seed)
				zero, _ := e.MultiplyStrings(a, "0")
				one, _ := e.MultiplyStrings("1", a)
				return zero == "0" && one == a
			},
			gen.IntRange(1, 300),
			gen.UInt64(),
		))

		properties.Property(e.Name()+" output length is len(a)+len(b) or one less", prop.ForAll(
			func(la, lb int, seed uint64) bool {
				a, b := operandPair(la, lb, seed)
				p, _ := e.MultiplyStrings(a, b)
				return len(p) == la+lb || len(p) == la+lb-1
			},
			gen.IntRange(1, 300),
			gen.IntRange(1, 300),
			gen.UInt64(),
		))

		properties.Property(e.Name()+" ignores leading zero padding", prop.ForAll(
			func(la, pad int, seed uint64) bool {
				a, b := operandPair(la, la, seed)
				plain, _ := e.MultiplyStrings(a, b)
				padded, _ := e.MultiplyStrings(strings.Repeat("0", pad)+a, b)
				return plain == padded
			},
			gen.IntRange(1, 200),
			gen.IntRange(0, 70),
			gen.UInt64(),
		))
	}
	properties.TestingRun(t)
}

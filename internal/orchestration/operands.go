package orchestration

import (
	"math/rand/v2"
	"strings"
)

// RandomOperand returns an n-digit decimal string drawn from r. The leading
// digit is 1-9 so the operand has exactly n significant digits.
func RandomOperand(r *rand.Rand, n int) string {
	if n <= 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(n)
	sb.WriteByte(byte('1' + r.IntN(9)))
	for i := 1; i < n; i++ {
		sb.WriteByte(byte('0' + r.IntN(10)))
	}
	return sb.String()
}

// OperandPair returns two n-digit operands that depend only on seed, so
// benchmark runs are reproducible.
func OperandPair(seed uint64, n int) (string, string) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	a := RandomOperand(r, n)
	b := RandomOperand(r, n)
	return a, b
}

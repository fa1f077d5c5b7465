package digits

import (
	"math/bits"
	"slices"

	apperrors "github.com/agbru/bigmul/internal/errors"
)

// Vector is a little-endian sequence of base-10 positions: index 0 holds the
// least significant digit. A canonical vector has every entry in [0,9] and
// no high-index zeros except the single zero of the value 0. Raw vectors
// produced by the engines may hold any int64 entries until normalized.
type Vector []int64

// Validate reports whether s is an acceptable operand: non-empty and made
// only of ASCII digits. The returned error is an *apperrors.InputError.
func Validate(s string) error {
	if len(s) == 0 {
		return apperrors.NewInputError(s, -1)
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < '0' || c > '9' {
			return apperrors.NewInputError(s, i)
		}
	}
	return nil
}

// Encode converts a decimal string into a little-endian digit vector. With
// padPow2 set, the length is rounded up to the next power of two and the
// extra high positions are zero.
func Encode(s string, padPow2 bool) (Vector, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	n := len(s)
	size := n
	if padPow2 {
		size = NextPow2(n)
	}
	v := make(Vector, size)
	for i := 0; i < n; i++ {
		v[i] = int64(s[n-1-i] - '0')
	}
	return v, nil
}

// Decode renders v most-significant-first. v may be raw; it is normalized on
// a copy, so the caller's vector is left untouched.
func Decode(v Vector) string {
	c := Normalize(slices.Clone(v))
	buf := make([]byte, len(c))
	for i, d := range c {
		buf[len(c)-1-i] = byte('0' + d)
	}
	return string(buf)
}

// NextPow2 returns the smallest power of two >= n (1 for n <= 1).
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Extend returns v zero-extended to length n. v is returned unchanged when it
// is already at least that long.
func Extend(v Vector, n int) Vector {
	if len(v) >= n {
		return v
	}
	out := make(Vector, n)
	copy(out, v)
	return out
}

// Part returns the positions [lo, hi) of v, clipped to len(v). Positions past
// the end are implicit zeros and are simply omitted.
func Part(v Vector, lo, hi int) Vector {
	hi = min(hi, len(v))
	if lo >= hi {
		return Vector{}
	}
	return v[lo:hi]
}

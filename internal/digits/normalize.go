package digits

import "github.com/cockroachdb/errors"

// Normalize converts a raw vector into canonical form in place and returns
// the (possibly re-sliced or extended) result.
//
// Carries move from low to high positions with floor division, so negative
// entries borrow from the next position. A positive final carry extends the
// vector. A negative final carry means the represented value is negative,
// which no correct multiplication can produce; Normalize panics.
func Normalize(v Vector) Vector {
	var carry int64
	for i := range v {
		q, r := floorDivMod(v[i]+carry, 10)
		v[i], carry = r, q
	}
	if carry < 0 {
		panic(errors.AssertionFailedf("digits: raw vector represents a negative value (final carry %d)", carry))
	}
	for carry > 0 {
		v = append(v, carry%10)
		carry /= 10
	}
	return Trim(v)
}

// Trim drops high-index zeros, keeping at least one position.
func Trim(v Vector) Vector {
	n := len(v)
	for n > 1 && v[n-1] == 0 {
		n--
	}
	if n == 0 {
		return Vector{0}
	}
	return v[:n]
}

// IsCanonical reports whether v is already in canonical form.
func IsCanonical(v Vector) bool {
	if len(v) == 0 {
		return false
	}
	for _, d := range v {
		if d < 0 || d > 9 {
			return false
		}
	}
	return len(v) == 1 || v[len(v)-1] != 0
}

// floorDivMod returns q, r with a = q*b + r and 0 <= r < b, for b > 0.
func floorDivMod(a, b int64) (q, r int64) {
	q, r = a/b, a%b
	if r < 0 {
		r += b
		q--
	}
	return q, r
}

package bignum

import (
	"errors"
	"math/bits"
)

// MaxLimbs is the maximum number of limbs allowed.
const MaxLimbs = 1_000_000

var (
	// ErrMaxLimbs indicates the numeric size limit was exceeded.
	ErrMaxLimbs = errors.New("numeric size limit exceeded")
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrUnderflow indicates an unsigned subtraction went below zero.
	ErrUnderflow = errors.New("unsigned underflow")
	// ErrNegativeShift indicates a shift by a negative bit count.
	ErrNegativeShift = errors.New("negative shift")
)

// BigUint is an immutable unsigned magnitude.
//
// Limbs are base-2^32 little-endian and always canonical: the most significant
// limb is non-zero and zero is the empty slice.
type BigUint struct {
	limbs []uint32
}

// UintZero returns a zero BigUint.
func UintZero() BigUint { return BigUint{} }

// UintFromUint64 creates a BigUint from a uint64.
func UintFromUint64(v uint64) BigUint {
	if v == 0 {
		return BigUint{}
	}
	lo := uint32(v)       //nolint:gosec // G115: truncation is intentional (low limb).
	hi := uint32(v >> 32) //nolint:gosec // G115: truncation is intentional (high limb).
	if hi == 0 {
		return BigUint{limbs: []uint32{lo}}
	}
	return BigUint{limbs: []uint32{lo, hi}}
}

// UintFromLimbs builds a BigUint from little-endian limbs. The input is copied.
func UintFromLimbs(limbs []uint32) BigUint {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return BigUint{}
	}
	out := make([]uint32, len(limbs))
	copy(out, limbs)
	return BigUint{limbs: out}
}

// Limbs returns a copy of the little-endian limbs.
func (u BigUint) Limbs() []uint32 {
	if len(u.limbs) == 0 {
		return nil
	}
	out := make([]uint32, len(u.limbs))
	copy(out, u.limbs)
	return out
}

// Len returns the number of limbs.
func (u BigUint) Len() int { return len(u.limbs) }

// IsZero reports whether the magnitude is zero.
func (u BigUint) IsZero() bool { return len(u.limbs) == 0 }

// IsOdd reports whether the magnitude is odd.
func (u BigUint) IsOdd() bool {
	return len(u.limbs) > 0 && u.limbs[0]&1 == 1
}

// BitLen returns the number of significant bits.
func (u BigUint) BitLen() int { return bitLenLimbs(u.limbs) }

// Cmp compares two BigUint values and returns -1, 0, or 1.
func (u BigUint) Cmp(v BigUint) int { return cmpLimbs(u.limbs, v.limbs) }

// Uint64 converts to uint64 if the value fits.
func (u BigUint) Uint64() (uint64, bool) {
	switch len(u.limbs) {
	case 0:
		return 0, true
	case 1:
		return uint64(u.limbs[0]), true
	case 2:
		return uint64(u.limbs[0]) | uint64(u.limbs[1])<<32, true
	default:
		return 0, false
	}
}

// UintAdd adds two BigUint values.
func UintAdd(a, b BigUint) (BigUint, error) {
	out := addLimbs(a.limbs, b.limbs)
	if len(out) > MaxLimbs {
		return BigUint{}, ErrMaxLimbs
	}
	return BigUint{limbs: out}, nil
}

// UintAddSmall adds a uint32 to a BigUint.
func UintAddSmall(u BigUint, v uint32) (BigUint, error) {
	if v == 0 {
		return u, nil
	}
	return UintAdd(u, BigUint{limbs: []uint32{v}})
}

// UintSub returns a-b, or ErrUnderflow when b > a.
func UintSub(a, b BigUint) (BigUint, error) {
	if cmpLimbs(a.limbs, b.limbs) < 0 {
		return BigUint{}, ErrUnderflow
	}
	return BigUint{limbs: subLimbs(a.limbs, b.limbs)}, nil
}

// UintMul multiplies two BigUint values.
func UintMul(a, b BigUint) (BigUint, error) {
	if a.IsZero() || b.IsZero() {
		return BigUint{}, nil
	}
	if len(a.limbs)+len(b.limbs) > MaxLimbs {
		return BigUint{}, ErrMaxLimbs
	}
	return BigUint{limbs: mulLimbs(a.limbs, b.limbs)}, nil
}

// UintMulSmall multiplies a BigUint by a uint32.
func UintMulSmall(u BigUint, m uint32) (BigUint, error) {
	if m == 0 || u.IsZero() {
		return BigUint{}, nil
	}
	if m == 1 {
		return u, nil
	}
	out := make([]uint32, len(u.limbs)+1)
	var carry uint64
	for i, limb := range u.limbs {
		prod := uint64(limb)*uint64(m) + carry
		out[i] = uint32(prod) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = prod >> 32
	}
	out[len(u.limbs)] = uint32(carry) //nolint:gosec // G115: carry fits in one limb.
	out = trimLimbs(out)
	if len(out) > MaxLimbs {
		return BigUint{}, ErrMaxLimbs
	}
	return BigUint{limbs: out}, nil
}

// UintDivModSmall divides a BigUint by a uint32.
func UintDivModSmall(u BigUint, d uint32) (q BigUint, r uint32, err error) {
	if d == 0 {
		return BigUint{}, 0, ErrDivByZero
	}
	if u.IsZero() {
		return BigUint{}, 0, nil
	}
	out, rem := divLimbsSmall(u.limbs, d)
	return BigUint{limbs: out}, rem, nil
}

// UintDivMod performs truncating division with remainder on two magnitudes.
//
// Single-limb divisors take a short-division path; longer divisors use
// Knuth's algorithm D.
func UintDivMod(a, b BigUint) (q, r BigUint, err error) {
	switch {
	case b.IsZero():
		return BigUint{}, BigUint{}, ErrDivByZero
	case a.IsZero():
		return BigUint{}, BigUint{}, nil
	case cmpLimbs(a.limbs, b.limbs) < 0:
		return BigUint{}, a, nil
	case len(b.limbs) == 1:
		out, rem := divLimbsSmall(a.limbs, b.limbs[0])
		if rem == 0 {
			return BigUint{limbs: out}, BigUint{}, nil
		}
		return BigUint{limbs: out}, BigUint{limbs: []uint32{rem}}, nil
	}
	quot, rem := divLimbsKnuth(a.limbs, b.limbs)
	return BigUint{limbs: quot}, BigUint{limbs: rem}, nil
}

// UintShl shifts u left by bitsCount bits.
func UintShl(u BigUint, bitsCount int) (BigUint, error) {
	if bitsCount < 0 {
		return BigUint{}, ErrNegativeShift
	}
	if u.IsZero() || bitsCount == 0 {
		return u, nil
	}
	wordShift := bitsCount / 32
	if len(u.limbs)+wordShift+1 > MaxLimbs {
		return BigUint{}, ErrMaxLimbs
	}
	out := make([]uint32, len(u.limbs)+wordShift+1)
	out[len(out)-1] = shlLimbs(out[wordShift:len(out)-1], u.limbs, uint(bitsCount%32))
	return BigUint{limbs: trimLimbs(out)}, nil
}

// UintShr shifts u right by bitsCount bits.
func UintShr(u BigUint, bitsCount int) (BigUint, error) {
	if bitsCount < 0 {
		return BigUint{}, ErrNegativeShift
	}
	if u.IsZero() || bitsCount == 0 {
		return u, nil
	}
	wordShift := bitsCount / 32
	if wordShift >= len(u.limbs) {
		return BigUint{}, nil
	}
	src := u.limbs[wordShift:]
	out := make([]uint32, len(src))
	shrLimbs(out, src, uint(bitsCount%32))
	return BigUint{limbs: trimLimbs(out)}, nil
}

// lowBitsNonZero reports whether any of the lowest n bits of u are set.
func lowBitsNonZero(u BigUint, n int) bool {
	if n <= 0 {
		return false
	}
	words := n / 32
	for i := 0; i < words && i < len(u.limbs); i++ {
		if u.limbs[i] != 0 {
			return true
		}
	}
	if rem := n % 32; rem != 0 && words < len(u.limbs) {
		return u.limbs[words]&(uint32(1)<<rem-1) != 0
	}
	return false
}

func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}

func bitLenLimbs(limbs []uint32) int {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return 0
	}
	return (len(limbs)-1)*32 + bits.Len32(limbs[len(limbs)-1])
}

func cmpLimbs(a, b []uint32) int {
	a = trimLimbs(a)
	b = trimLimbs(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func addLimbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return nil
	}
	out := make([]uint32, len(a)+1)
	var carry uint32
	for i := range a {
		var bv uint32
		if i < len(b) {
			bv = b[i]
		}
		out[i], carry = bits.Add32(a[i], bv, carry)
	}
	out[len(a)] = carry
	return trimLimbs(out)
}

// subLimbs returns a-b; the caller guarantees a >= b.
func subLimbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	copy(out, a)
	subInPlace(out, b)
	return trimLimbs(out)
}

func subInPlace(dst, sub []uint32) {
	var borrow uint32
	for i := range dst {
		var sv uint32
		if i < len(sub) {
			sv = sub[i]
		} else if borrow == 0 {
			return
		}
		dst[i], borrow = bits.Sub32(dst[i], sv, borrow)
	}
}

// addAt adds src into dst starting at limb offset off, propagating carries.
func addAt(dst, src []uint32, off int) {
	var carry uint32
	i := 0
	for ; i < len(src); i++ {
		dst[off+i], carry = bits.Add32(dst[off+i], src[i], carry)
	}
	for k := off + i; carry != 0 && k < len(dst); k++ {
		dst[k], carry = bits.Add32(dst[k], 0, carry)
	}
}

// shlLimbs writes src<<s into dst (len(dst) == len(src)) and returns the carry-out limb.
func shlLimbs(dst, src []uint32, s uint) uint32 {
	if s == 0 {
		copy(dst, src)
		return 0
	}
	var carry uint32
	for i, v := range src {
		dst[i] = v<<s | carry
		carry = v >> (32 - s)
	}
	return carry
}

// shrLimbs writes src>>s into dst (len(dst) == len(src)).
func shrLimbs(dst, src []uint32, s uint) {
	if s == 0 {
		copy(dst, src)
		return
	}
	for i := range src {
		v := src[i] >> s
		if i+1 < len(src) {
			v |= src[i+1] << (32 - s)
		}
		dst[i] = v
	}
}

func divLimbsSmall(limbs []uint32, d uint32) ([]uint32, uint32) {
	out := make([]uint32, len(limbs))
	var rem uint32
	for i := len(limbs) - 1; i >= 0; i-- {
		out[i], rem = bits.Div32(rem, limbs[i], d)
	}
	return trimLimbs(out), rem
}

// divLimbsKnuth divides u by v where len(v) >= 2 and u >= v.
func divLimbsKnuth(u, v []uint32) (quot, rem []uint32) {
	n := len(v)
	m := len(u) - n
	s := uint(bits.LeadingZeros32(v[n-1]))

	vn := make([]uint32, n)
	shlLimbs(vn, v, s)
	un := make([]uint32, len(u)+1)
	un[len(u)] = shlLimbs(un[:len(u)], u, s)

	const base = uint64(1) << 32
	vTop := uint64(vn[n-1])
	vNext := uint64(vn[n-2])
	quot = make([]uint32, m+1)

	for j := m; j >= 0; j-- {
		num := uint64(un[j+n])<<32 | uint64(un[j+n-1])
		qhat := num / vTop
		rhat := num % vTop
		for qhat >= base || qhat*vNext > rhat<<32|uint64(un[j+n-2]) {
			qhat--
			rhat += vTop
			if rhat >= base {
				break
			}
		}

		// un[j:j+n+1] -= qhat * vn
		var k int64
		for i := range n {
			p := qhat * uint64(vn[i])
			t := int64(un[i+j]) - k - int64(p&0xFFFF_FFFF) //nolint:gosec // G115: operands are below 2^32.
			un[i+j] = uint32(t)                             //nolint:gosec // G115: truncation is intentional (limb arithmetic).
			k = int64(p>>32) - t>>32                        //nolint:gosec // G115: p>>32 is below 2^32.
		}
		t := int64(un[j+n]) - k
		un[j+n] = uint32(t) //nolint:gosec // G115: truncation is intentional (limb arithmetic).

		quot[j] = uint32(qhat) //nolint:gosec // G115: qhat < 2^32 after correction.
		if t < 0 {
			// qhat was one too large; add the divisor back.
			quot[j]--
			var carry uint32
			for i := range n {
				un[i+j], carry = bits.Add32(un[i+j], vn[i], carry)
			}
			un[j+n] += carry
		}
	}

	rem = make([]uint32, n)
	shrLimbs(rem, un[:n], s)
	return trimLimbs(quot), trimLimbs(rem)
}

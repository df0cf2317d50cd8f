package bignum

import "fortio.org/safecast"

// BigInt is an immutable signed integer.
//
// The magnitude is canonical and zero is never negative, so every value has
// exactly one representation.
type BigInt struct {
	neg bool
	mag BigUint
}

// IntZero returns a zero BigInt.
func IntZero() BigInt { return BigInt{} }

// IntFromInt64 creates a BigInt from an int64.
func IntFromInt64(v int64) BigInt {
	switch {
	case v == 0:
		return BigInt{}
	case v > 0:
		return BigInt{mag: UintFromUint64(uint64(v))}
	default:
		// -(v+1)+1 avoids overflow on MinInt64.
		u := uint64(-(v + 1)) + 1 //nolint:gosec // G115: -(v+1) is non-negative.
		return BigInt{neg: true, mag: UintFromUint64(u)}
	}
}

// IntFromUint64 creates a BigInt from a uint64.
func IntFromUint64(v uint64) BigInt {
	return BigInt{mag: UintFromUint64(v)}
}

// IntFromUint creates a BigInt with the given sign and magnitude.
func IntFromUint(neg bool, mag BigUint) BigInt {
	if mag.IsZero() {
		return BigInt{}
	}
	return BigInt{neg: neg, mag: mag}
}

// IntFromLimbs creates a BigInt from a sign and little-endian limbs.
func IntFromLimbs(neg bool, limbs []uint32) BigInt {
	return IntFromUint(neg, UintFromLimbs(limbs))
}

// IsZero reports whether the integer is zero.
func (i BigInt) IsZero() bool { return i.mag.IsZero() }

// IsNeg reports whether the integer is below zero.
func (i BigInt) IsNeg() bool { return i.neg }

// Sign returns -1, 0 or +1.
func (i BigInt) Sign() int {
	switch {
	case i.mag.IsZero():
		return 0
	case i.neg:
		return -1
	default:
		return 1
	}
}

// Abs returns the magnitude.
func (i BigInt) Abs() BigUint { return i.mag }

// Negated returns -i.
func (i BigInt) Negated() BigInt {
	if i.IsZero() {
		return BigInt{}
	}
	return BigInt{neg: !i.neg, mag: i.mag}
}

// Cmp compares two BigInt values.
func (i BigInt) Cmp(j BigInt) int {
	if i.neg != j.neg {
		if i.neg {
			return -1
		}
		return 1
	}
	cmp := i.mag.Cmp(j.mag)
	if i.neg {
		return -cmp
	}
	return cmp
}

// Int64 converts to int64 if the value fits.
func (i BigInt) Int64() (int64, bool) {
	mag, ok := i.mag.Uint64()
	if !ok {
		return 0, false
	}
	if !i.neg {
		v, err := safecast.Conv[int64](mag)
		return v, err == nil
	}
	const minMag = uint64(1) << 63
	switch {
	case mag > minMag:
		return 0, false
	case mag == minMag:
		return -1 << 63, true
	default:
		return -int64(mag), true //nolint:gosec // G115: mag < 2^63 here.
	}
}

// BitLen returns the bit length of the magnitude.
func (i BigInt) BitLen() int { return i.mag.BitLen() }

// String returns the decimal representation.
func (i BigInt) String() string { return FormatInt(i) }

// IntAdd adds two BigInt values.
func IntAdd(a, b BigInt) (BigInt, error) {
	if a.neg == b.neg {
		sum, err := UintAdd(a.mag, b.mag)
		if err != nil {
			return BigInt{}, err
		}
		return IntFromUint(a.neg, sum), nil
	}
	switch cmp := a.mag.Cmp(b.mag); {
	case cmp == 0:
		return BigInt{}, nil
	case cmp > 0:
		return IntFromUint(a.neg, BigUint{limbs: subLimbs(a.mag.limbs, b.mag.limbs)}), nil
	default:
		return IntFromUint(b.neg, BigUint{limbs: subLimbs(b.mag.limbs, a.mag.limbs)}), nil
	}
}

// IntSub subtracts b from a.
func IntSub(a, b BigInt) (BigInt, error) {
	return IntAdd(a, b.Negated())
}

// IntMul multiplies two BigInt values.
func IntMul(a, b BigInt) (BigInt, error) {
	prod, err := UintMul(a.mag, b.mag)
	if err != nil {
		return BigInt{}, err
	}
	return IntFromUint(a.neg != b.neg, prod), nil
}

// IntDivMod performs truncating division: the quotient rounds toward zero and
// the remainder takes the sign of the dividend.
func IntDivMod(a, b BigInt) (q, r BigInt, err error) {
	if b.IsZero() {
		return BigInt{}, BigInt{}, ErrDivByZero
	}
	if a.IsZero() {
		return BigInt{}, BigInt{}, nil
	}
	qMag, rMag, err := UintDivMod(a.mag, b.mag)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	return IntFromUint(a.neg != b.neg, qMag), IntFromUint(a.neg, rMag), nil
}

// IntPow returns base**exp by repeated squaring.
func IntPow(base BigInt, exp uint64) (BigInt, error) {
	result := IntFromInt64(1)
	sq := base
	for exp > 0 {
		if exp&1 == 1 {
			var err error
			result, err = IntMul(result, sq)
			if err != nil {
				return BigInt{}, err
			}
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		var err error
		sq, err = IntMul(sq, sq)
		if err != nil {
			return BigInt{}, err
		}
	}
	return result, nil
}

// UintGCD returns the greatest common divisor of a and b.
func UintGCD(a, b BigUint) BigUint {
	for !b.IsZero() {
		_, r, err := UintDivMod(a, b)
		if err != nil {
			return BigUint{}
		}
		a, b = b, r
	}
	return a
}

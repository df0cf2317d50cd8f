package bignum

import "math"

// IntToFloat64 converts i to the nearest float64, ties to even.
// Magnitudes beyond the float64 range become ±Inf.
func IntToFloat64(i BigInt) float64 {
	f := uintToFloat64(i.mag, false, 0)
	if i.neg {
		return -f
	}
	return f
}

// QuoToFloat64 returns the float64 nearest to num/den.
// den must be non-zero.
func QuoToFloat64(num, den BigInt) (float64, error) {
	if den.IsZero() {
		return 0, ErrDivByZero
	}
	neg := num.neg != den.neg
	if num.IsZero() {
		if neg {
			return math.Copysign(0, -1), nil
		}
		return 0, nil
	}

	// Scale so the integer quotient carries at least 65 significant bits.
	shift := 65 - (num.mag.BitLen() - den.mag.BitLen())
	n, d := num.mag, den.mag
	var err error
	if shift > 0 {
		n, err = UintShl(n, shift)
	} else {
		d, err = UintShl(d, -shift)
	}
	if err != nil {
		return 0, err
	}
	q, r, err := UintDivMod(n, d)
	if err != nil {
		return 0, err
	}
	f := uintToFloat64(q, !r.IsZero(), -shift)
	if neg {
		return -f, nil
	}
	return f, nil
}

// uintToFloat64 returns u * 2^exp rounded once to float64. sticky marks
// non-zero bits below u that were already discarded; callers setting it pass
// more than 64 significant bits.
func uintToFloat64(u BigUint, sticky bool, exp int) float64 {
	bl := u.BitLen()
	if bl == 0 {
		return 0
	}
	var top uint64
	if bl <= 64 {
		top, _ = u.Uint64()
	} else {
		drop := bl - 64
		shifted, _ := UintShr(u, drop) // drop is positive
		top, _ = shifted.Uint64()
		if sticky || lowBitsNonZero(u, drop) {
			top |= 1
		}
		exp += drop
	}
	// float64(top) is the single rounding step; 64 > 53+2 keeps the
	// guard and sticky information intact.
	return math.Ldexp(float64(top), exp)
}

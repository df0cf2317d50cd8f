package bignum

// IntFloorDivMod divides a by d rounding the quotient toward negative infinity.
//
// The result satisfies a == q*d + r with |r| < |d|, and r is either zero or
// has the sign of d. The truncating kernel result is corrected when the
// remainder and divisor disagree in sign:
//
//	q = q0 - 1
//	r = r0 + d
func IntFloorDivMod(a, d BigInt) (q, r BigInt, err error) {
	if d.IsZero() {
		return BigInt{}, BigInt{}, ErrDivByZero
	}
	if a.IsZero() {
		return BigInt{}, BigInt{}, nil
	}
	q, r, err = IntDivMod(a, d)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	if r.IsZero() || r.neg == d.neg {
		return q, r, nil
	}
	q, err = IntSub(q, IntFromInt64(1))
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	r, err = IntAdd(r, d)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	return q, r, nil
}

// IntFloorDiv returns floor(a/d).
func IntFloorDiv(a, d BigInt) (BigInt, error) {
	q, _, err := IntFloorDivMod(a, d)
	return q, err
}

// IntFloorMod returns a - d*floor(a/d).
func IntFloorMod(a, d BigInt) (BigInt, error) {
	_, r, err := IntFloorDivMod(a, d)
	return r, err
}

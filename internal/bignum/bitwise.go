package bignum

// Bitwise operations on BigInt use infinite two's complement semantics.
// For negative x they work on ^x == |x|-1, which is non-negative.

// IntAnd returns a & b.
func IntAnd(a, b BigInt) BigInt {
	switch {
	case !a.neg && !b.neg:
		return IntFromUint(false, BigUint{limbs: andLimbs(a.mag.limbs, b.mag.limbs)})
	case a.neg && b.neg:
		// -(((|a|-1) | (|b|-1)) + 1)
		or := orLimbs(decMag(a.mag).limbs, decMag(b.mag).limbs)
		return IntFromUint(true, incMag(BigUint{limbs: or}))
	default:
		if a.neg {
			a, b = b, a
		}
		// a >= 0, b < 0: a &^ (|b|-1)
		return IntFromUint(false, BigUint{limbs: andNotLimbs(a.mag.limbs, decMag(b.mag).limbs)})
	}
}

// IntOr returns a | b.
func IntOr(a, b BigInt) BigInt {
	switch {
	case !a.neg && !b.neg:
		return IntFromUint(false, BigUint{limbs: orLimbs(a.mag.limbs, b.mag.limbs)})
	case a.neg && b.neg:
		// -(((|a|-1) & (|b|-1)) + 1)
		and := andLimbs(decMag(a.mag).limbs, decMag(b.mag).limbs)
		return IntFromUint(true, incMag(BigUint{limbs: and}))
	default:
		if a.neg {
			a, b = b, a
		}
		// a >= 0, b < 0: -(((|b|-1) &^ a) + 1)
		andNot := andNotLimbs(decMag(b.mag).limbs, a.mag.limbs)
		return IntFromUint(true, incMag(BigUint{limbs: andNot}))
	}
}

// IntXor returns a ^ b.
func IntXor(a, b BigInt) BigInt {
	switch {
	case !a.neg && !b.neg:
		return IntFromUint(false, BigUint{limbs: xorLimbs(a.mag.limbs, b.mag.limbs)})
	case a.neg && b.neg:
		return IntFromUint(false, BigUint{limbs: xorLimbs(decMag(a.mag).limbs, decMag(b.mag).limbs)})
	default:
		if a.neg {
			a, b = b, a
		}
		// -((a ^ (|b|-1)) + 1)
		x := xorLimbs(a.mag.limbs, decMag(b.mag).limbs)
		return IntFromUint(true, incMag(BigUint{limbs: x}))
	}
}

// IntNot returns ^a == -a-1.
func IntNot(a BigInt) BigInt {
	if a.neg {
		return IntFromUint(false, decMag(a.mag))
	}
	return IntFromUint(true, incMag(a.mag))
}

// IntShl returns a << n.
func IntShl(a BigInt, n int) (BigInt, error) {
	mag, err := UintShl(a.mag, n)
	if err != nil {
		return BigInt{}, err
	}
	return IntFromUint(a.neg, mag), nil
}

// IntShr returns a >> n, rounding toward negative infinity.
func IntShr(a BigInt, n int) (BigInt, error) {
	if !a.neg {
		mag, err := UintShr(a.mag, n)
		if err != nil {
			return BigInt{}, err
		}
		return IntFromUint(false, mag), nil
	}
	// -(((|a|-1) >> n) + 1)
	mag, err := UintShr(decMag(a.mag), n)
	if err != nil {
		return BigInt{}, err
	}
	return IntFromUint(true, incMag(mag)), nil
}

// decMag returns u-1 for u > 0.
func decMag(u BigUint) BigUint {
	return BigUint{limbs: subLimbs(u.limbs, []uint32{1})}
}

// incMag returns u+1.
func incMag(u BigUint) BigUint {
	return BigUint{limbs: addLimbs(u.limbs, []uint32{1})}
}

func andLimbs(a, b []uint32) []uint32 {
	n := min(len(a), len(b))
	out := make([]uint32, n)
	for i := range n {
		out[i] = a[i] & b[i]
	}
	return trimLimbs(out)
}

func andNotLimbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	for i := range a {
		out[i] = a[i]
		if i < len(b) {
			out[i] &^= b[i]
		}
	}
	return trimLimbs(out)
}

func orLimbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint32, len(a))
	copy(out, a)
	for i := range b {
		out[i] |= b[i]
	}
	return trimLimbs(out)
}

func xorLimbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint32, len(a))
	copy(out, a)
	for i := range b {
		out[i] ^= b[i]
	}
	return trimLimbs(out)
}

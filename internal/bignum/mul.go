package bignum

import "math/bits"

// karatsubaThreshold is the operand size, in limbs, below which schoolbook
// multiplication is used.
var karatsubaThreshold = 40

func mulLimbs(x, y []uint32) []uint32 {
	if len(x) < karatsubaThreshold || len(y) < karatsubaThreshold {
		return mulSchoolbook(x, y)
	}
	return mulKaratsuba(x, y)
}

func mulSchoolbook(x, y []uint32) []uint32 {
	if len(x) == 0 || len(y) == 0 {
		return nil
	}
	out := make([]uint32, len(x)+len(y))
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		var carry uint32
		for j, yj := range y {
			hi, lo := bits.Mul32(xi, yj)
			var c uint32
			lo, c = bits.Add32(lo, out[i+j], 0)
			hi += c
			lo, c = bits.Add32(lo, carry, 0)
			hi += c
			out[i+j] = lo
			carry = hi
		}
		out[i+len(y)] = carry
	}
	return trimLimbs(out)
}

// mulKaratsuba splits both operands at m limbs:
//
//	x*y = z2*B^2m + (z1-z2-z0)*B^m + z0
//	z0 = x0*y0, z2 = x1*y1, z1 = (x0+x1)*(y0+y1)
func mulKaratsuba(x, y []uint32) []uint32 {
	m := max(len(x), len(y)) / 2
	x0, x1 := splitLimbs(x, m)
	y0, y1 := splitLimbs(y, m)

	z0 := mulLimbs(x0, y0)
	z2 := mulLimbs(x1, y1)
	z1 := mulLimbs(addLimbs(x0, x1), addLimbs(y0, y1))
	z1 = subLimbs(z1, z0)
	z1 = subLimbs(z1, z2)

	out := make([]uint32, len(x)+len(y)+1)
	addAt(out, z0, 0)
	addAt(out, z1, m)
	addAt(out, z2, 2*m)
	return trimLimbs(out)
}

func splitLimbs(x []uint32, m int) (lo, hi []uint32) {
	if len(x) <= m {
		return trimLimbs(x), nil
	}
	return trimLimbs(x[:m]), trimLimbs(x[m:])
}

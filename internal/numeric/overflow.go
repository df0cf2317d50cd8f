package numeric

import (
	"math"

	"numtower/internal/bignum"
)

// AddInt64Checked returns (a+b, ok). ok is false on signed overflow.
func AddInt64Checked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// SubInt64Checked returns (a-b, ok). ok is false on signed overflow.
func SubInt64Checked(a, b int64) (int64, bool) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

// MulInt64Checked returns (a*b, ok). ok is false on signed overflow.
func MulInt64Checked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	res := a * b
	if res/b != a {
		return 0, false
	}
	return res, true
}

// FloorDivModInt64 returns the floored quotient and remainder of a/b.
// ok is false when b is zero or the quotient overflows (MinInt64 / -1).
func FloorDivModInt64(a, b int64) (q, r int64, ok bool) {
	if b == 0 || (a == math.MinInt64 && b == -1) {
		return 0, 0, false
	}
	q, r = a/b, a%b
	if r != 0 && (r < 0) != (b < 0) {
		q--
		r += b
	}
	return q, r, true
}

func intAdd(x, y Int) (Int, error) {
	if !x.isBig && !y.isBig {
		if v, ok := AddInt64Checked(x.small, y.small); ok {
			return IntOf(v), nil
		}
	}
	res, err := bignum.IntAdd(x.Big(), y.Big())
	if err != nil {
		return Int{}, bignumErr("+", err)
	}
	return IntFromBig(res), nil
}

func intSub(x, y Int) (Int, error) {
	if !x.isBig && !y.isBig {
		if v, ok := SubInt64Checked(x.small, y.small); ok {
			return IntOf(v), nil
		}
	}
	res, err := bignum.IntSub(x.Big(), y.Big())
	if err != nil {
		return Int{}, bignumErr("-", err)
	}
	return IntFromBig(res), nil
}

func intMul(x, y Int) (Int, error) {
	if !x.isBig && !y.isBig {
		if v, ok := MulInt64Checked(x.small, y.small); ok {
			return IntOf(v), nil
		}
	}
	res, err := bignum.IntMul(x.Big(), y.Big())
	if err != nil {
		return Int{}, bignumErr("*", err)
	}
	return IntFromBig(res), nil
}

// intFloorDivMod is the integer/integer path of division. A zero divisor
// fails before any kernel runs.
func intFloorDivMod(op string, x, y Int) (q, r Int, err error) {
	if y.IsZero() {
		return Int{}, Int{}, zeroDivision(op)
	}
	if x.IsZero() {
		return Int{}, Int{}, nil
	}
	if !x.isBig && !y.isBig {
		if qs, rs, ok := FloorDivModInt64(x.small, y.small); ok {
			return IntOf(qs), IntOf(rs), nil
		}
	}
	qb, rb, err := bignum.IntFloorDivMod(x.Big(), y.Big())
	if err != nil {
		return Int{}, Int{}, bignumErr(op, err)
	}
	return IntFromBig(qb), IntFromBig(rb), nil
}

// intFloorMod is the remainder half of intFloorDivMod.
func intFloorMod(op string, x, y Int) (Int, error) {
	if y.IsZero() {
		return Int{}, zeroDivision(op)
	}
	if !x.isBig && !y.isBig {
		if _, rs, ok := FloorDivModInt64(x.small, y.small); ok {
			return IntOf(rs), nil
		}
	}
	r, err := bignum.IntFloorMod(x.Big(), y.Big())
	if err != nil {
		return Int{}, bignumErr(op, err)
	}
	return IntFromBig(r), nil
}

// intPow raises x to a non-negative power.
func intPow(x Int, exp uint64) (Int, error) {
	if !x.isBig {
		switch x.small {
		case 0:
			if exp == 0 {
				return IntOf(1), nil
			}
			return Int{}, nil
		case 1:
			return IntOf(1), nil
		case -1:
			if exp%2 == 0 {
				return IntOf(1), nil
			}
			return IntOf(-1), nil
		}
	}
	base := x.Big()
	if floor := uint64(base.BitLen() - 1); floor > 0 && exp > uint64(bignum.MaxLimbs)*32/floor {
		return Int{}, &Error{Code: CodeRange, Op: "**", Message: "integer size limit exceeded"}
	}
	res, err := bignum.IntPow(base, exp)
	if err != nil {
		return Int{}, bignumErr("**", err)
	}
	return IntFromBig(res), nil
}

package numeric

import (
	"math"

	"numtower/internal/bignum"
)

// operator holds the kernels of one binary operator across the tower. A nil
// kernel means the operator is undefined for that representation.
type operator struct {
	sym    string
	ints   func(x, y Int) (Value, Value, error)
	floats func(x, y float64) (Value, Value, error)
	rats   func(x, y Rational) (Value, Value, error)
}

func one(v Value, err error) (Value, Value, error) { return v, nil, err }

var (
	opAdd = &operator{
		sym:    "+",
		ints:   func(x, y Int) (Value, Value, error) { return one(intAdd(x, y)) },
		floats: func(x, y float64) (Value, Value, error) { return Float(x + y), nil, nil },
		rats:   func(x, y Rational) (Value, Value, error) { return one(ratAdd(x, y)) },
	}
	opSub = &operator{
		sym:    "-",
		ints:   func(x, y Int) (Value, Value, error) { return one(intSub(x, y)) },
		floats: func(x, y float64) (Value, Value, error) { return Float(x - y), nil, nil },
		rats:   func(x, y Rational) (Value, Value, error) { return one(ratSub(x, y)) },
	}
	opMul = &operator{
		sym:    "*",
		ints:   func(x, y Int) (Value, Value, error) { return one(intMul(x, y)) },
		floats: func(x, y float64) (Value, Value, error) { return Float(x * y), nil, nil },
		rats:   func(x, y Rational) (Value, Value, error) { return one(ratMul(x, y)) },
	}
	opDiv = &operator{
		sym: "/",
		ints: func(x, y Int) (Value, Value, error) {
			q, _, err := intFloorDivMod("/", x, y)
			return one(q, err)
		},
		floats: func(x, y float64) (Value, Value, error) { return Float(x / y), nil, nil },
		rats:   func(x, y Rational) (Value, Value, error) { return one(ratQuo("/", x, y)) },
	}
	opMod = &operator{
		sym: "%",
		ints: func(x, y Int) (Value, Value, error) {
			r, err := intFloorMod("%", x, y)
			return one(r, err)
		},
		floats: func(x, y float64) (Value, Value, error) { return Float(floatMod(x, y)), nil, nil },
		rats: func(x, y Rational) (Value, Value, error) {
			_, m, err := ratDivMod("%", x, y)
			return one(m, err)
		},
	}
	opDivMod = &operator{
		sym: "divmod",
		ints: func(x, y Int) (Value, Value, error) {
			q, r, err := intFloorDivMod("divmod", x, y)
			if err != nil {
				return nil, nil, err
			}
			return q, r, nil
		},
		floats: func(x, y float64) (Value, Value, error) {
			q, r, err := floatDivMod("divmod", x, y)
			if err != nil {
				return nil, nil, err
			}
			return q, r, nil
		},
		rats: func(x, y Rational) (Value, Value, error) {
			q, m, err := ratDivMod("divmod", x, y)
			if err != nil {
				return nil, nil, err
			}
			return q, m, nil
		},
	}
	opFDiv = &operator{
		sym: "fdiv",
		ints: func(x, y Int) (Value, Value, error) {
			if y.IsZero() {
				return Float(x.Float64() / 0), nil, nil
			}
			f, err := bignum.QuoToFloat64(x.Big(), y.Big())
			if err != nil {
				return nil, nil, bignumErr("fdiv", err)
			}
			return Float(f), nil, nil
		},
		floats: func(x, y float64) (Value, Value, error) { return Float(x / y), nil, nil },
		rats: func(x, y Rational) (Value, Value, error) {
			if y.IsZero() {
				return Float(x.Float64() / 0), nil, nil
			}
			q, err := ratQuo("fdiv", x, y)
			if err != nil {
				return nil, nil, err
			}
			return Float(q.Float64()), nil, nil
		},
	}
	opPow = &operator{
		sym:    "**",
		ints:   func(x, y Int) (Value, Value, error) { return one(powInt(x, y)) },
		floats: func(x, y float64) (Value, Value, error) { return Float(math.Pow(x, y)), nil, nil },
		rats:   func(x, y Rational) (Value, Value, error) { return one(powRational(x, y)) },
	}
	opAnd = &operator{
		sym:  "&",
		ints: func(x, y Int) (Value, Value, error) { return IntFromBig(bignum.IntAnd(x.Big(), y.Big())), nil, nil },
	}
	opOr = &operator{
		sym:  "|",
		ints: func(x, y Int) (Value, Value, error) { return IntFromBig(bignum.IntOr(x.Big(), y.Big())), nil, nil },
	}
	opXor = &operator{
		sym:  "^",
		ints: func(x, y Int) (Value, Value, error) { return IntFromBig(bignum.IntXor(x.Big(), y.Big())), nil, nil },
	}
	opShl = &operator{
		sym:  "<<",
		ints: func(x, y Int) (Value, Value, error) { return one(shift("<<", x, y, true)) },
	}
	opShr = &operator{
		sym:  ">>",
		ints: func(x, y Int) (Value, Value, error) { return one(shift(">>", x, y, false)) },
	}
)

var operators = map[string]*operator{
	"+": opAdd, "-": opSub, "*": opMul, "/": opDiv, "%": opMod, "divmod": opDivMod,
	"fdiv": opFDiv, "**": opPow, "&": opAnd, "|": opOr, "^": opXor, "<<": opShl, ">>": opShr,
}

// powInt raises x to y. Negative exponents produce a Rational.
func powInt(x, y Int) (Value, error) {
	if v, ok := trivialPow(x, y); ok {
		if y.Sign() < 0 {
			if v.IsZero() {
				return nil, zeroDivision("**")
			}
			return NewRational(v, IntOf(1))
		}
		return v, nil
	}
	if y.Sign() >= 0 {
		exp, ok := y.Int64()
		if !ok {
			return nil, &Error{Code: CodeRange, Op: "**", Message: "exponent too large"}
		}
		return intPow(x, uint64(exp))
	}
	if x.IsZero() {
		return nil, zeroDivision("**")
	}
	neg, ok := y.Neg().Int64()
	if !ok {
		return nil, &Error{Code: CodeRange, Op: "**", Message: "exponent too large"}
	}
	den, err := intPow(x, uint64(neg))
	if err != nil {
		return nil, err
	}
	return NewRational(IntOf(1), den)
}

// trivialPow handles bases 0, 1 and -1, whose powers need no exponent range.
// A zero result with a negative exponent is a division by zero for the caller.
func trivialPow(x, y Int) (Int, bool) {
	if x.isBig {
		return Int{}, false
	}
	switch x.small {
	case 0:
		if y.IsZero() {
			return IntOf(1), true
		}
		return Int{}, true
	case 1:
		return IntOf(1), true
	case -1:
		if y.Big().Abs().IsOdd() {
			return IntOf(-1), true
		}
		return IntOf(1), true
	}
	return Int{}, false
}

// powRational keeps exact results for integral exponents.
func powRational(x, y Rational) (Value, error) {
	if y.Den().Cmp(IntOf(1)) != 0 {
		return Float(math.Pow(x.Float64(), y.Float64())), nil
	}
	exp := y.Num()
	if exp.Sign() < 0 {
		if x.IsZero() {
			return nil, zeroDivision("**")
		}
		x = Rational{num: x.Den().Big(), den: x.num}
		if x.den.IsNeg() {
			x = Rational{num: x.num.Negated(), den: x.den.Negated()}
		}
		exp = exp.Neg()
	}
	e, ok := exp.Int64()
	if !ok {
		return nil, &Error{Code: CodeRange, Op: "**", Message: "exponent too large"}
	}
	num, err := intPow(x.Num(), uint64(e))
	if err != nil {
		return nil, err
	}
	den, err := intPow(x.Den(), uint64(e))
	if err != nil {
		return nil, err
	}
	return NewRational(num, den)
}

// shift moves x by y bits; a negative count shifts the other way and right
// shifts floor toward negative infinity.
func shift(op string, x, y Int, left bool) (Value, error) {
	if y.Sign() < 0 {
		left = !left
		y = y.Neg()
	}
	n, ok := y.Int64()
	if !ok || n > int64(bignum.MaxLimbs)*32 {
		if !left {
			if x.Sign() < 0 {
				return IntOf(-1), nil
			}
			return IntOf(0), nil
		}
		if x.IsZero() {
			return IntOf(0), nil
		}
		return nil, &Error{Code: CodeRange, Op: op, Message: "shift width too big"}
	}
	var (
		res bignum.BigInt
		err error
	)
	if left {
		res, err = bignum.IntShl(x.Big(), int(n))
	} else {
		res, err = bignum.IntShr(x.Big(), int(n))
	}
	if err != nil {
		return nil, bignumErr(op, err)
	}
	return IntFromBig(res), nil
}

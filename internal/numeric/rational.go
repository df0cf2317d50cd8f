package numeric

import (
	"numtower/internal/bignum"
)

// Rational is an exact ratio kept in lowest terms with a positive denominator.
type Rational struct {
	num bignum.BigInt
	den bignum.BigInt
}

// NewRational returns num/den reduced. A zero denominator fails with
// ZeroDivisionError.
func NewRational(num, den Int) (Rational, error) {
	return newRational(num.Big(), den.Big())
}

// RationalOf is x/1.
func RationalOf(x Int) Rational {
	return Rational{num: x.Big(), den: bignum.IntFromInt64(1)}
}

func newRational(num, den bignum.BigInt) (Rational, error) {
	if den.IsZero() {
		return Rational{}, zeroDivision("/")
	}
	if den.IsNeg() {
		num, den = num.Negated(), den.Negated()
	}
	if num.IsZero() {
		return Rational{num: bignum.IntZero(), den: bignum.IntFromInt64(1)}, nil
	}
	g := bignum.IntFromUint(false, bignum.UintGCD(num.Abs(), den.Abs()))
	if g.Cmp(bignum.IntFromInt64(1)) != 0 {
		var err error
		if num, _, err = bignum.IntDivMod(num, g); err != nil {
			return Rational{}, bignumErr("/", err)
		}
		if den, _, err = bignum.IntDivMod(den, g); err != nil {
			return Rational{}, bignumErr("/", err)
		}
	}
	return Rational{num: num, den: den}, nil
}

// Kind implements Value.
func (Rational) Kind() Kind { return KindRational }

// Num returns the numerator.
func (r Rational) Num() Int { return IntFromBig(r.num) }

// Den returns the denominator; it is 1 for the zero value too.
func (r Rational) Den() Int {
	if r.den.IsZero() {
		return IntOf(1)
	}
	return IntFromBig(r.den)
}

func (r Rational) IsZero() bool { return r.num.IsZero() }

// String formats r as "num/den", e.g. "3/2" or "3/1".
func (r Rational) String() string {
	return r.Num().String() + "/" + r.Den().String()
}

// Float64 returns the nearest float64.
func (r Rational) Float64() float64 {
	f, err := bignum.QuoToFloat64(r.num, r.Den().Big())
	if err != nil {
		return 0
	}
	return f
}

func ratAdd(a, b Rational) (Rational, error) {
	// a/b + c/d = (ad + cb) / bd
	ad, err := bignum.IntMul(a.num, b.Den().Big())
	if err != nil {
		return Rational{}, bignumErr("+", err)
	}
	cb, err := bignum.IntMul(b.num, a.Den().Big())
	if err != nil {
		return Rational{}, bignumErr("+", err)
	}
	num, err := bignum.IntAdd(ad, cb)
	if err != nil {
		return Rational{}, bignumErr("+", err)
	}
	den, err := bignum.IntMul(a.Den().Big(), b.Den().Big())
	if err != nil {
		return Rational{}, bignumErr("+", err)
	}
	return newRational(num, den)
}

func ratNeg(a Rational) Rational {
	return Rational{num: a.num.Negated(), den: a.Den().Big()}
}

func ratSub(a, b Rational) (Rational, error) {
	return ratAdd(a, ratNeg(b))
}

func ratMul(a, b Rational) (Rational, error) {
	num, err := bignum.IntMul(a.num, b.num)
	if err != nil {
		return Rational{}, bignumErr("*", err)
	}
	den, err := bignum.IntMul(a.Den().Big(), b.Den().Big())
	if err != nil {
		return Rational{}, bignumErr("*", err)
	}
	return newRational(num, den)
}

// ratQuo is exact division; a zero divisor is a ZeroDivisionError.
func ratQuo(op string, a, b Rational) (Rational, error) {
	if b.IsZero() {
		return Rational{}, zeroDivision(op)
	}
	num, err := bignum.IntMul(a.num, b.Den().Big())
	if err != nil {
		return Rational{}, bignumErr(op, err)
	}
	den, err := bignum.IntMul(a.Den().Big(), b.num)
	if err != nil {
		return Rational{}, bignumErr(op, err)
	}
	return newRational(num, den)
}

// ratFloor returns the largest integer not above r.
func ratFloor(r Rational) (Int, error) {
	q, err := bignum.IntFloorDiv(r.num, r.Den().Big())
	if err != nil {
		return Int{}, bignumErr("floor", err)
	}
	return IntFromBig(q), nil
}

// ratDivMod is Rational#divmod: floor(a/b) and a - b*floor(a/b).
func ratDivMod(op string, a, b Rational) (Int, Rational, error) {
	quo, err := ratQuo(op, a, b)
	if err != nil {
		return Int{}, Rational{}, err
	}
	q, err := ratFloor(quo)
	if err != nil {
		return Int{}, Rational{}, err
	}
	bq, err := ratMul(b, RationalOf(q))
	if err != nil {
		return Int{}, Rational{}, err
	}
	m, err := ratSub(a, bq)
	if err != nil {
		return Int{}, Rational{}, err
	}
	return q, m, nil
}

package numeric

import (
	"math"
	"strconv"
	"strings"

	"numtower/internal/bignum"
)

// Float is an IEEE-754 double. Division by zero yields ±Inf or NaN.
type Float float64

// Kind implements Value.
func (Float) Kind() Kind { return KindFloat }

// String formats f the way Float#to_s does: shortest round-trip digits,
// always with a fractional part, exponent form outside [1e-4, 1e16).
func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	var sb strings.Builder
	if v < 0 {
		sb.WriteByte('-')
		v = -v
	}
	// "d.dddde±XX" gives the shortest digits and the decimal exponent.
	e := strconv.FormatFloat(v, 'e', -1, 64)
	mant, expStr, _ := strings.Cut(e, "e")
	digits := strings.Replace(mant, ".", "", 1)
	exp, _ := strconv.Atoi(expStr)
	decpt := exp + 1

	switch {
	case decpt > 0 && decpt <= 16:
		if decpt >= len(digits) {
			sb.WriteString(digits)
			sb.WriteString(strings.Repeat("0", decpt-len(digits)))
			sb.WriteString(".0")
		} else {
			sb.WriteString(digits[:decpt])
			sb.WriteByte('.')
			sb.WriteString(digits[decpt:])
		}
	case decpt <= 0 && decpt > -4:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -decpt))
		sb.WriteString(digits)
	default:
		sb.WriteByte(digits[0])
		sb.WriteByte('.')
		if len(digits) > 1 {
			sb.WriteString(digits[1:])
		} else {
			sb.WriteByte('0')
		}
		sb.WriteByte('e')
		if exp < 0 {
			sb.WriteByte('-')
			exp = -exp
		} else {
			sb.WriteByte('+')
		}
		if exp < 10 {
			sb.WriteByte('0')
		}
		sb.WriteString(strconv.Itoa(exp))
	}
	return sb.String()
}

// floatMod returns x modulo y with the sign of y. y == 0 yields NaN.
func floatMod(x, y float64) float64 {
	if math.IsInf(y, 0) && !math.IsInf(x, 0) && !math.IsNaN(x) {
		if x == 0 || (x > 0) == (y > 0) {
			return x
		}
		return y
	}
	mod := math.Mod(x, y)
	if mod != 0 && (mod < 0) != (y < 0) {
		mod += y
	}
	return mod
}

// floatDivMod is Float#divmod: the quotient is floored and returned as Int.
func floatDivMod(op string, x, y float64) (Int, Float, error) {
	if y == 0 {
		return Int{}, 0, zeroDivision(op)
	}
	mod := floatMod(x, y)
	div := math.Floor((x - mod) / y)
	if math.IsInf(x, 0) && !math.IsInf(y, 0) {
		div = x
	}
	q, err := IntFromFloat(div)
	if err != nil {
		return Int{}, 0, err
	}
	return q, Float(mod), nil
}

// IntFromFloat truncates f toward zero. NaN and ±Inf fail with RangeError.
func IntFromFloat(f float64) (Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Int{}, &Error{Code: CodeRange, Message: Float(f).String()}
	}
	f = math.Trunc(f)
	if f >= -(1<<63) && f < 1<<63 {
		return IntOf(int64(f)), nil
	}
	frac, exp := math.Frexp(math.Abs(f))
	mant := uint64(math.Ldexp(frac, 53))
	mag, err := bignum.UintShl(bignum.UintFromUint64(mant), exp-53)
	if err != nil {
		return Int{}, bignumErr("to_i", err)
	}
	return IntFromBig(bignum.IntFromUint(f < 0, mag)), nil
}

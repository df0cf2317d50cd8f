package numeric

import (
	"math"
	"math/big"
	"strconv"

	"fortio.org/safecast"

	"numtower/internal/bignum"
)

// Int is an arbitrary-precision integer. Values that fit in int64 are kept
// in the fixed-width field; larger ones live in big. Every constructor
// demotes results that fit, so a given value has one representation.
type Int struct {
	small int64
	big   bignum.BigInt
	isBig bool
}

// IntOf returns v as an Int.
func IntOf(v int64) Int { return Int{small: v} }

// IntFromBig wraps b, demoting it to the fixed-width form when it fits.
func IntFromBig(b bignum.BigInt) Int {
	if v, ok := b.Int64(); ok {
		return Int{small: v}
	}
	return Int{big: b, isBig: true}
}

// ParseInt parses a decimal or 0x/0b/0o prefixed literal with optional sign.
func ParseInt(s string) (Int, error) {
	b, err := bignum.ParseInt(s)
	if err != nil {
		return Int{}, err
	}
	return IntFromBig(b), nil
}

// IntFromGo converts Go integer types and *big.Int into Int.
func IntFromGo(v any) (Int, bool) {
	switch x := v.(type) {
	case Int:
		return x, true
	case *Int:
		if x == nil {
			return Int{}, false
		}
		return *x, true
	case int:
		return IntOf(int64(x)), true
	case int8:
		return IntOf(int64(x)), true
	case int16:
		return IntOf(int64(x)), true
	case int32:
		return IntOf(int64(x)), true
	case int64:
		return IntOf(x), true
	case uint:
		return fromUint64(uint64(x)), true
	case uint8:
		return IntOf(int64(x)), true
	case uint16:
		return IntOf(int64(x)), true
	case uint32:
		return IntOf(int64(x)), true
	case uint64:
		return fromUint64(x), true
	case *big.Int:
		if x == nil {
			return Int{}, false
		}
		return fromStdBig(x), true
	default:
		return Int{}, false
	}
}

func fromUint64(v uint64) Int {
	if small, err := safecast.Conv[int64](v); err == nil {
		return IntOf(small)
	}
	return Int{big: bignum.IntFromUint64(v), isBig: true}
}

func fromStdBig(x *big.Int) Int {
	if x.IsInt64() {
		return IntOf(x.Int64())
	}
	raw := x.Bytes()
	limbs := make([]uint32, (len(raw)+3)/4)
	for i, b := range raw {
		pos := len(raw) - 1 - i
		limbs[pos/4] |= uint32(b) << (8 * (pos % 4))
	}
	return IntFromBig(bignum.IntFromLimbs(x.Sign() < 0, limbs))
}

// Kind implements Value.
func (Int) Kind() Kind { return KindInt }

// Big returns the value as a bignum.
func (x Int) Big() bignum.BigInt {
	if x.isBig {
		return x.big
	}
	return bignum.IntFromInt64(x.small)
}

// Int64 returns the value when it fits in int64.
func (x Int) Int64() (int64, bool) {
	if x.isBig {
		return 0, false
	}
	return x.small, true
}

// IsBig reports whether the value needs more than 64 bits.
func (x Int) IsBig() bool { return x.isBig }

func (x Int) IsZero() bool { return !x.isBig && x.small == 0 }

func (x Int) Sign() int {
	if x.isBig {
		return x.big.Sign()
	}
	switch {
	case x.small < 0:
		return -1
	case x.small > 0:
		return 1
	default:
		return 0
	}
}

func (x Int) Cmp(y Int) int {
	if !x.isBig && !y.isBig {
		switch {
		case x.small < y.small:
			return -1
		case x.small > y.small:
			return 1
		default:
			return 0
		}
	}
	return x.Big().Cmp(y.Big())
}

// Neg returns -x.
func (x Int) Neg() Int {
	if !x.isBig && x.small != math.MinInt64 {
		return IntOf(-x.small)
	}
	return IntFromBig(x.Big().Negated())
}

// Float64 converts x to the nearest float64, overflowing to ±Inf.
func (x Int) Float64() float64 {
	if !x.isBig {
		return float64(x.small)
	}
	return bignum.IntToFloat64(x.big)
}

// String returns the decimal representation.
func (x Int) String() string {
	if !x.isBig {
		return strconv.FormatInt(x.small, 10)
	}
	return x.big.String()
}

// Text returns the representation in the given base (2..36).
func (x Int) Text(base int) (string, error) {
	return bignum.FormatIntBase(x.Big(), base)
}

// StdBig converts x to a math/big integer.
func (x Int) StdBig() *big.Int {
	if !x.isBig {
		return big.NewInt(x.small)
	}
	limbs := x.big.Abs().Limbs()
	raw := make([]byte, len(limbs)*4)
	for i, limb := range limbs {
		pos := len(raw) - 1 - i*4
		raw[pos] = byte(limb)
		raw[pos-1] = byte(limb >> 8)
		raw[pos-2] = byte(limb >> 16)
		raw[pos-3] = byte(limb >> 24)
	}
	out := new(big.Int).SetBytes(raw)
	if x.big.IsNeg() {
		out.Neg(out)
	}
	return out
}

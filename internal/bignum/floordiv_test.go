package bignum

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloorDivSignTable(t *testing.T) {
	tests := []struct {
		a, d, q, r string
	}{
		{"4", "3", "1", "1"},
		{"4", "-3", "-2", "-2"},
		{"-4", "3", "-2", "2"},
		{"-4", "-3", "1", "-1"},
		{"0", "3", "0", "0"},
		{"0", "-3", "0", "0"},
		{"2", "2", "1", "0"},
		{"3", "2", "1", "1"},
		{"-1", "10", "-1", "9"},
		{"-1", "10000000000", "-1", "9999999999"},
		{"-1", "100000000000000000000", "-1", "99999999999999999999"},
		{"4", "18446744073709551616", "0", "4"},
		{"4", "-18446744073709551616", "-1", "-18446744073709551612"},
		{"-4", "18446744073709551616", "-1", "18446744073709551612"},
		{"-4", "-18446744073709551616", "0", "-4"},
		{"-6", "3", "-2", "0"},
		{"6", "-3", "-2", "0"},
	}
	for _, tt := range tests {
		q, r, err := IntFloorDivMod(mustInt(t, tt.a), mustInt(t, tt.d))
		if err != nil {
			t.Fatalf("%s / %s: %v", tt.a, tt.d, err)
		}
		if q.String() != tt.q || r.String() != tt.r {
			t.Fatalf("%s divmod %s = (%s, %s), want (%s, %s)", tt.a, tt.d, q, r, tt.q, tt.r)
		}
	}
}

func TestFloorDivMixedMagnitudes(t *testing.T) {
	p50, err := IntPow(IntFromInt64(10), 50)
	require.NoError(t, err)
	p40, err := IntPow(IntFromInt64(10), 40)
	require.NoError(t, err)
	d, err := IntAdd(p40, IntFromInt64(1))
	require.NoError(t, err)

	cases := []struct {
		a, d BigInt
		want string
	}{
		{p50, d, "9999999999"},
		{p50.Negated(), d.Negated(), "9999999999"},
		{p50.Negated(), d, "-10000000000"},
		{p50, d.Negated(), "-10000000000"},
	}
	for _, c := range cases {
		q, err := IntFloorDiv(c.a, c.d)
		require.NoError(t, err)
		assert.Equal(t, c.want, q.String(), "%s / %s", c.a, c.d)
	}
}

func TestFloorDivByZero(t *testing.T) {
	_, _, err := IntFloorDivMod(IntFromInt64(1), IntZero())
	if !errors.Is(err, ErrDivByZero) {
		t.Fatalf("expected ErrDivByZero, got %v", err)
	}
	_, _, err = IntFloorDivMod(IntZero(), IntZero())
	if !errors.Is(err, ErrDivByZero) {
		t.Fatalf("0/0: expected ErrDivByZero, got %v", err)
	}
}

func TestFloorDivProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("a == q*d + r", prop.ForAll(
		func(a, d BigInt) bool {
			q, r, err := IntFloorDivMod(a, d)
			if err != nil {
				return false
			}
			prod, err := IntMul(q, d)
			if err != nil {
				return false
			}
			sum, err := IntAdd(prod, r)
			return err == nil && sum.Cmp(a) == 0
		},
		genBigInt(6), genNonZeroBigInt(4),
	))

	properties.Property("remainder is zero or shares the divisor sign and |r| < |d|", prop.ForAll(
		func(a, d BigInt) bool {
			_, r, err := IntFloorDivMod(a, d)
			if err != nil {
				return false
			}
			if r.Abs().Cmp(d.Abs()) >= 0 {
				return false
			}
			return r.IsZero() || r.Sign() == d.Sign()
		},
		genBigInt(6), genNonZeroBigInt(4),
	))

	properties.Property("zero dividend yields zero", prop.ForAll(
		func(d BigInt) bool {
			q, r, err := IntFloorDivMod(IntZero(), d)
			return err == nil && q.IsZero() && r.IsZero()
		},
		genNonZeroBigInt(4),
	))

	properties.Property("quotient equals the floor of the exact ratio", prop.ForAll(
		func(a, d BigInt) bool {
			q, err := IntFloorDiv(a, d)
			if err != nil {
				return false
			}
			ratio := new(big.Rat).SetFrac(toBig(a), toBig(d))
			floor := new(big.Int).Div(ratio.Num(), ratio.Denom()) // Denom > 0, so Euclidean == floor
			return toBig(q).Cmp(floor) == 0
		},
		genBigInt(6), genNonZeroBigInt(4),
	))

	properties.TestingRun(t)
}

func TestFloorModSign(t *testing.T) {
	tests := []struct {
		a, d, r string
	}{
		{"-100000000000000000000", "7", "5"},
		{"100000000000000000000", "-7", "-5"},
		{"5", "-18446744073709551616", "-18446744073709551611"},
		{"-18446744073709551616", "18446744073709551616", "0"},
	}
	for _, tt := range tests {
		r, err := IntFloorMod(mustInt(t, tt.a), mustInt(t, tt.d))
		if err != nil {
			t.Fatalf("%s %% %s: %v", tt.a, tt.d, err)
		}
		if r.String() != tt.r {
			t.Fatalf("%s %% %s = %s, want %s", tt.a, tt.d, r, tt.r)
		}
	}
	if _, err := IntFloorMod(IntFromInt64(1), IntZero()); !errors.Is(err, ErrDivByZero) {
		t.Fatalf("mod by zero: got %v, want ErrDivByZero", err)
	}
}

package numeric

import (
	"bytes"
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numtower/internal/bignum"
	"numtower/internal/trace"
)

func mustParse(t *testing.T, s string) Int {
	t.Helper()
	v, err := ParseInt(s)
	if err != nil {
		t.Fatalf("ParseInt(%q): %v", s, err)
	}
	return v
}

func bignumPlus(t *testing.T, n int64) Int {
	t.Helper()
	v, err := Add(mustParse(t, "18446744073709551616"), n)
	require.NoError(t, err)
	return v.(Int)
}

func TestDivSignTable(t *testing.T) {
	cases := []struct {
		a, d int64
		want string
	}{
		{4, 3, "1"},
		{4, -3, "-2"},
		{-4, 3, "-2"},
		{-4, -3, "1"},
		{0, 3, "0"},
		{0, -3, "0"},
		{6, 3, "2"},
		{-6, 3, "-2"},
		{7, -1, "-7"},
		{math.MinInt64, -1, "9223372036854775808"},
		{math.MinInt64, 1, "-9223372036854775808"},
	}
	for _, tc := range cases {
		got, err := Div(IntOf(tc.a), IntOf(tc.d))
		if err != nil {
			t.Fatalf("%d / %d: %v", tc.a, tc.d, err)
		}
		if got.Kind() != KindInt || got.String() != tc.want {
			t.Fatalf("%d / %d = %s (%s), want %s", tc.a, tc.d, got, got.Kind(), tc.want)
		}
	}
}

func TestDivMixedMagnitudes(t *testing.T) {
	big50 := mustParse(t, "100000000000000000000000000000000000000000000000000")
	d := mustParse(t, "10000000000000000000000000000000000000001")

	got, err := Div(big50, d)
	require.NoError(t, err)
	assert.Equal(t, "9999999999", got.String())

	got, err = Div(big50.Neg(), d)
	require.NoError(t, err)
	assert.Equal(t, "-10000000000", got.String())

	got, err = Div(IntOf(3), d)
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())

	got, err = Div(IntOf(-3), d)
	require.NoError(t, err)
	assert.Equal(t, "-1", got.String())

	got, err = Div(bignumPlus(t, 88), 4)
	require.NoError(t, err)
	assert.Equal(t, "4611686018427387926", got.String())
	assert.False(t, got.(Int).IsBig())
}

func TestDivByZero(t *testing.T) {
	for _, x := range []Int{IntOf(1), IntOf(0), IntOf(-1), mustParse(t, "-99999999999999999999999")} {
		_, err := Div(x, 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrZeroDivision), "%s / 0: %v", x, err)
		assert.Equal(t, "ZeroDivisionError: divided by 0", err.Error())

		var nerr *Error
		require.True(t, errors.As(err, &nerr))
		assert.Equal(t, "NUM2001", nerr.Code.String())
		assert.Equal(t, "/", nerr.Op)
	}
}

func TestDivByFloat(t *testing.T) {
	cases := []struct {
		x    Int
		y    any
		want string
	}{
		{IntOf(1), 0.0, "Infinity"},
		{IntOf(-1), 0.0, "-Infinity"},
		{IntOf(1), math.Copysign(0, -1), "-Infinity"},
		{IntOf(0), 0.0, "NaN"},
		{IntOf(3), 2.0, "1.5"},
		{IntOf(3), Float(2), "1.5"},
		{IntOf(3), float32(0.5), "6.0"},
		{IntOf(-7), 2.0, "-3.5"},
	}
	for _, tc := range cases {
		got, err := Div(tc.x, tc.y)
		require.NoError(t, err)
		assert.Equal(t, KindFloat, got.Kind())
		assert.Equal(t, tc.want, got.String(), "%s / %v", tc.x, tc.y)
	}
}

func TestDivByRational(t *testing.T) {
	two, err := NewRational(IntOf(2), IntOf(1))
	require.NoError(t, err)

	got, err := Div(IntOf(3), two)
	require.NoError(t, err)
	assert.Equal(t, KindRational, got.Kind())
	assert.Equal(t, "3/2", got.String())

	got, err = Div(IntOf(6), two)
	require.NoError(t, err)
	assert.Equal(t, KindRational, got.Kind())
	assert.Equal(t, "3/1", got.String())

	got, err = Div(IntOf(1), big.NewRat(-2, 3))
	require.NoError(t, err)
	assert.Equal(t, "-3/2", got.String())

	_, err = Div(IntOf(1), Rational{})
	assert.True(t, errors.Is(err, ErrZeroDivision))
}

func TestDivAcceptsGoIntegers(t *testing.T) {
	huge, ok := new(big.Int).SetString("-100000000000000000000", 10)
	require.True(t, ok)

	for _, y := range []any{int(3), int8(3), int16(3), int32(3), uint(3), uint8(3), uint16(3), uint32(3), uint64(3)} {
		got, err := Div(IntOf(7), y)
		require.NoError(t, err)
		assert.Equal(t, "2", got.String(), "%T", y)
	}

	got, err := Div(IntOf(7), uint64(math.MaxUint64))
	require.NoError(t, err)
	assert.Equal(t, "0", got.String())

	got, err = Div(mustParse(t, "100000000000000000000"), huge)
	require.NoError(t, err)
	assert.Equal(t, "-1", got.String())
}

func TestDivRejectsNonNumeric(t *testing.T) {
	cases := []struct {
		y    any
		want string
	}{
		{"10", "TypeError: String can't be coerced into Integer"},
		{nil, "TypeError: nil can't be coerced into Integer"},
		{true, "TypeError: true can't be coerced into Integer"},
		{named{"Symbol"}, "TypeError: Symbol can't be coerced into Integer"},
		{named{"Object"}, "TypeError: Object can't be coerced into Integer"},
	}
	for _, tc := range cases {
		_, err := Div(IntOf(13), tc.y)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrType))
		assert.False(t, errors.Is(err, ErrZeroDivision))
		assert.Equal(t, tc.want, err.Error())
	}
}

type named struct{ name string }

func (n named) TypeName() string { return n.name }

type publicCoercer struct{ v int64 }

func (p publicCoercer) Coerce(x Value) (Pair, error) {
	return Pair{Left: x, Right: IntOf(p.v)}, nil
}

type hiddenNumber struct{ v int64 }

type floatCoercer struct{ v float64 }

func (f floatCoercer) Coerce(x Value) (Pair, error) {
	xi := x.(Int)
	return Pair{Left: Float(xi.Float64()), Right: Float(f.v)}, nil
}

type badCoercer struct{ pair Pair }

func (b badCoercer) Coerce(Value) (Pair, error) { return b.pair, nil }

type failingCoercer struct{ err error }

func (f failingCoercer) Coerce(Value) (Pair, error) { return Pair{}, f.err }

func TestDivCoercion(t *testing.T) {
	got, err := Div(IntOf(6), publicCoercer{3})
	require.NoError(t, err)
	assert.Equal(t, KindInt, got.Kind())
	assert.Equal(t, "2", got.String())

	got, err = Div(IntOf(6), floatCoercer{4})
	require.NoError(t, err)
	assert.Equal(t, "1.5", got.String())

	_, err = Div(IntOf(6), publicCoercer{0})
	assert.True(t, errors.Is(err, ErrZeroDivision))
}

func TestDivHiddenCoercion(t *testing.T) {
	_, err := Div(IntOf(6), hiddenNumber{3})
	require.True(t, errors.Is(err, ErrType), "unregistered type must not coerce")

	unregister := RegisterCoercion(func(h hiddenNumber, x Value) (Pair, error) {
		return Pair{Left: x, Right: IntOf(h.v)}, nil
	})
	got, err := Div(IntOf(6), hiddenNumber{3})
	require.NoError(t, err)
	assert.Equal(t, "2", got.String())

	_, isCoercer := any(hiddenNumber{}).(Coercer)
	assert.False(t, isCoercer)

	unregister()
	unregister()
	_, err = Div(IntOf(6), hiddenNumber{3})
	assert.True(t, errors.Is(err, ErrType))
}

func TestDivMalformedCoercion(t *testing.T) {
	cases := []struct {
		name string
		pair Pair
	}{
		{"empty", Pair{}},
		{"nil right", Pair{Left: IntOf(6)}},
		{"foreign right", Pair{Left: IntOf(6), Right: fakeInt{}}},
		{"foreign left", Pair{Left: fakeInt{}, Right: IntOf(3)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Div(IntOf(6), badCoercer{pair: tc.pair})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrType), "got %v", err)
		})
	}
}

// fakeInt claims to be an Int without being one.
type fakeInt struct{}

func (fakeInt) Kind() Kind     { return KindInt }
func (fakeInt) String() string { return "fake" }

func TestDivCoercionErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := Div(IntOf(6), failingCoercer{boom})
	assert.Same(t, boom, err)
}

func TestModBignum(t *testing.T) {
	cases := []struct {
		x, y Int
		want string
	}{
		{mustParse(t, "-100000000000000000000"), IntOf(7), "5"},
		{mustParse(t, "100000000000000000000"), IntOf(-7), "-5"},
		{IntOf(5), mustParse(t, "-18446744073709551616"), "-18446744073709551611"},
		{IntOf(math.MinInt64), IntOf(-1), "0"},
	}
	for _, tc := range cases {
		got, err := Mod(tc.x, tc.y)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.String(), "%s %% %s", tc.x, tc.y)
	}

	_, err := Mod(mustParse(t, "100000000000000000000"), 0)
	assert.True(t, errors.Is(err, ErrZeroDivision))
}

func TestModAndDivMod(t *testing.T) {
	cases := []struct {
		x    int64
		y    any
		q, r string
	}{
		{7, int64(2), "3", "1"},
		{7, int64(-2), "-4", "-1"},
		{-7, int64(2), "-4", "1"},
		{-7, int64(-2), "3", "-1"},
		{7, 2.0, "3", "1.0"},
		{-7, 2.5, "-3", "0.5"},
		{7, -2.5, "-3", "-0.5"},
	}
	for _, tc := range cases {
		q, r, err := DivMod(IntOf(tc.x), tc.y)
		require.NoError(t, err)
		assert.Equal(t, tc.q, q.String(), "%d divmod %v", tc.x, tc.y)
		assert.Equal(t, tc.r, r.String(), "%d divmod %v", tc.x, tc.y)

		m, err := Mod(IntOf(tc.x), tc.y)
		require.NoError(t, err)
		assert.Equal(t, tc.r, m.String())
	}

	half, err := NewRational(IntOf(1), IntOf(2))
	require.NoError(t, err)
	q, r, err := DivMod(IntOf(-3), half)
	require.NoError(t, err)
	assert.Equal(t, "-6", q.String())
	assert.Equal(t, "0/1", r.String())

	m, err := Mod(IntOf(1), 0.0)
	require.NoError(t, err)
	assert.Equal(t, "NaN", m.String())

	_, _, err = DivMod(IntOf(1), 0.0)
	assert.True(t, errors.Is(err, ErrZeroDivision))
	_, err = Mod(IntOf(1), 0)
	assert.True(t, errors.Is(err, ErrZeroDivision))
}

func TestArithmeticPromotesAndDemotes(t *testing.T) {
	sum, err := Add(IntOf(math.MaxInt64), 1)
	require.NoError(t, err)
	assert.Equal(t, "9223372036854775808", sum.String())
	assert.True(t, sum.(Int).IsBig())

	back, err := Sub(sum.(Int), 1)
	require.NoError(t, err)
	assert.False(t, back.(Int).IsBig())
	assert.Equal(t, IntOf(math.MaxInt64), back)

	prod, err := Mul(IntOf(math.MinInt64), -1)
	require.NoError(t, err)
	assert.Equal(t, "9223372036854775808", prod.String())

	mixed, err := Add(IntOf(1), 0.5)
	require.NoError(t, err)
	assert.Equal(t, "1.5", mixed.String())

	third, err := NewRational(IntOf(1), IntOf(3))
	require.NoError(t, err)
	rat, err := Sub(IntOf(1), third)
	require.NoError(t, err)
	assert.Equal(t, "2/3", rat.String())
}

func TestFDiv(t *testing.T) {
	got, err := FDiv(IntOf(1), 3)
	require.NoError(t, err)
	assert.Equal(t, "0.3333333333333333", got.String())

	got, err = FDiv(IntOf(1), 0)
	require.NoError(t, err)
	assert.Equal(t, "Infinity", got.String())

	got, err = FDiv(mustParse(t, "100000000000000000000000000000000000000000000000000"),
		mustParse(t, "10000000000000000000000000000000000000001"))
	require.NoError(t, err)
	assert.Equal(t, "10000000000.0", got.String())

	// 10**50+7 over 3*10**20+1 lands between two doubles
	num := mustParse(t, "100000000000000000000000000000000000000000000000007")
	den := mustParse(t, "300000000000000000001")
	got, err = FDiv(num, den)
	require.NoError(t, err)
	want, _ := new(big.Rat).SetFrac(num.StdBig(), den.StdBig()).Float64()
	assert.Equal(t, Float(want), got)

	got, err = FDiv(num.Neg(), den)
	require.NoError(t, err)
	assert.Equal(t, Float(-want), got)
}

func TestPow(t *testing.T) {
	got, err := Pow(IntOf(2), 64)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", got.String())

	got, err = Pow(IntOf(2), -2)
	require.NoError(t, err)
	assert.Equal(t, "1/4", got.String())

	got, err = Pow(IntOf(4), 0.5)
	require.NoError(t, err)
	assert.Equal(t, "2.0", got.String())

	_, err = Pow(IntOf(0), -1)
	assert.True(t, errors.Is(err, ErrZeroDivision))

	_, err = Pow(IntOf(2), int64(1)<<40)
	assert.True(t, errors.Is(err, ErrRange))
}

func TestPowTrivialBasesHugeExponent(t *testing.T) {
	even := mustParse(t, "1267650600228229401496703205376") // 2**100
	odd := mustParse(t, "1267650600228229401496703205377")

	cases := []struct {
		x    int64
		y    Int
		want string
	}{
		{1, even, "1"},
		{1, odd.Neg(), "1/1"},
		{0, even, "0"},
		{-1, even, "1"},
		{-1, odd, "-1"},
		{-1, even.Neg(), "1/1"},
		{-1, odd.Neg(), "-1/1"},
	}
	for _, tc := range cases {
		got, err := Pow(IntOf(tc.x), tc.y)
		require.NoError(t, err, "%d ** %s", tc.x, tc.y)
		assert.Equal(t, tc.want, got.String(), "%d ** %s", tc.x, tc.y)
	}

	_, err := Pow(IntOf(0), even.Neg())
	assert.True(t, errors.Is(err, ErrZeroDivision))

	_, err = Pow(IntOf(2), even)
	assert.True(t, errors.Is(err, ErrRange))
}

func TestBitwise(t *testing.T) {
	got, err := defaultDispatcher.And(IntOf(-1), 0xff)
	require.NoError(t, err)
	assert.Equal(t, "255", got.String())

	got, err = defaultDispatcher.Shl(IntOf(1), 64)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551616", got.String())

	got, err = defaultDispatcher.Shr(IntOf(-5), 1)
	require.NoError(t, err)
	assert.Equal(t, "-3", got.String())

	got, err = defaultDispatcher.Shl(IntOf(-5), -1)
	require.NoError(t, err)
	assert.Equal(t, "-3", got.String())

	got, err = defaultDispatcher.Xor(IntOf(6), 3)
	require.NoError(t, err)
	assert.Equal(t, "5", got.String())

	_, err = defaultDispatcher.And(IntOf(1), 1.5)
	require.Error(t, err)
	assert.Equal(t, "TypeError: Float can't be coerced into Integer", err.Error())
}

func TestDispatcherTracesRoutes(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatText)
	d := NewDispatcher(tr)

	unregister := RegisterCoercion(func(h hiddenNumber, x Value) (Pair, error) {
		return Pair{Left: x, Right: IntOf(h.v)}, nil
	})
	defer unregister()

	_, _ = d.Div(IntOf(6), 3)
	_, _ = d.Div(IntOf(1), 0.0)
	_, _ = d.Div(IntOf(6), hiddenNumber{2})
	_, _ = d.Div(IntOf(1), "x")
	require.NoError(t, tr.Flush())

	out := buf.String()
	for _, want := range []string{"route=int", "route=float", "route=hidden_coerce", "route=fail"} {
		assert.True(t, strings.Contains(out, want), "missing %q in:\n%s", want, out)
	}
}

func TestIntConversions(t *testing.T) {
	x := mustParse(t, "-123456789012345678901234567890")
	assert.Equal(t, "-123456789012345678901234567890", x.StdBig().String())
	assert.Equal(t, x, fromStdBig(x.StdBig()))

	hex, err := mustParse(t, "255").Text(16)
	require.NoError(t, err)
	assert.Equal(t, "ff", hex)

	i, err := IntFromFloat(1e20)
	require.NoError(t, err)
	assert.Equal(t, "100000000000000000000", i.String())

	_, err = IntFromFloat(math.NaN())
	assert.True(t, errors.Is(err, ErrRange))

	assert.Equal(t, IntFromBig(bignum.IntFromInt64(5)), IntOf(5))
}

func TestApplyWithNonIntegerLeft(t *testing.T) {
	d := NewDispatcher(nil)

	got, err := d.Apply("+", Float(1.5), 2)
	require.NoError(t, err)
	assert.Equal(t, "3.5", got.String())

	half, err := NewRational(IntOf(1), IntOf(2))
	require.NoError(t, err)
	got, err = d.Apply("*", half, half)
	require.NoError(t, err)
	assert.Equal(t, "1/4", got.String())

	_, err = d.Apply("/", Float(1.5), "x")
	require.Error(t, err)
	assert.Equal(t, "TypeError: String can't be coerced into Float", err.Error())

	_, err = d.Apply("<=>", IntOf(1), 2)
	assert.True(t, errors.Is(err, ErrType))

	q, r, err := d.ApplyDivMod(Float(7.5), 2)
	require.NoError(t, err)
	assert.Equal(t, "3", q.String())
	assert.Equal(t, "1.5", r.String())

	neg, err := Neg(half)
	require.NoError(t, err)
	assert.Equal(t, "-1/2", neg.String())
}

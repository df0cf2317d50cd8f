package numeric

import (
	"math"
	"testing"
)

func TestFloatString(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{1.5, "1.5"},
		{-3.5, "-3.5"},
		{100, "100.0"},
		{0.1, "0.1"},
		{0.0001, "0.0001"},
		{0.00001, "1.0e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1.0e+16"},
		{1.25e20, "1.25e+20"},
		{1e100, "1.0e+100"},
		{1.0 / 3, "0.3333333333333333"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tc := range cases {
		if got := Float(tc.in).String(); got != tc.want {
			t.Fatalf("Float(%v).String() = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFloatMod(t *testing.T) {
	cases := []struct{ x, y, want float64 }{
		{7, 2, 1},
		{-7, 2, 1},
		{7, -2, -1},
		{-7, 2.5, 0.5},
		{5, math.Inf(1), 5},
		{-5, math.Inf(1), math.Inf(1)},
	}
	for _, tc := range cases {
		if got := floatMod(tc.x, tc.y); got != tc.want {
			t.Fatalf("floatMod(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

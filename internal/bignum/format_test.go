package bignum

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseIntLiterals(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"-0", "0"},
		{"+42", "42"},
		{"1_000_000", "1000000"},
		{"0xff", "255"},
		{"0XFF", "255"},
		{"0b1010", "10"},
		{"0o777", "511"},
		{"-0x10000000000000000", "-18446744073709551616"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},
	}
	for _, tt := range tests {
		v, err := ParseInt(tt.in)
		if err != nil {
			t.Fatalf("ParseInt(%q): %v", tt.in, err)
		}
		if got := v.String(); got != tt.want {
			t.Fatalf("ParseInt(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseIntRejects(t *testing.T) {
	for _, in := range []string{"", "-", "_1", "1_", "1__0", "12a", "0x", "0b2", "1.5"} {
		if _, err := ParseInt(in); !errors.Is(err, ErrParse) {
			t.Fatalf("ParseInt(%q): expected ErrParse, got %v", in, err)
		}
	}
}

func TestFormatIntBase(t *testing.T) {
	v := mustInt(t, "-255")
	for base, want := range map[int]string{2: "-11111111", 8: "-377", 16: "-ff", 36: "-73"} {
		got, err := FormatIntBase(v, base)
		if err != nil {
			t.Fatalf("base %d: %v", base, err)
		}
		if got != want {
			t.Fatalf("FormatIntBase(-255, %d) = %q, want %q", base, got, want)
		}
	}
	if _, err := FormatIntBase(v, 1); err == nil {
		t.Fatalf("expected error for base 1")
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("format matches math/big in every base", prop.ForAll(
		func(v BigInt, base int) bool {
			s, err := FormatIntBase(v, base)
			if err != nil {
				return false
			}
			if s != toBig(v).Text(base) {
				return false
			}
			digits := s
			neg := false
			if digits[0] == '-' {
				neg = true
				digits = digits[1:]
			}
			u, err := ParseUintBase(digits, base)
			return err == nil && IntFromUint(neg, u).Cmp(v) == 0
		},
		genBigInt(6), gen.IntRange(2, 36),
	))
	properties.TestingRun(t)
}

func TestFormatLargePowers(t *testing.T) {
	p, err := IntPow(IntFromInt64(10), 50)
	if err != nil {
		t.Fatal(err)
	}
	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(50), nil).String()
	if p.String() != want {
		t.Fatalf("10**50 = %s, want %s", p, want)
	}
}

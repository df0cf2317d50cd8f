package bignum

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBitwiseMatchesMathBig(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("and/or/xor follow two's complement", prop.ForAll(
		func(a, b BigInt) bool {
			ba, bb := toBig(a), toBig(b)
			return toBig(IntAnd(a, b)).Cmp(new(big.Int).And(ba, bb)) == 0 &&
				toBig(IntOr(a, b)).Cmp(new(big.Int).Or(ba, bb)) == 0 &&
				toBig(IntXor(a, b)).Cmp(new(big.Int).Xor(ba, bb)) == 0 &&
				toBig(IntNot(a)).Cmp(new(big.Int).Not(ba)) == 0
		},
		genBigInt(4), genBigInt(4),
	))
	properties.Property("shifts match Lsh/Rsh", prop.ForAll(
		func(a BigInt, n int) bool {
			shl, err := IntShl(a, n)
			if err != nil {
				return false
			}
			shr, err := IntShr(a, n)
			if err != nil {
				return false
			}
			ba := toBig(a)
			return toBig(shl).Cmp(new(big.Int).Lsh(ba, uint(n))) == 0 &&
				toBig(shr).Cmp(new(big.Int).Rsh(ba, uint(n))) == 0
		},
		genBigInt(4), gen.IntRange(0, 200),
	))
	properties.TestingRun(t)
}

func TestIntShrNegativeRoundsDown(t *testing.T) {
	got, err := IntShr(IntFromInt64(-5), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "-3" {
		t.Fatalf("-5 >> 1 = %s, want -3", got)
	}
}

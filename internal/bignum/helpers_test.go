package bignum

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

func mustInt(t *testing.T, s string) BigInt {
	t.Helper()
	v, err := ParseInt(s)
	if err != nil {
		t.Fatalf("ParseInt(%q): %v", s, err)
	}
	return v
}

func toBig(i BigInt) *big.Int {
	words := i.mag.limbs
	out := new(big.Int)
	for k := len(words) - 1; k >= 0; k-- {
		out.Lsh(out, 32)
		out.Or(out, big.NewInt(int64(words[k])))
	}
	if i.neg {
		out.Neg(out)
	}
	return out
}

func fromBig(t *testing.T, b *big.Int) BigInt {
	t.Helper()
	return mustInt(t, b.String())
}

// genBigInt produces signed integers of up to maxLimbs limbs, biased toward
// small and boundary magnitudes by the underlying uint32 generator.
func genBigInt(maxLimbs int) gopter.Gen {
	return gopter.CombineGens(
		gen.Bool(),
		gen.SliceOfN(maxLimbs, gen.UInt32()),
		gen.IntRange(0, maxLimbs),
	).Map(func(vals []interface{}) BigInt {
		limbs := vals[1].([]uint32)
		n := vals[2].(int)
		if n > len(limbs) {
			n = len(limbs)
		}
		return IntFromLimbs(vals[0].(bool), limbs[:n])
	})
}

func genNonZeroBigInt(maxLimbs int) gopter.Gen {
	return genBigInt(maxLimbs).SuchThat(func(v BigInt) bool { return !v.IsZero() })
}

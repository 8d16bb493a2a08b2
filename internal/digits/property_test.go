package digits

import (
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genNumeral generates decimal numerals of up to 80 digits, possibly with
// leading zeros.
func genNumeral() gopter.Gen {
	return gen.NumString().Map(func(s string) string {
		if s == "" {
			return "0"
		}
		if len(s) > 80 {
			return s[:80]
		}
		return s
	})
}

// stripLeadingZeros returns the canonical rendering of a numeral.
func stripLeadingZeros(s string) string {
	if t := strings.TrimLeft(s, "0"); t != "" {
		return t
	}
	return "0"
}

func TestArithmetic_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("FromInt renders the decimal text of x", prop.ForAll(
		func(x uint64) bool {
			return FromInt(x).String() == strconv.FormatUint(x, 10)
		},
		gen.UInt64(),
	))

	properties.Property("Parse then String strips leading zeros only", prop.ForAll(
		func(s string) bool {
			x, err := Parse(s)
			return err == nil && x.String() == stripLeadingZeros(s) && x.DigitCount() == len(s)
		},
		genNumeral(),
	))

	properties.Property("addition commutes", prop.ForAll(
		func(a, b string) bool {
			x, y := MustParse(a), MustParse(b)
			return Add(x, y).Equal(Add(y, x))
		},
		genNumeral(), genNumeral(),
	))

	properties.Property("multiplication commutes", prop.ForAll(
		func(a, b string) bool {
			x, y := MustParse(a), MustParse(b)
			return Mul(x, y).Equal(Mul(y, x))
		},
		genNumeral(), genNumeral(),
	))

	properties.Property("identities hold", prop.ForAll(
		func(a string) bool {
			x := MustParse(a)
			return Add(x, FromInt(0)).Equal(x) &&
				Mul(x, FromInt(1)).Equal(x) &&
				Mul(x, FromInt(0)).Equal(FromInt(0))
		},
		genNumeral(),
	))

	properties.Property("sum digit count is max(n,m) or max(n,m)+1", prop.ForAll(
		func(a, b string) bool {
			x, y := MustParse(a), MustParse(b)
			longest := max(x.DigitCount(), y.DigitCount())
			got := Add(x, y).DigitCount()
			return got == longest || got == longest+1
		},
		genNumeral(), genNumeral(),
	))

	properties.Property("products agree with math/big", prop.ForAll(
		func(a, b string) bool {
			ba, _ := new(big.Int).SetString(a, 10)
			bb, _ := new(big.Int).SetString(b, 10)
			want := new(big.Int).Mul(ba, bb).String()
			return Mul(MustParse(a), MustParse(b)).String() == want
		},
		genNumeral(), genNumeral(),
	))

	properties.Property("sums agree with math/big", prop.ForAll(
		func(a, b string) bool {
			ba, _ := new(big.Int).SetString(a, 10)
			bb, _ := new(big.Int).SetString(b, 10)
			want := new(big.Int).Add(ba, bb).String()
			return Add(MustParse(a), MustParse(b)).String() == want
		},
		genNumeral(), genNumeral(),
	))

	properties.TestingRun(t)
}

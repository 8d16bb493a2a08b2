package digits

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestAdd(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{"carry ripples through", "999", "1", "1000"},
		{"zeros", "0", "0", "0"},
		{"single carry", "5", "5", "10"},
		{"no carry", "123", "456", "579"},
		{"longer left", "123", "9877", "10000"},
		{"longer right", "1", "99999999999999999999", "100000000000000000000"},
		{"leading zeros", "0009", "1", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Add(MustParse(tt.a), MustParse(tt.b))
			if got.String() != tt.want {
				t.Errorf("%s + %s = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAddFromInt(t *testing.T) {
	t.Parallel()
	if got := Add(FromInt(999), FromInt(1)).String(); got != "1000" {
		t.Errorf("999 + 1 = %s, want 1000", got)
	}
}

func TestAddDigitCount(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		a := randomNumeral(r, 1+r.IntN(40))
		b := randomNumeral(r, 1+r.IntN(40))
		x, y := MustParse(a), MustParse(b)
		longest := max(x.DigitCount(), y.DigitCount())
		got := Add(x, y).DigitCount()
		if got != longest && got != longest+1 {
			t.Fatalf("%s + %s has %d digits, want %d or %d", a, b, got, longest, longest+1)
		}
	}
}

func TestAddLeavesOperandsUntouched(t *testing.T) {
	t.Parallel()
	a, b := MustParse("987654321"), MustParse("123456789")
	da, db := a.Digits(), b.Digits()
	_ = Add(a, b)
	if !slices.Equal(da, a.Digits()) || !slices.Equal(db, b.Digits()) {
		t.Error("Add modified an operand")
	}
}

// randomNumeral returns n random decimal digits with a non-zero leading
// digit (unless n == 1).
func randomNumeral(r *rand.Rand, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + r.IntN(10))
	}
	if n > 1 && buf[0] == '0' {
		buf[0] = '1'
	}
	return string(buf)
}

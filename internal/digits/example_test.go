package digits_test

import (
	"errors"
	"fmt"

	"github.com/agbru/digitcalc/internal/digits"
)

func ExampleMul() {
	a := digits.MustParse("9999999999")
	b := digits.MustParse("9999999999")
	p := digits.Mul(a, b)
	fmt.Println(p, p.DigitCount())
	// Output:
	// 99999999980000000001 20
}

func ExampleAdd() {
	fmt.Println(digits.Add(digits.FromInt(999), digits.FromInt(1)))
	// Output:
	// 1000
}

func ExampleParse() {
	_, err := digits.Parse("12a3")
	fmt.Println(err)
	fmt.Println(errors.Is(err, digits.ErrInvalidNumeral))
	// Output:
	// invalid numeral: unexpected character 'a' at position 2
	// true
}

func ExampleTracker() {
	a := digits.MustParse("99999999")
	tr := digits.NewTracker(nil, 8)
	_, err := digits.With(tr).Mul(a, a)
	fmt.Println(err)
	// Output:
	// allocation failure: 9 bytes requested with 0 in use exceeds the 8 byte limit
}

package digits

import "fmt"

// MustParse is like Parse but panics if s is not a valid numeral.
func MustParse(s string) BigInt {
	x, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", s, err))
	}
	return x
}

// must unwraps results from the heap allocator, which cannot fail.
func must(x BigInt, err error) BigInt {
	if err != nil {
		panic(err)
	}
	return x
}

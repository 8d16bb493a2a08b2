package digits

import "unicode/utf8"

// StepFunc observes multiplication progress. It is called after each digit
// of the multiplicand has been processed with done in [1, total]. Returning
// a non-nil error aborts the multiplication with that error.
type StepFunc func(done, total int) error

func (f StepFunc) call(done, total int) error {
	if f == nil {
		return nil
	}
	return f(done, total)
}

// Arith performs BigInt construction and arithmetic with buffers drawn from
// a specific Allocator. Every method that allocates can fail with an
// *AllocationError; on failure no partial result is returned and buffers
// obtained so far are released.
type Arith struct {
	alloc Allocator
}

var defaultArith = Arith{alloc: HeapAllocator{}}

// With returns an Arith drawing buffers from alloc, or from the Go heap if
// alloc is nil.
func With(alloc Allocator) Arith {
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	return Arith{alloc: alloc}
}

// FromInt converts v, producing at least one digit.
func (x Arith) FromInt(v uint64) (BigInt, error) {
	n := 1
	for r := v / 10; r > 0; r /= 10 {
		n++
	}
	c, err := x.alloc.Alloc(n)
	if err != nil {
		return BigInt{}, err
	}
	i := 0
	for {
		c[i] = newDigit(int(v % 10))
		i++
		v /= 10
		if v == 0 {
			break
		}
	}
	return fromChain(c), nil
}

// Parse converts a string of ASCII decimal digits. The first character that
// is not a digit is reported as a *NumeralError and nothing is returned. The
// digit count equals len(s): leading zeros are stored but never printed.
func (x Arith) Parse(s string) (BigInt, error) {
	if s == "" {
		return BigInt{}, &NumeralError{Pos: -1}
	}
	c, err := x.alloc.Alloc(len(s))
	if err != nil {
		return BigInt{}, err
	}
	last := len(s) - 1
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < '0' || ch > '9' {
			x.alloc.Free(c)
			r, _ := utf8.DecodeRuneInString(s[i:])
			return BigInt{}, &NumeralError{Char: r, Pos: i}
		}
		c[last-i] = newDigit(int(ch - '0'))
	}
	return fromChain(c), nil
}

// Add returns a + b.
func (x Arith) Add(a, b BigInt) (BigInt, error) {
	c, err := addChains(x.alloc, a.chain(), b.chain())
	if err != nil {
		return BigInt{}, err
	}
	return fromChain(c), nil
}

// Mul returns a × b using the two-accumulator algorithm.
func (x Arith) Mul(a, b BigInt) (BigInt, error) {
	return x.MulFunc(a, b, nil)
}

// MulFunc is Mul with a progress callback invoked once per digit of a.
func (x Arith) MulFunc(a, b BigInt, step StepFunc) (BigInt, error) {
	c, err := mulChains(x.alloc, a.chain(), b.chain(), step)
	if err != nil {
		return BigInt{}, err
	}
	return fromChain(c), nil
}

// MulNaive returns a × b by materializing every shifted partial product
// before summing them.
func (x Arith) MulNaive(a, b BigInt) (BigInt, error) {
	return x.MulNaiveFunc(a, b, nil)
}

// MulNaiveFunc is MulNaive with a progress callback invoked once per digit
// of a.
func (x Arith) MulNaiveFunc(a, b BigInt, step StepFunc) (BigInt, error) {
	c, err := mulNaiveChains(x.alloc, a.chain(), b.chain(), step)
	if err != nil {
		return BigInt{}, err
	}
	return fromChain(c), nil
}

// FromInt converts v to a BigInt.
func FromInt(v uint64) BigInt { return must(defaultArith.FromInt(v)) }

// Parse converts a decimal numeral to a BigInt. See Arith.Parse.
func Parse(s string) (BigInt, error) { return defaultArith.Parse(s) }

// Add returns a + b.
func Add(a, b BigInt) BigInt { return must(defaultArith.Add(a, b)) }

// Mul returns a × b.
func Mul(a, b BigInt) BigInt { return must(defaultArith.Mul(a, b)) }

// MulNaive returns a × b computed from the full list of partial products.
func MulNaive(a, b BigInt) BigInt { return must(defaultArith.MulNaive(a, b)) }

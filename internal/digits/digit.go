package digits

import "strings"

// Digit is a single decimal digit in [0, 9].
type Digit uint8

// newDigit converts v to a Digit. Callers only pass values produced by
// mod-10 arithmetic or by a validated character, so an out-of-range value is
// a bug and panics with *InvalidDigitError.
func newDigit(v int) Digit {
	if v < 0 || v > 9 {
		panic(&InvalidDigitError{Value: v})
	}
	return Digit(v)
}

// Chain is a sequence of decimal digits, least-significant digit first.
type Chain []Digit

// zeroChain backs the zero value of BigInt. It is never written to.
var zeroChain = Chain{0}

// String renders the chain most-significant digit first, keeping any
// high-order zeros.
func (c Chain) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for i := len(c) - 1; i >= 0; i-- {
		sb.WriteByte('0' + byte(c[i]))
	}
	return sb.String()
}

// trimmed drops high-order zeros, keeping at least one digit.
func (c Chain) trimmed() Chain {
	n := len(c)
	for n > 1 && c[n-1] == 0 {
		n--
	}
	return c[:n]
}

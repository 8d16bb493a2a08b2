package digits

// BigInt is an arbitrary-precision non-negative integer.
//
// The zero value represents 0. A BigInt never shares its digits with another
// live BigInt, so values may be copied and read concurrently.
type BigInt struct {
	digits Chain
}

// fromChain wraps c without validation. Callers guarantee every element is
// in [0, 9] and that c is not referenced elsewhere.
func fromChain(c Chain) BigInt {
	return BigInt{digits: c}
}

func (x BigInt) chain() Chain {
	if len(x.digits) == 0 {
		return zeroChain
	}
	return x.digits
}

// DigitCount returns the number of stored digits. A value parsed from text
// keeps any leading zeros it was given, so DigitCount may exceed the length
// of String.
func (x BigInt) DigitCount() int { return len(x.chain()) }

// Digits returns a copy of the digits, least-significant first.
func (x BigInt) Digits() []Digit {
	c := x.chain()
	out := make([]Digit, len(c))
	copy(out, c)
	return out
}

// IsZero reports whether x == 0.
func (x BigInt) IsZero() bool {
	c := x.chain().trimmed()
	return len(c) == 1 && c[0] == 0
}

// Cmp compares x and y by value and returns -1, 0 or +1.
func (x BigInt) Cmp(y BigInt) int {
	a, b := x.chain().trimmed(), y.chain().trimmed()
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether x and y hold the same value.
func (x BigInt) Equal(y BigInt) bool { return x.Cmp(y) == 0 }

// String returns the decimal representation of x without leading zeros.
// Zero renders as "0".
func (x BigInt) String() string {
	return x.chain().trimmed().String()
}

// MarshalText implements encoding.TextMarshaler.
func (x BigInt) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *BigInt) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

package digits

// addChains returns a + b in a new buffer. The operands may differ in length
// and are never modified.
func addChains(alloc Allocator, a, b Chain) (Chain, error) {
	if len(a) < len(b) {
		a, b = b, a
	}
	out, err := alloc.Alloc(len(a) + 1)
	if err != nil {
		return nil, err
	}

	carry := 0
	for i := range a {
		sum := int(a[i]) + carry
		if i < len(b) {
			sum += int(b[i])
		}
		out[i] = newDigit(sum % 10)
		carry = sum / 10
	}
	if carry == 0 {
		return out[:len(a)], nil
	}
	out[len(a)] = newDigit(carry)
	return out, nil
}

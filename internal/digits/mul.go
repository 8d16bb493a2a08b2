package digits

// writePartial stores d × b shifted left by shift places into buf and
// returns the used prefix. buf must have capacity for shift+len(b)+1 digits
// and its first shift digits must already be zero.
func writePartial(buf Chain, d Digit, b Chain, shift int) Chain {
	buf = buf[:shift+len(b)+1]
	carry := 0
	for j, bd := range b {
		p := int(d)*int(bd) + carry
		buf[shift+j] = newDigit(p % 10)
		carry = p / 10
	}
	if carry == 0 {
		return buf[:shift+len(b)]
	}
	buf[shift+len(b)] = newDigit(carry)
	return buf
}

// mulChains multiplies a by b keeping at most two accumulators alive.
//
// The first digit of a writes its partial product into total. The second
// writes into scratch, shifted one place. From the third digit on, scratch
// is folded into total and then rewritten in place one place further left.
// scratch is sized for the widest partial product up front, so rewriting it
// only ever extends its length.
func mulChains(alloc Allocator, a, b Chain, step StepFunc) (Chain, error) {
	n := len(a)

	total, err := alloc.Alloc(len(b) + 1)
	if err != nil {
		return nil, err
	}
	total = writePartial(total, a[0], b, 0)
	if err := step.call(1, n); err != nil {
		alloc.Free(total)
		return nil, err
	}
	if n == 1 {
		return total.trimmed(), nil
	}

	scratch, err := alloc.Alloc(n + len(b))
	if err != nil {
		alloc.Free(total)
		return nil, err
	}
	scratch = writePartial(scratch, a[1], b, 1)
	if err := step.call(2, n); err != nil {
		alloc.Free(total)
		alloc.Free(scratch)
		return nil, err
	}

	for i := 2; i < n; i++ {
		sum, err := addChains(alloc, total, scratch)
		if err != nil {
			alloc.Free(total)
			alloc.Free(scratch)
			return nil, err
		}
		alloc.Free(total)
		total = sum

		scratch[i-1] = 0
		scratch = writePartial(scratch, a[i], b, i)
		if err := step.call(i+1, n); err != nil {
			alloc.Free(total)
			alloc.Free(scratch)
			return nil, err
		}
	}

	sum, err := addChains(alloc, total, scratch)
	alloc.Free(total)
	alloc.Free(scratch)
	if err != nil {
		return nil, err
	}
	return sum.trimmed(), nil
}

// mulNaiveChains builds all len(a) shifted partial products first and only
// then sums them, holding O(len(a)²) digits at its peak.
func mulNaiveChains(alloc Allocator, a, b Chain, step StepFunc) (Chain, error) {
	partials := make([]Chain, 0, len(a))
	release := func() {
		for _, p := range partials {
			alloc.Free(p)
		}
	}

	for i, d := range a {
		buf, err := alloc.Alloc(i + len(b) + 1)
		if err != nil {
			release()
			return nil, err
		}
		partials = append(partials, writePartial(buf, d, b, i))
		if err := step.call(i+1, len(a)); err != nil {
			release()
			return nil, err
		}
	}

	sum, err := addChains(alloc, partials[0], zeroChain)
	if err != nil {
		release()
		return nil, err
	}
	for _, p := range partials[1:] {
		next, err := addChains(alloc, sum, p)
		alloc.Free(sum)
		if err != nil {
			release()
			return nil, err
		}
		sum = next
	}
	release()
	return sum.trimmed(), nil
}

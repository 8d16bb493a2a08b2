// Package digits implements arbitrary-precision non-negative integers stored
// as decimal digit chains.
//
// A Chain holds one decimal digit per byte, least-significant digit first.
// BigInt wraps a Chain and is immutable once constructed: Add and Mul read
// their operands and always return a freshly allocated result.
//
// Multiplication is schoolbook long multiplication that keeps at most two
// accumulator buffers alive: a running total and a scratch buffer that is
// rewritten in place for every digit of the multiplicand past the second.
// Extra space is therefore linear in the operand sizes, unlike MulNaive which
// materializes every shifted partial product before summing them.
//
// Memory comes from an Allocator. The package-level functions use the Go
// heap; Tracker wraps an allocator to account for the digit buffers of a
// single computation and to enforce an optional byte limit:
//
//	tr := digits.NewTracker(nil, 1<<20)
//	x := digits.With(tr)
//	p, err := x.Mul(a, b)
//	fmt.Println(tr.Stats())
package digits

package arith

import (
	"context"
	"math/big"

	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/progress"
)

// rowStep adapts a context and a progress callback to a digits.StepFunc:
// each completed row is reported and cancellation aborts the next one.
func rowStep(ctx context.Context, reporter progress.ProgressCallback) digits.StepFunc {
	rows := progress.NewRowReporter(reporter)
	return func(done, total int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows.Row(done, total)
		return nil
	}
}

// addDigits is the addition shared by the digit-chain strategies.
func addDigits(ctx context.Context, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	if err := ctx.Err(); err != nil {
		return digits.BigInt{}, err
	}
	return x.Add(a, b)
}

// Accumulate is schoolbook multiplication folding partial products into a
// running total, with one scratch buffer reused for every row.
type Accumulate struct{}

func (*Accumulate) Name() string { return "Accumulating Schoolbook (O(n) extra space)" }

func (*Accumulate) Multiply(ctx context.Context, reporter progress.ProgressCallback, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return x.MulFunc(a, b, rowStep(ctx, reporter))
}

func (*Accumulate) Add(ctx context.Context, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return addDigits(ctx, x, a, b)
}

// PartialList builds every shifted partial product before summing them. It
// is the quadratic-space baseline Accumulate improves on.
type PartialList struct{}

func (*PartialList) Name() string { return "Partial-Product List (O(n²) extra space)" }

func (*PartialList) Multiply(ctx context.Context, reporter progress.ProgressCallback, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return x.MulNaiveFunc(a, b, rowStep(ctx, reporter))
}

func (*PartialList) Add(ctx context.Context, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return addDigits(ctx, x, a, b)
}

// StdLib delegates to math/big and converts the result back into a digit
// chain. It serves as the reference the digit strategies are checked
// against.
type StdLib struct{}

func (*StdLib) Name() string { return "math/big (Karatsuba)" }

func (*StdLib) Multiply(ctx context.Context, _ progress.ProgressCallback, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return stdlibApply(ctx, x, a, b, (*big.Int).Mul)
}

func (*StdLib) Add(ctx context.Context, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return stdlibApply(ctx, x, a, b, (*big.Int).Add)
}

func stdlibApply(ctx context.Context, x digits.Arith, a, b digits.BigInt, fn func(z, x, y *big.Int) *big.Int) (digits.BigInt, error) {
	if err := ctx.Err(); err != nil {
		return digits.BigInt{}, err
	}
	z := fn(new(big.Int), toBigInt(a), toBigInt(b))
	return x.Parse(z.String())
}

// toBigInt converts v to a math/big integer.
func toBigInt(v digits.BigInt) *big.Int {
	z, _ := new(big.Int).SetString(v.String(), 10)
	return z
}

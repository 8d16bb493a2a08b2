//go:build gmp

// The GMP strategy needs cgo and libgmp, so it is only compiled with
// `go build -tags=gmp`.

package arith

import (
	"context"
	"fmt"

	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/progress"
	"github.com/ncw/gmp"
)

func init() {
	_ = RegisterCalculator("gmp", func() coreCalculator { return &GMP{} })
}

// GMP multiplies with libgmp's assembly kernels and converts the result back
// into a digit chain.
type GMP struct{}

func (*GMP) Name() string { return "GMP" }

func (*GMP) Multiply(ctx context.Context, _ progress.ProgressCallback, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return gmpApply(ctx, x, a, b, (*gmp.Int).Mul)
}

func (*GMP) Add(ctx context.Context, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error) {
	return gmpApply(ctx, x, a, b, (*gmp.Int).Add)
}

func gmpApply(ctx context.Context, x digits.Arith, a, b digits.BigInt, fn func(z, x, y *gmp.Int) *gmp.Int) (digits.BigInt, error) {
	if err := ctx.Err(); err != nil {
		return digits.BigInt{}, err
	}
	ga, ok := new(gmp.Int).SetString(a.String(), 10)
	if !ok {
		return digits.BigInt{}, fmt.Errorf("gmp: cannot load operand %s", a)
	}
	gb, ok := new(gmp.Int).SetString(b.String(), 10)
	if !ok {
		return digits.BigInt{}, fmt.Errorf("gmp: cannot load operand %s", b)
	}
	return x.Parse(fn(new(gmp.Int), ga, gb).String())
}

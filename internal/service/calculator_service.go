// Package service runs single digit-chain calculations on behalf of
// request-driven front ends such as the HTTP server.
package service

//go:generate mockgen -source=calculator_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/config"
	"github.com/agbru/digitcalc/internal/digits"
	apperrors "github.com/agbru/digitcalc/internal/errors"
)

// ErrMaxDigitsExceeded is returned when an operand is longer than the
// configured maximum.
var ErrMaxDigitsExceeded = errors.New("maximum operand length exceeded")

// Service computes one operation on two decimal numerals.
type Service interface {
	// Calculate parses a and b, then applies op with the named strategy.
	Calculate(ctx context.Context, algoName string, op arith.Operation, a, b string) (arith.Result, error)
}

// CalculatorService validates operands and runs them through a
// CalculatorFactory with the options of the application configuration.
type CalculatorService struct {
	factory   arith.CalculatorFactory
	opts      arith.Options
	maxDigits int
}

var _ Service = (*CalculatorService)(nil)

// NewCalculatorService builds a service. maxDigits bounds the length of each
// operand string; 0 disables the check.
func NewCalculatorService(factory arith.CalculatorFactory, cfg config.AppConfig, maxDigits int) *CalculatorService {
	return &CalculatorService{
		factory:   factory,
		opts:      cfg.ToCalculationOptions(),
		maxDigits: maxDigits,
	}
}

// Calculate checks operand lengths before parsing so oversized input is
// rejected without allocating digit chains for it.
func (s *CalculatorService) Calculate(ctx context.Context, algoName string, op arith.Operation, a, b string) (arith.Result, error) {
	if s.maxDigits > 0 && (len(a) > s.maxDigits || len(b) > s.maxDigits) {
		return arith.Result{}, ErrMaxDigitsExceeded
	}

	x, err := digits.Parse(a)
	if err != nil {
		return arith.Result{}, apperrors.WrapError(err, "operand a")
	}
	y, err := digits.Parse(b)
	if err != nil {
		return arith.Result{}, apperrors.WrapError(err, "operand b")
	}

	calc, err := s.factory.Get(algoName)
	if err != nil {
		return arith.Result{}, err
	}

	return calc.Calculate(ctx, nil, 0, op, x, y, s.opts)
}

package arith

import (
	"fmt"
	"strings"
)

// Operation selects the arithmetic a Calculator performs.
type Operation int

const (
	OpMultiply Operation = iota
	OpAdd
)

func (op Operation) String() string {
	switch op {
	case OpMultiply:
		return "multiply"
	case OpAdd:
		return "add"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Symbol returns the infix symbol used when printing an expression.
func (op Operation) Symbol() string {
	if op == OpAdd {
		return "+"
	}
	return "×"
}

// ParseOperation accepts "mul", "multiply", "*", "x", "add", "sum" and "+",
// case-insensitively.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mul", "multiply", "*", "x":
		return OpMultiply, nil
	case "add", "sum", "+":
		return OpAdd, nil
	default:
		return 0, &UnknownOperationError{Name: s}
	}
}

// UnknownOperationError reports an operation name that ParseOperation does
// not recognize.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q (want mul or add)", e.Name)
}

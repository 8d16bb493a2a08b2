package server

import "github.com/agbru/digitcalc/internal/digits"

// Response is the JSON body of /multiply and /add. Operands are not echoed
// back; their digit counts are.
type Response struct {
	Operation string `json:"operation"`
	ADigits   int    `json:"a_digits"`
	BDigits   int    `json:"b_digits"`
	// Result is omitted when the calculation failed.
	Result *digits.BigInt `json:"result,omitempty"`
	// Digits is the length of Result once leading zeros are dropped.
	Digits    int    `json:"digits,omitempty"`
	Duration  string `json:"duration"`
	PeakBytes uint64 `json:"peak_bytes"`
	Error     string `json:"error,omitempty"`
	Algorithm string `json:"algorithm"`
}

// ErrorResponse is the JSON body of every rejected request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ParamError is a query parameter problem carrying its HTTP status.
type ParamError struct {
	Message    string
	StatusCode int
}

func (e ParamError) Error() string {
	return e.Message
}

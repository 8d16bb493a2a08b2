package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/logging"
	"github.com/agbru/digitcalc/internal/service"
)

// DefaultAlgorithm serves requests that name no strategy.
const DefaultAlgorithm = "accumulate"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"algorithms": s.factory.List(),
	})
}

// handleOperation serves /multiply and /add. Parameter and operand problems
// are 400s; a failed calculation is reported in the Error field of a 200.
func (s *Server) handleOperation(op arith.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		a, b, algo, err := parseOperandParams(r)
		if err != nil {
			var paramErr ParamError
			if errors.As(err, &paramErr) {
				s.writeErrorResponse(w, paramErr.StatusCode, paramErr.Message)
			} else {
				s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
			}
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
		defer cancel()

		start := time.Now()
		res, err := s.service.Calculate(ctx, algo, op, a, b)
		duration := time.Since(start)

		var unknown *arith.UnknownCalculatorError
		switch {
		case errors.Is(err, service.ErrMaxDigitsExceeded):
			s.writeErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Operands are limited to %d digits.", s.securityConfig.MaxDigits))
			return
		case errors.Is(err, digits.ErrInvalidNumeral):
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		case errors.As(err, &unknown):
			s.writeErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("Unknown algorithm %q. See /algorithms.", unknown.Name))
			return
		case err != nil:
			s.logger.Error("calculation failed", err,
				logging.String("algo", algo), logging.String("op", op.String()))
		default:
			s.logger.Debug("operation served",
				logging.String("algo", algo),
				logging.String("op", op.String()),
				logging.Int("a_digits", len(a)),
				logging.Int("b_digits", len(b)),
				logging.Uint64("peak_bytes", res.Alloc.Peak),
				logging.Duration("duration", duration))
		}

		s.writeJSONResponse(w, http.StatusOK, buildResponse(op, algo, a, b, res, duration, err))
	}
}

// parseOperandParams reads a, b and algo from the query string. Operand
// content is validated later by the service.
func parseOperandParams(r *http.Request) (a, b, algo string, err error) {
	q := r.URL.Query()
	a, b = q.Get("a"), q.Get("b")
	switch {
	case a == "":
		return "", "", "", ParamError{Message: "Missing 'a' parameter", StatusCode: http.StatusBadRequest}
	case b == "":
		return "", "", "", ParamError{Message: "Missing 'b' parameter", StatusCode: http.StatusBadRequest}
	}

	algo = q.Get("algo")
	if algo == "" {
		algo = DefaultAlgorithm
	}
	return a, b, algo, nil
}

func buildResponse(op arith.Operation, algo, a, b string, res arith.Result, duration time.Duration, err error) Response {
	resp := Response{
		Operation: op.String(),
		ADigits:   len(a),
		BDigits:   len(b),
		Duration:  duration.String(),
		PeakBytes: res.Alloc.Peak,
		Algorithm: algo,
	}

	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Result = &res.Value
		resp.Digits = len(res.Value.String())
	}

	return resp
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

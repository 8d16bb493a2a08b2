package server

import (
	"log"
	"time"

	"github.com/agbru/digitcalc/internal/logging"
	"github.com/agbru/digitcalc/internal/service"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger replaces the default zerolog-backed logger. nil is ignored.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger logs through a standard library logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService injects the calculation service, typically a mock in tests.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

func WithSecurityConfig(config SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = config
	}
}

// WithMaxDigits caps the length of each operand accepted by the API.
func WithMaxDigits(maxDigits int) Option {
	return func(s *Server) {
		s.securityConfig.MaxDigits = maxDigits
	}
}

// Timeouts holds the HTTP server time limits.
type Timeouts struct {
	// RequestTimeout bounds a single calculation. The --timeout flag can
	// only shorten it.
	RequestTimeout time.Duration
	// ShutdownTimeout bounds the graceful drain on shutdown.
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}

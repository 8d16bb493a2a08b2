// Package server exposes the digit-chain strategies over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/config"
	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/logging"
	"github.com/agbru/digitcalc/internal/service"
)

// Server is the HTTP front end. It wraps an http.Server with the middleware
// chain and graceful shutdown on SIGINT or SIGTERM.
type Server struct {
	factory        arith.CalculatorFactory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
}

// NewServer builds a server listening on cfg.Port. The operand length cap
// defaults to cfg.MaxDigits and can be overridden with WithMaxDigits.
func NewServer(factory arith.CalculatorFactory, cfg config.AppConfig, opts ...Option) *Server {
	security := DefaultSecurityConfig()
	if cfg.MaxDigits > 0 {
		security.MaxDigits = cfg.MaxDigits
	}

	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: security,
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
	}

	if cfg.Timeout > 0 && cfg.Timeout < s.timeouts.RequestTimeout {
		s.timeouts.RequestTimeout = cfg.Timeout
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.service == nil {
		s.service = service.NewCalculatorService(s.factory, s.cfg, s.securityConfig.MaxDigits)
	}
	if s.rateLimiter == nil {
		rlConfig := DefaultRateLimiterConfig()
		// Validate has already rejected malformed entries.
		rlConfig.TrustedProxies, _ = cfg.TrustedProxyPrefixes()
		s.rateLimiter = NewRateLimiter(rlConfig)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/multiply", s.wrapWithMiddleware(s.handleOperation(arith.OpMultiply)))
	mux.HandleFunc("/add", s.wrapWithMiddleware(s.handleOperation(arith.OpAdd)))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/algorithms", s.wrapWithMiddleware(s.handleAlgorithms))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// Handler returns the routed handler with its middleware chain.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// wrapWithMiddleware applies Security -> RateLimit -> Logging -> Metrics.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start serves until a shutdown signal arrives, then drains in-flight
// requests within the shutdown timeout.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.Int("max_digits", s.securityConfig.MaxDigits),
			logging.String("memory_limit", s.cfg.MemoryLimit))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /multiply?a=<digits>&b=<digits>&algo=<algorithm>")
		s.logger.Println("  GET /add?a=<digits>&b=<digits>&algo=<algorithm>")
		s.logger.Println("  GET /algorithms")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/config"
)

var hardeningHeaders = map[string]string{
	"X-Content-Type-Options":  "nosniff",
	"X-Frame-Options":         "DENY",
	"X-XSS-Protection":        "1; mode=block",
	"Referrer-Policy":         "strict-origin-when-cross-origin",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
}

func serve(s *Server, method, target, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestDefaultSecurityConfig(t *testing.T) {
	c := DefaultSecurityConfig()
	if !c.EnableCORS || len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "*" {
		t.Errorf("CORS defaults = %+v", c)
	}
	if strings.Join(c.AllowedMethods, ",") != "GET,OPTIONS" {
		t.Errorf("AllowedMethods = %v", c.AllowedMethods)
	}
	if c.MaxDigits != config.DefaultMaxDigits {
		t.Errorf("MaxDigits = %d, want %d", c.MaxDigits, config.DefaultMaxDigits)
	}
}

func TestOperationResponsesAreHardened(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"multiply", "/multiply?a=12345&b=678", http.StatusOK},
		{"add", "/add?a=999&b=1", http.StatusOK},
		{"multiply over cap", "/multiply?a=" + strings.Repeat("7", 51) + "&b=3", http.StatusBadRequest},
		{"add over cap", "/add?a=1&b=" + strings.Repeat("9", 51), http.StatusBadRequest},
		{"invalid numeral", "/add?a=12x&b=1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			for name, want := range hardeningHeaders {
				if got := rec.Header().Get(name); got != want {
					t.Errorf("%s = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestMaxDigitsRejection(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/multiply", "/add"} {
		t.Run(path, func(t *testing.T) {
			at := serve(s, http.MethodGet, path+"?a="+strings.Repeat("1", 50)+"&b=2", "")
			if at.Code != http.StatusOK {
				t.Fatalf("operand at the cap rejected: %d %s", at.Code, at.Body.String())
			}

			over := serve(s, http.MethodGet, path+"?a=2&b="+strings.Repeat("1", 51), "")
			if over.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", over.Code)
			}
			body := decode[ErrorResponse](t, over)
			if body.Error != http.StatusText(http.StatusBadRequest) ||
				body.Message != "Operands are limited to 50 digits." {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestOperationCORS(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerMinute: 10_000})
	t.Cleanup(rl.Stop)
	s := NewServer(arith.NewDefaultFactory(), config.AppConfig{Port: "0", MaxDigits: 50},
		WithLogger(newTestLogger()), WithRateLimiter(rl),
		WithSecurityConfig(SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: []string{"https://calc.example.com"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			MaxDigits:      50,
		}))

	t.Run("allowed origin", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/multiply?a=11&b=11", "https://calc.example.com")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://calc.example.com" {
			t.Errorf("Allow-Origin = %q", got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
			t.Errorf("Allow-Methods = %q", got)
		}
		if resp := decode[Response](t, rec); resp.Result == nil || resp.Result.String() != "121" {
			t.Errorf("result = %v, want 121", resp.Result)
		}
	})

	t.Run("foreign origin", func(t *testing.T) {
		rec := serve(s, http.MethodGet, "/add?a=1&b=1", "https://evil.example.org")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin leaked to foreign origin: %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		for _, path := range []string{"/multiply", "/add"} {
			rec := serve(s, http.MethodOptions, path, "https://calc.example.com")
			if rec.Code != http.StatusNoContent {
				t.Errorf("%s preflight status = %d, want 204", path, rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("%s preflight has a body: %q", path, rec.Body.String())
			}
			if rec.Header().Get("Access-Control-Max-Age") != "86400" {
				t.Errorf("%s preflight Max-Age = %q", path, rec.Header().Get("Access-Control-Max-Age"))
			}
		}
	})

	t.Run("disabled", func(t *testing.T) {
		plain := newTestServer(t, WithSecurityConfig(SecurityConfig{MaxDigits: 50}))
		rec := serve(plain, http.MethodOptions, "/multiply", "https://calc.example.com")
		// Without CORS the handler itself refuses OPTIONS.
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "" {
			t.Error("CORS headers set while disabled")
		}
		if rec.Header().Get("X-Frame-Options") != "DENY" {
			t.Error("hardening headers must not depend on CORS")
		}
	})
}

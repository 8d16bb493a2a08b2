package server

import (
	"net/http"
	"strings"

	"github.com/agbru/digitcalc/internal/config"
)

// SecurityConfig controls response hardening headers, CORS and the operand
// length cap.
type SecurityConfig struct {
	EnableCORS bool
	// AllowedOrigins lists CORS origins; "*" allows any.
	AllowedOrigins []string
	AllowedMethods []string
	// MaxDigits is the longest operand accepted, in characters. 0 disables
	// the cap.
	MaxDigits int
}

// DefaultSecurityConfig allows GET from any origin and operands of up to
// config.DefaultMaxDigits digits.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxDigits:      config.DefaultMaxDigits,
	}
}

// SecurityMiddleware sets hardening headers on every response, adds CORS
// headers for allowed origins and answers preflight requests itself.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			origin := r.Header.Get("Origin")
			allowedOrigin := ""
			for _, allowed := range config.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					allowedOrigin = allowed
					break
				}
			}

			if allowedOrigin != "" {
				h.Set("Access-Control-Allow-Origin", allowedOrigin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}

package middleware

import (
	"net/http"
)

// SecurityHeaders adds security-related HTTP headers to console responses
type SecurityHeaders struct {
	isDevelopment bool
}

// NewSecurityHeaders creates a new security headers middleware
func NewSecurityHeaders(isDevelopment bool) *SecurityHeaders {
	return &SecurityHeaders{
		isDevelopment: isDevelopment,
	}
}

// ContentSecurityPolicy returns the policy for the console. Pages post
// forms back to the console and load script and style from /static only.
func (sh *SecurityHeaders) ContentSecurityPolicy() string {
	return "default-src 'none'; " +
		"script-src 'self'; " +
		"style-src 'self'; " +
		"img-src 'self'; " +
		"connect-src 'self'; " +
		"form-action 'self'; " +
		"frame-ancestors 'none'; " +
		"base-uri 'none'"
}

// Middleware wraps an HTTP handler with security headers
func (sh *SecurityHeaders) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")

		// HSTS only outside development to avoid pinning localhost to https
		if !sh.isDevelopment {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		h.Set("Content-Security-Policy", sh.ContentSecurityPolicy())
		h.Set("Referrer-Policy", "no-referrer")

		// card data must never be cached by shared or browser caches
		h.Set("Cache-Control", "no-store")

		h.Set("Permissions-Policy",
			"geolocation=(), "+
				"microphone=(), "+
				"camera=(), "+
				"payment=(), "+
				"usb=()")

		next.ServeHTTP(w, r)
	})
}

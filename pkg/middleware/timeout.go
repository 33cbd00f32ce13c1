package middleware

import (
	"net/http"

	"github.com/kevin07696/card-wallet/pkg/resilience"
)

// Timeout bounds every request by the handler timeout of the hierarchy.
// An earlier deadline already on the request context is kept.
func Timeout(config *resilience.TimeoutConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := config.HandlerContext(r.Context())
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

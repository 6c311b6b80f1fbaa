package middleware

import (
	"net/http"
	"time"

	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/go-chi/httprate"
)

// DefaultAuthRequestsPerMinute applies to the unauthenticated /auth endpoints.
const DefaultAuthRequestsPerMinute = 20

// RateLimitByClientIP limits requests per client address, resolved the same
// way the request logger resolves it.
func RateLimitByClientIP(requestsPerMinute int, ips *pkghttp.ClientIPResolver) func(next http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultAuthRequestsPerMinute
	}
	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return ips.ClientIP(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			pkghttp.WriteTooManyRequests(w, "too many requests, try again later")
		}),
	)
}

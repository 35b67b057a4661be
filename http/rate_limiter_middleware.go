package http

import (
	"net/http"
)

// RateLimitMiddleware rejects requests whose client bucket is empty.
// clients may be nil, in which case the TCP peer address is the key.
func RateLimitMiddleware(limiter *RateLimiter, clients *ClientIP, onReject func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clients.Key(r)) {
				if onReject != nil {
					onReject()
				}
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

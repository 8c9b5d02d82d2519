package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"promptglot/internal/domain"
)

type bucket struct {
	count int
	until time.Time
}

// RateLimit allows limit requests per client IP in each fixed window. A
// non-positive limit disables the check.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	return rateLimit(limit, per, time.Now)
}

func rateLimit(limit int, per time.Duration, now func() time.Time) func(http.Handler) http.Handler {
	var mu sync.Mutex
	buckets := make(map[string]*bucket)
	lastSweep := now()

	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIPForRateLimit(r)
			current := now()

			mu.Lock()
			if current.Sub(lastSweep) > per {
				for key, b := range buckets {
					if current.After(b.until) {
						delete(buckets, key)
					}
				}
				lastSweep = current
			}
			b, ok := buckets[ip]
			if !ok || current.After(b.until) {
				b = &bucket{until: current.Add(per)}
				buckets[ip] = b
			}
			if b.count >= limit {
				retryAfter := int(b.until.Sub(current).Seconds()) + 1
				mu.Unlock()
				writeRateLimited(w, retryAfter)
				return
			}
			b.count++
			mu.Unlock()
			next.ServeHTTP(w, r)
		})
	}
}

func writeRateLimited(w http.ResponseWriter, retryAfter int) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Too many requests",
		"code":    domain.CodeRateLimited,
	})
}

// clientIPForRateLimit keys on the connection address. Proxy headers only
// count once RealIP has copied them into RemoteAddr.
func clientIPForRateLimit(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}

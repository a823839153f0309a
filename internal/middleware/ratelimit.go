// ABOUTME: Per-IP token-bucket rate limiting for the login endpoint
// ABOUTME: Uses golang.org/x/time/rate with idle limiter eviction

package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/secureapi/gateway/internal/respond"
)

// idleEvictAfter is how long an IP's limiter may sit unused before the
// next insertion may evict it.
const idleEvictAfter = 10 * time.Minute

// ipLimiter pairs a limiter with its last-seen time for eviction.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP using a token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
}

// NewRateLimiter creates a limiter allowing perMinute requests per IP
// with the given burst.
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

// getLimiter returns the limiter for an IP, creating it if needed and
// evicting idle entries while the map is locked.
func (l *RateLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if entry, ok := l.limiters[ip]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	for addr, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > idleEvictAfter {
			delete(l.limiters, addr)
		}
	}

	entry := &ipLimiter{
		limiter:  rate.NewLimiter(l.rate, l.burst),
		lastSeen: now,
	}
	l.limiters[ip] = entry
	return entry.limiter
}

// Limit wraps a handler, terminating with 429 when the client IP has
// exhausted its bucket.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !l.getLimiter(ip).Allow() {
			respond.Error(w, http.StatusTooManyRequests, "Too Many Requests", "Too many login attempts")
			return
		}
		next.ServeHTTP(w, r)
	})
}

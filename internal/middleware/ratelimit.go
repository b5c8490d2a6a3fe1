package middleware

import (
	"net/http"
	"sync"
	"time"

	"confms/internal/config"
)

// RateLimiter implements a simple per-IP token bucket
type RateLimiter struct {
	enabled  bool
	requests int
	burst    int
	visitors map[string]*visitor
	mu       sync.Mutex
}

type visitor struct {
	lastSeen time.Time
	tokens   int
}

// NewRateLimiter creates a new rate limiter; the bucket refills once per minute
func NewRateLimiter(cfg *config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		enabled:  cfg.Enabled,
		requests: cfg.RequestsPerMinute,
		burst:    cfg.Burst,
		visitors: make(map[string]*visitor),
	}

	go rl.cleanupVisitors()

	return rl
}

// Limit rejects requests that exceed the per-IP budget
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip := clientIP(r)
		now := time.Now()

		rl.mu.Lock()
		v, exists := rl.visitors[ip]
		if !exists {
			rl.visitors[ip] = &visitor{lastSeen: now, tokens: rl.requests + rl.burst - 1}
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		if now.Sub(v.lastSeen) >= time.Minute {
			v.tokens = rl.requests + rl.burst - 1
			v.lastSeen = now
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}

		if v.tokens > 0 {
			v.tokens--
			v.lastSeen = now
			rl.mu.Unlock()
			next.ServeHTTP(w, r)
			return
		}
		rl.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Rate limit exceeded. Please try again later."}`))
	})
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

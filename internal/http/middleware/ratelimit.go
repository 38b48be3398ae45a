// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter keyed by
// client IP, with opportunistic garbage collection of idle buckets.
//
// Features:
//   - Per-key token buckets using golang.org/x/time/rate
//   - Pluggable identity function (client IP by default)
//   - Exempt paths for probes and scrapes (/health, /metrics)
//   - Bypass for idempotent replays (when paired with IdempotencyValidator)
//
// The limiter is process-local; it is edge-level abuse control, not an
// authorization mechanism.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by the client address as resolved by Gin
// (honoring the engine's trusted proxy settings).
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

// rateLimited counts requests rejected with 429.
var rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "http_rate_limited_total",
	Help: "Requests rejected by the rate limiter.",
})

func init() {
	prometheus.MustRegister(rateLimited)
}

// visitor holds a single rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket rate limiter.
// It is safe for concurrent use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor
	exempt   map[string]struct{}

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter constructs a RateLimiter with the given tokens-per-second
// and burst size, keyed by keyFn. burst <= 0 is coerced to 1 and a nil keyFn
// keys by client IP.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	if keyFn == nil {
		keyFn = KeyByClientIP()
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		exempt:   make(map[string]struct{}),
		ttl:      10 * time.Minute, // evict idle entries after TTL
	}
}

// Exempt excludes the given raw request paths from limiting and returns rl.
func (rl *RateLimiter) Exempt(paths ...string) *RateLimiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for _, p := range paths {
		rl.exempt[p] = struct{}{}
	}
	return rl
}

func (rl *RateLimiter) isExempt(path string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	_, ok := rl.exempt[path]
	return ok
}

// getVisitor returns (and updates) the limiter for key, creating it if absent.
// Every ~5000 lookups idle entries are evicted first, so an old bucket is
// dropped even when it is the one being fetched.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= 5000 {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}

	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request for
// rate-limit bypass (i.e., it is a replay of a previously completed request).
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Handler returns a Gin middleware that enforces per-key token-bucket limits.
// Replays and exempt paths pass through without consuming tokens. Rejected
// requests get 429 with Retry-After: 1 and the error envelope:
//
//	{
//	  "success":    false,
//	  "error":      "rate limit exceeded",
//	  "code":       "rate_limited",
//	  "request_id": "<uuid>"
//	}
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) || rl.isExempt(c.Request.URL.Path) {
			c.Next()
			return
		}

		if rl.getVisitor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		rateLimited.Inc()
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success":    false,
			"error":      "rate limit exceeded",
			"code":       "rate_limited",
			"request_id": c.Writer.Header().Get(requestIDHeader),
		})
	}
}

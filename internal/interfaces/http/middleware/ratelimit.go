package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/interfaces/http/dto"
)

// RateLimiter is an in-memory fixed-window limiter keyed by caller.
// Good enough for a single-instance deployment; a multi-instance setup
// would need a shared store.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	remaining int
	resetAt   time.Time
}

// NewRateLimiter allows limit requests per key per window and evicts
// idle keys in the background.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.evictLoop(2 * window)
	return rl
}

func (rl *RateLimiter) evictLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if now.After(b.resetAt.Add(rl.window)) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Take consumes one slot for key. It reports whether the request is
// allowed and how many slots remain in the current window.
func (rl *RateLimiter) Take(key string) (bool, int) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || now.After(b.resetAt) {
		rl.buckets[key] = &bucket{
			remaining: rl.limit - 1,
			resetAt:   now.Add(rl.window),
		}
		return true, rl.limit - 1
	}
	if b.remaining <= 0 {
		return false, 0
	}
	b.remaining--
	return true, b.remaining
}

// RateLimit limits requests per client IP across the whole API.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return limitBy(limiter, "", dto.ErrCodeRateLimited,
		"Too many requests. Please try again later.")
}

// AuthRateLimit is the stricter limiter in front of register and login,
// slowing down credential stuffing. Keys are prefixed so a limiter
// instance never shares buckets with RateLimit.
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return limitBy(limiter, "auth:", "AUTH_RATE_LIMITED",
		"Too many authentication attempts. Please try again later.")
}

func limitBy(limiter *RateLimiter, keyPrefix, code, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := limiter.Take(keyPrefix + c.ClientIP())
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(limiter.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(code, message, c.GetString("request_id")))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Next()
	}
}

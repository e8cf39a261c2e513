package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterTake(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		rl := NewRateLimiter(3, time.Minute)

		for want := 2; want >= 0; want-- {
			allowed, remaining := rl.Take("10.0.0.1")
			assert.True(t, allowed)
			assert.Equal(t, want, remaining)
		}

		allowed, remaining := rl.Take("10.0.0.1")
		assert.False(t, allowed)
		assert.Equal(t, 0, remaining)
	})

	t.Run("keys do not share buckets", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute)

		allowed, _ := rl.Take("10.0.0.1")
		require.True(t, allowed)
		allowed, _ = rl.Take("10.0.0.1")
		require.False(t, allowed)

		allowed, _ = rl.Take("10.0.0.2")
		assert.True(t, allowed)
	})

	t.Run("window expiry refills the bucket", func(t *testing.T) {
		rl := NewRateLimiter(1, 20*time.Millisecond)

		allowed, _ := rl.Take("10.0.0.1")
		require.True(t, allowed)
		allowed, _ = rl.Take("10.0.0.1")
		require.False(t, allowed)

		time.Sleep(30 * time.Millisecond)

		allowed, remaining := rl.Take("10.0.0.1")
		assert.True(t, allowed)
		assert.Equal(t, 0, remaining)
	})
}

func newRateLimitEngine(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw)
	engine.GET("/api/v1/invoices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	engine.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return engine
}

func TestRateLimit(t *testing.T) {
	t.Run("sets the limit headers", func(t *testing.T) {
		engine := newRateLimitEngine(RateLimit(NewRateLimiter(5, time.Minute)))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("rejects past the limit with retry hint", func(t *testing.T) {
		engine := newRateLimitEngine(RateLimit(NewRateLimiter(2, time.Minute)))

		var w *httptest.ResponseRecorder
		for i := 0; i < 3; i++ {
			w = httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil))
		}

		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	})
}

func TestAuthRateLimit(t *testing.T) {
	t.Run("rejects with its own error code", func(t *testing.T) {
		engine := newRateLimitEngine(AuthRateLimit(NewRateLimiter(1, time.Minute)))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
		require.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_RATE_LIMITED")
	})

	t.Run("never shares buckets with the global limiter", func(t *testing.T) {
		limiter := NewRateLimiter(1, time.Minute)

		gin.SetMode(gin.TestMode)
		engine := gin.New()
		engine.Use(RateLimit(limiter))
		engine.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })
		authEngine := gin.New()
		authEngine.Use(AuthRateLimit(limiter))
		authEngine.POST("/api/v1/auth/login", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
		require.Equal(t, http.StatusOK, w.Code)

		// Global bucket is spent, the auth-prefixed one is untouched.
		w = httptest.NewRecorder()
		authEngine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCORSEngine(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORSWithConfig(cfg))
	engine.GET("/api/v1/customers", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return engine
}

func TestCORSWithConfig(t *testing.T) {
	whitelisted := CORSConfig{
		AllowOrigins:     []string{"https://app.ledgerly.example"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}

	t.Run("whitelisted origin gets full headers", func(t *testing.T) {
		engine := newCORSEngine(whitelisted)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.Header.Set("Origin", "https://app.ledgerly.example")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://app.ledgerly.example", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		engine := newCORSEngine(whitelisted)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.Header.Set("Origin", "https://evil.example")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist rejects every origin", func(t *testing.T) {
		engine := newCORSEngine(DefaultCORSConfig())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.Header.Set("Origin", "https://app.ledgerly.example")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := whitelisted
		cfg.AllowOrigins = []string{"*"}
		engine := newCORSEngine(cfg)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		engine.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight returns 204 even for unknown origins", func(t *testing.T) {
		engine := newCORSEngine(whitelisted)
		engine.POST("/api/v1/customers", func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
		req.Header.Set("Origin", "https://evil.example")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight from a whitelisted origin carries headers", func(t *testing.T) {
		engine := newCORSEngine(whitelisted)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/customers", nil)
		req.Header.Set("Origin", "https://app.ledgerly.example")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://app.ledgerly.example", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func() (*gin.Engine, *string) {
		var seen string
		engine := gin.New()
		engine.Use(RequestID())
		engine.GET("/ping", func(c *gin.Context) {
			seen = c.GetString("request_id")
			c.Status(http.StatusOK)
		})
		return engine, &seen
	}

	t.Run("issues a UUID when the header is absent", func(t *testing.T) {
		engine, seen := newEngine()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		echoed := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(echoed)
		require.NoError(t, err)
		assert.Equal(t, echoed, *seen)
	})

	t.Run("keeps an incoming id", func(t *testing.T) {
		engine, seen := newEngine()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "gateway-trace-42")
		engine.ServeHTTP(w, req)

		assert.Equal(t, "gateway-trace-42", w.Header().Get("X-Request-ID"))
		assert.Equal(t, "gateway-trace-42", *seen)
	})

	t.Run("each request gets a distinct id", func(t *testing.T) {
		engine, _ := newEngine()

		w1 := httptest.NewRecorder()
		engine.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/ping", nil))
		w2 := httptest.NewRecorder()
		engine.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEqual(t, w1.Header().Get("X-Request-ID"), w2.Header().Get("X-Request-ID"))
	})
}

func TestSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(cfg SecurityConfig) *httptest.ResponseRecorder {
		engine := gin.New()
		engine.Use(SecureWithConfig(cfg))
		engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		return w
	}

	t.Run("defaults lock down a JSON API", func(t *testing.T) {
		w := serve(DefaultSecurityConfig())

		assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
		assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
		assert.Contains(t, w.Header().Get("Permissions-Policy"), "camera=()")
		assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("HSTS header assembled from config", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.HSTSEnabled = true
		cfg.HSTSPreload = true
		w := serve(cfg)

		assert.Equal(t, "max-age=31536000; includeSubDomains; preload",
			w.Header().Get("Strict-Transport-Security"))
	})

	t.Run("disabled policies emit no headers", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.CSPEnabled = false
		cfg.PermissionsPolicyEnabled = false
		w := serve(cfg)

		assert.Empty(t, w.Header().Get("Content-Security-Policy"))
		assert.Empty(t, w.Header().Get("Permissions-Policy"))
	})
}

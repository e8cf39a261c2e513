package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBodyLimitEngine(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("request_id", "req-body")
		c.Next()
	})
	engine.Use(BodyLimit(maxBytes))
	engine.POST("/api/v1/invoices", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})
	return engine
}

func TestBodyLimit(t *testing.T) {
	t.Run("accepts a body within the limit", func(t *testing.T) {
		engine := newBodyLimitEngine(64)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices",
			strings.NewReader(`{"customer_id":"x"}`))
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("rejects an oversized declared body", func(t *testing.T) {
		engine := newBodyLimitEngine(16)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices",
			strings.NewReader(strings.Repeat("a", 64)))
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
		assert.Contains(t, w.Body.String(), "req-body")
	})

	t.Run("caps the reader when no length is declared", func(t *testing.T) {
		engine := newBodyLimitEngine(16)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices",
			strings.NewReader(strings.Repeat("a", 64)))
		req.ContentLength = -1
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

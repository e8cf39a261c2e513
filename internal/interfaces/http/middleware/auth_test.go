package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/infrastructure/auth"
)

type stubVerifier struct {
	identity *auth.VerifiedIdentity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, idToken string) (*auth.VerifiedIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func testUser(t *testing.T, role string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("firebase-abc", "user@example.com", "Ada", "Lovelace")
	require.NoError(t, err)
	if role != "" {
		user.AssignRole(identity.NewUserRole(role, ""))
	}
	return user
}

func authRouter(verifier auth.TokenVerifier, user *identity.User, skipPaths ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	resolve := func(c *gin.Context, firebaseID string) (*identity.User, error) {
		if user == nil {
			return nil, auth.ErrInvalidToken
		}
		return user, nil
	}
	router.Use(Auth(verifier, resolve, skipPaths...))
	router.GET("/protected", func(c *gin.Context) {
		current := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": current.Email})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestAuth(t *testing.T) {
	t.Run("rejects requests without a token", func(t *testing.T) {
		router := authRouter(&stubVerifier{}, nil)

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects malformed authorization headers", func(t *testing.T) {
		router := authRouter(&stubVerifier{}, nil)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects expired tokens with a dedicated code", func(t *testing.T) {
		router := authRouter(&stubVerifier{err: auth.ErrExpiredToken}, nil)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer expired")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("resolves a verified token to the local account", func(t *testing.T) {
		user := testUser(t, identity.RoleClient)
		verifier := &stubVerifier{identity: &auth.VerifiedIdentity{Subject: "firebase-abc"}}
		router := authRouter(verifier, user)

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer valid")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user@example.com")
	})

	t.Run("skips configured paths", func(t *testing.T) {
		router := authRouter(&stubVerifier{err: auth.ErrInvalidToken}, nil, "/health")

		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(user *identity.User) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if user != nil {
				c.Set(ContextUserKey, user)
			}
		})
		router.Use(RequireAdmin())
		router.GET("/admin", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("allows admins", func(t *testing.T) {
		router := newRouter(testUser(t, identity.RoleAdmin))

		req := httptest.NewRequest("GET", "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("forbids regular users", func(t *testing.T) {
		router := newRouter(testUser(t, identity.RoleClient))

		req := httptest.NewRequest("GET", "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})

	t.Run("rejects unauthenticated requests", func(t *testing.T) {
		router := newRouter(nil)

		req := httptest.NewRequest("GET", "/admin", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/infrastructure/auth"
	"github.com/ledgerly/backend/internal/infrastructure/logger"
	"github.com/ledgerly/backend/internal/interfaces/http/dto"
)

// ContextUserKey is the gin context key holding the authenticated user
const ContextUserKey = "current_user"

// Auth verifies the bearer token on every request and resolves it to a
// local account. Paths in skipPaths pass through unauthenticated, which
// covers health checks and the register/login endpoints that validate
// the token themselves.
func Auth(verifier auth.TokenVerifier, resolve func(c *gin.Context, firebaseID string) (*identity.User, error), skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authorization token is required")
			return
		}

		ident, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			code := dto.ErrCodeUnauthorized
			message := "Authorization token is invalid"
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
				message = "Authorization token has expired"
			}
			abortUnauthorized(c, code, message)
			return
		}

		user, err := resolve(c, ident.Subject)
		if err != nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "No account for this identity, please register")
			return
		}

		c.Set(ContextUserKey, user)

		ctx, _ := logger.WithUserID(c.Request.Context(), logger.GetGinLogger(c), user.ID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin users. Must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !user.IsAdmin() {
			requestID := c.GetString("request_id")
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Administrator access required", requestID))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the gin context, or
// nil when the request is unauthenticated
func CurrentUser(c *gin.Context) *identity.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*identity.User)
	return user
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, code, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, requestID))
}

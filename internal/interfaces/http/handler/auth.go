package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/ledgerly/backend/internal/application/identity"
	"github.com/ledgerly/backend/internal/infrastructure/logger"
)

// AuthHandler handles registration and login endpoints. Both take the
// identity token from the Authorization header, not the body, so
// credentials never end up in request logs.
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register provisions a local account for a verified identity token
func (h *AuthHandler) Register(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.Unauthorized(c, "Authorization token is required")
		return
	}

	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), token, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("user registered", zap.String("user_id", user.ID))
	h.Created(c, user)
}

// Login resolves a verified identity token to its local account
func (h *AuthHandler) Login(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.Unauthorized(c, "Authorization token is required")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), token)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

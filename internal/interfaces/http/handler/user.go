package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/ledgerly/backend/internal/application/identity"
)

// UserHandler handles user profile and admin user listing endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the authenticated user's own profile
func (h *UserHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	response := identityapp.ToUserResponse(user)
	h.Success(c, response)
}

// List returns all users. Admin only, enforced by the router.
func (h *UserHandler) List(c *gin.Context) {
	var req identityapp.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, req.Page, req.PageSize)
}

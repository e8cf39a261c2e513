package handler

import (
	"github.com/gin-gonic/gin"

	searchapp "github.com/ledgerly/backend/internal/application/search"
)

// SearchHandler handles the global search endpoint
type SearchHandler struct {
	BaseHandler
	searchService *searchapp.Service
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *searchapp.Service) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs the query across the authenticated user's data. Admins
// additionally get matching users.
func (h *SearchHandler) Search(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	query := c.Query("q")

	results, err := h.searchService.Search(c.Request.Context(), user.ID, user.IsAdmin(), query)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, results)
}

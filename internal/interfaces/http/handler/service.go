package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/ledgerly/backend/internal/application/billing"
)

// ServiceHandler handles the service catalog endpoints: reusable line
// item templates not attached to any invoice
type ServiceHandler struct {
	BaseHandler
	catalogService *billingapp.ServiceCatalogService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(catalogService *billingapp.ServiceCatalogService) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService}
}

// Create adds a template to the authenticated user's catalog
func (h *ServiceHandler) Create(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	service, err := h.catalogService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, service)
}

// Get returns a single template
func (h *ServiceHandler) Get(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	service, err := h.catalogService.GetByID(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, service)
}

// List returns the user's catalog ordered by title, optionally
// filtered with ?q=
func (h *ServiceHandler) List(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.ServiceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	services, err := h.catalogService.List(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, services)
}

// Update applies a partial update to a template
func (h *ServiceHandler) Update(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req billingapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	service, err := h.catalogService.Update(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, service)
}

// Delete removes a template from the catalog
func (h *ServiceHandler) Delete(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

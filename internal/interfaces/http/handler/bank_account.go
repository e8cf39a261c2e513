package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/ledgerly/backend/internal/application/billing"
)

// BankAccountHandler handles bank account CRUD endpoints
type BankAccountHandler struct {
	BaseHandler
	bankAccountService *billingapp.BankAccountService
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(bankAccountService *billingapp.BankAccountService) *BankAccountHandler {
	return &BankAccountHandler{bankAccountService: bankAccountService}
}

// Create creates a bank account owned by the authenticated user
func (h *BankAccountHandler) Create(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.bankAccountService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// Get returns a single bank account
func (h *BankAccountHandler) Get(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID")
		return
	}

	account, err := h.bankAccountService.GetByID(c.Request.Context(), ownerID, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// List returns the authenticated user's bank accounts
func (h *BankAccountHandler) List(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	accounts, total, err := h.bankAccountService.List(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts, total, req.Page, req.PageSize)
}

// Update applies a partial update to a bank account
func (h *BankAccountHandler) Update(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID")
		return
	}

	var req billingapp.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.bankAccountService.Update(c.Request.Context(), ownerID, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// Delete removes a bank account. Blocked while invoices reference it.
func (h *BankAccountHandler) Delete(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID")
		return
	}

	if err := h.bankAccountService.Delete(c.Request.Context(), ownerID, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

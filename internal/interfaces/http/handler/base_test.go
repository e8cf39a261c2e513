package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Set("request_id", "ctx-id")

		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("falls back to header", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request.Header.Set("X-Request-ID", "header-id")

		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when absent", func(t *testing.T) {
		c, _ := newTestContext(t)

		assert.Empty(t, getRequestID(c))
	})
}

func TestBaseHandlerResponses(t *testing.T) {
	h := &BaseHandler{}

	t.Run("success wraps data", func(t *testing.T) {
		c, w := newTestContext(t)
		h.Success(c, gin.H{"value": 42})

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decodeResponse(t, w)
		assert.True(t, resp.Success)
	})

	t.Run("created returns 201", func(t *testing.T) {
		c, w := newTestContext(t)
		h.Created(c, gin.H{"id": "abc"})

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("no content returns 204 with empty body", func(t *testing.T) {
		c, w := newTestContext(t)
		h.NoContent(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("success with meta computes total pages", func(t *testing.T) {
		c, w := newTestContext(t)
		h.SuccessWithMeta(c, []int{1, 2}, 45, 1, 20)

		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(45), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})
}

func TestHandleDomainError(t *testing.T) {
	h := &BaseHandler{}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"resource in use", shared.ErrResourceInUse, http.StatusConflict, "RESOURCE_IN_USE"},
		{"business rule", shared.NewDomainError("BUSINESS_RULE", "Amount cannot be negative"), http.StatusUnprocessableEntity, "BUSINESS_RULE"},
		{"field level code", shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty"), http.StatusBadRequest, "INVALID_INVOICE_NUMBER"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(t)
			c.Set("request_id", "req-1")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestBindError(t *testing.T) {
	h := &BaseHandler{}

	t.Run("reports validator failures per field", func(t *testing.T) {
		type payload struct {
			LegalName string `json:"legal_name" binding:"required"`
			Currency  string `json:"currency" binding:"omitempty,len=3"`
		}

		c, w := newTestContext(t)
		c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{"currency":"EURO"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		var req payload
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)

		h.BindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Len(t, resp.Error.Details, 2)
	})

	t.Run("treats malformed JSON as bad request", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest("POST", "/", strings.NewReader(`{not json`))
		c.Request.Header.Set("Content-Type", "application/json")

		var req struct {
			Name string `json:"name"`
		}
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)

		h.BindError(c, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}

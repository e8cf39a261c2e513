package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

// CreateCategoryRequest carries the fields for creating a category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Icon  string `json:"icon" binding:"max=50"`
}

// UpdateCategoryRequest carries a partial category update
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Icon  *string `json:"icon" binding:"omitempty,max=50"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *ledger.TransactionCategory) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of domain categories
func ToCategoryResponses(categories []ledger.TransactionCategory) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// ListRequest holds common pagination and search parameters
type ListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// CreateTransactionRequest carries the fields for creating a transaction
type CreateTransactionRequest struct {
	Type          string           `json:"type" binding:"required,oneof=income expense"`
	Context       string           `json:"context" binding:"required,oneof=business personal"`
	Description   string           `json:"description" binding:"required,min=1,max=255"`
	Amount        float64          `json:"amount" binding:"required,gt=0"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	Date          valueobject.Date `json:"date"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	BankAccountID *uuid.UUID       `json:"bank_account_id"`
	Notes         string           `json:"notes"`
}

// UpdateTransactionRequest carries a partial transaction update.
// Optional fields distinguish absent from explicit null; nulling
// category_id or bank_account_id detaches the reference.
type UpdateTransactionRequest struct {
	Type          shared.Optional[string]           `json:"type"`
	Context       shared.Optional[string]           `json:"context"`
	Description   shared.Optional[string]           `json:"description"`
	Amount        shared.Optional[float64]          `json:"amount"`
	Currency      shared.Optional[string]           `json:"currency"`
	Date          shared.Optional[valueobject.Date] `json:"date"`
	CategoryID    shared.Optional[uuid.UUID]        `json:"category_id"`
	BankAccountID shared.Optional[uuid.UUID]        `json:"bank_account_id"`
	Notes         shared.Optional[string]           `json:"notes"`
}

// TransactionFilterRequest holds list and aggregation filters for
// transactions
type TransactionFilterRequest struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Type          string `form:"type" binding:"omitempty,oneof=income expense"`
	Context       string `form:"context" binding:"omitempty,oneof=business personal"`
	CategoryID    string `form:"category_id" binding:"omitempty,uuid"`
	BankAccountID string `form:"bank_account_id" binding:"omitempty,uuid"`
	DateFrom      string `form:"date_from"`
	DateTo        string `form:"date_to"`
	Search        string `form:"search"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Context       string    `json:"context"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Date          string    `json:"date"`
	CategoryID    *string   `json:"category_id"`
	BankAccountID *string   `json:"bank_account_id"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction
func ToTransactionResponse(t *ledger.Transaction) TransactionResponse {
	var categoryID *string
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		categoryID = &id
	}
	var bankAccountID *string
	if t.BankAccountID != nil {
		id := t.BankAccountID.String()
		bankAccountID = &id
	}

	return TransactionResponse{
		ID:            t.ID.String(),
		Type:          string(t.Type),
		Context:       string(t.Context),
		Description:   t.Description,
		Amount:        t.Amount.InexactFloat64(),
		Currency:      t.Currency,
		Date:          t.Date.String(),
		CategoryID:    categoryID,
		BankAccountID: bankAccountID,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions
func ToTransactionResponses(transactions []ledger.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		responses[i] = ToTransactionResponse(&transactions[i])
	}
	return responses
}

// SummaryResponse aggregates transactions matching a filter. Fields are
// plain numbers so consumers never see nulls when nothing matches.
type SummaryResponse struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Net          float64 `json:"net"`
	Count        int64   `json:"count"`
}

// ToSummaryResponse converts a domain summary
func ToSummaryResponse(s *ledger.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:  s.TotalIncome.InexactFloat64(),
		TotalExpense: s.TotalExpense.InexactFloat64(),
		Net:          s.Net.InexactFloat64(),
		Count:        s.Count,
	}
}

// AccountBalanceResponse aggregates transactions for one bank account
type AccountBalanceResponse struct {
	BankAccountID    string  `json:"bank_account_id"`
	Label            string  `json:"label"`
	Balance          float64 `json:"balance"`
	TransactionCount int64   `json:"transaction_count"`
}

// ToAccountBalanceResponses converts domain account balances
func ToAccountBalanceResponses(balances []ledger.AccountBalance) []AccountBalanceResponse {
	responses := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		responses[i] = AccountBalanceResponse{
			BankAccountID:    b.BankAccountID.String(),
			Label:            b.Label,
			Balance:          b.Balance.InexactFloat64(),
			TransactionCount: b.TransactionCount,
		}
	}
	return responses
}

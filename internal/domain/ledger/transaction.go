package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

// TransactionType classifies money flow direction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether the type is a known value
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionContext separates business from personal bookkeeping
type TransactionContext string

const (
	TransactionContextBusiness TransactionContext = "business"
	TransactionContextPersonal TransactionContext = "personal"
)

// ValidTransactionContext reports whether the context is a known value
func ValidTransactionContext(c TransactionContext) bool {
	return c == TransactionContextBusiness || c == TransactionContextPersonal
}

// DefaultCurrency is used when the caller does not specify one
const DefaultCurrency = "USD"

// Transaction records a single money movement
type Transaction struct {
	shared.OwnedEntity
	Type          TransactionType    `gorm:"type:varchar(10);not null;index"`
	Context       TransactionContext `gorm:"type:varchar(10);not null;index"`
	Description   string             `gorm:"type:varchar(255);not null"`
	Amount        decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	Currency      string             `gorm:"type:varchar(3);not null;default:'USD'"`
	Date          valueobject.Date   `gorm:"type:date;not null;index"`
	CategoryID    *uuid.UUID         `gorm:"type:uuid;index"`
	BankAccountID *uuid.UUID         `gorm:"type:uuid;index"`
	Notes         string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

// NewTransaction creates a transaction owned by the given user
func NewTransaction(ownerID uuid.UUID, txType TransactionType, txContext TransactionContext, description string, amount decimal.Decimal, date valueobject.Date) (*Transaction, error) {
	if !ValidTransactionType(txType) {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Transaction type must be income or expense")
	}
	if !ValidTransactionContext(txContext) {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Transaction context must be business or personal")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Amount cannot be negative")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Date is required")
	}

	return &Transaction{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Type:        txType,
		Context:     txContext,
		Description: description,
		Amount:      amount,
		Currency:    DefaultCurrency,
		Date:        date,
	}, nil
}

// SignedAmount returns the amount with expense flows negated
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Summary aggregates transactions matching a filter. Zero-valued fields
// stay zeros so JSON consumers never see nulls.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`
	Count        int64           `json:"count"`
}

// AccountBalance aggregates transactions per bank account
type AccountBalance struct {
	BankAccountID    uuid.UUID       `json:"bank_account_id"`
	Label            string          `json:"label"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int64           `json:"transaction_count"`
}

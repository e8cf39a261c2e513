package billing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// BankAccount holds wire transfer details shown on invoices. Label is
// unique per owning user.
type BankAccount struct {
	shared.OwnedEntity
	Label                    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_bank_accounts_owner_label,priority:2"`
	BeneficiaryFullName      string `gorm:"type:varchar(255)"`
	BeneficiaryFullAddress   string `gorm:"type:text"`
	BeneficiaryAccountNumber string `gorm:"type:varchar(64)"`
	SwiftCode                string `gorm:"type:varchar(16)"`
	BankName                 string `gorm:"type:varchar(255)"`
	BankAddress              string `gorm:"type:text"`
	IntermediaryBankInfo     string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BankAccount) TableName() string {
	return "bank_accounts"
}

// NewBankAccount creates a new bank account owned by the given user
func NewBankAccount(ownerID uuid.UUID, label string) (*BankAccount, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label cannot be empty")
	}
	if len(label) > 100 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label cannot exceed 100 characters")
	}

	return &BankAccount{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Label:       label,
	}, nil
}

// Relabel changes the account label
func (b *BankAccount) Relabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Label cannot be empty")
	}
	if len(label) > 100 {
		return shared.NewDomainError("INVALID_LABEL", "Label cannot exceed 100 characters")
	}
	b.Label = label
	b.Touch()
	return nil
}

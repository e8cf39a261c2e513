package billing

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// Customer represents a billable counterparty. Legal name is unique per
// owning user.
type Customer struct {
	shared.OwnedEntity
	LegalName    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_owner_legal_name,priority:2"`
	DisplayName  string `gorm:"type:varchar(255)"`
	TaxID        string `gorm:"type:varchar(64)"`
	Email        string `gorm:"type:varchar(255)"`
	Phone        string `gorm:"type:varchar(50)"`
	AddressLine1 string `gorm:"type:varchar(255)"`
	AddressLine2 string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(100)"`
	State        string `gorm:"type:varchar(100)"`
	Zip          string `gorm:"type:varchar(20)"`
	Country      string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer owned by the given user
func NewCustomer(ownerID uuid.UUID, legalName string) (*Customer, error) {
	legalName = strings.TrimSpace(legalName)
	if legalName == "" {
		return nil, shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot be empty")
	}
	if len(legalName) > 255 {
		return nil, shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot exceed 255 characters")
	}

	return &Customer{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		LegalName:   legalName,
	}, nil
}

// Rename changes the customer's legal name
func (c *Customer) Rename(legalName string) error {
	legalName = strings.TrimSpace(legalName)
	if legalName == "" {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot be empty")
	}
	if len(legalName) > 255 {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot exceed 255 characters")
	}
	c.LegalName = legalName
	c.Touch()
	return nil
}

// Label returns the name to show in lists, preferring the display name
func (c *Customer) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.LegalName
}

package ledger

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// TransactionCategory labels transactions for reporting. Name is unique
// per owning user.
type TransactionCategory struct {
	shared.OwnedEntity
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_owner_name,priority:2"`
	Color string `gorm:"type:varchar(7)"`
	Icon  string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (TransactionCategory) TableName() string {
	return "transaction_categories"
}

// NewTransactionCategory creates a category owned by the given user
func NewTransactionCategory(ownerID uuid.UUID, name, color, icon string) (*TransactionCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}
	if color != "" && !colorPattern.MatchString(color) {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Color must be a #rrggbb hex value")
	}

	return &TransactionCategory{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Color:       color,
		Icon:        icon,
	}, nil
}

// Rename changes the category name
func (c *TransactionCategory) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot exceed 100 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetColor changes the category color
func (c *TransactionCategory) SetColor(color string) error {
	if color != "" && !colorPattern.MatchString(color) {
		return shared.NewDomainError("BUSINESS_RULE", "Color must be a #rrggbb hex value")
	}
	c.Color = color
	c.Touch()
	return nil
}

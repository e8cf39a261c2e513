package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	shared.OwnedRepository[Customer]
	ExistsByLegalName(ctx context.Context, ownerID uuid.UUID, legalName string) (bool, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]Customer, error)
}

// BankAccountRepository defines persistence operations for bank accounts
type BankAccountRepository interface {
	shared.OwnedRepository[BankAccount]
	ExistsByLabel(ctx context.Context, ownerID uuid.UUID, label string) (bool, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]BankAccount, error)
}

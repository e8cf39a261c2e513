package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices and
// their line items. FindByID and FindAll load line items.
type InvoiceRepository interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	// Create persists the invoice together with its line items in one
	// transaction. Returns shared.ErrAlreadyExists on an invoice number
	// uniqueness violation.
	Create(ctx context.Context, invoice *Invoice) error
	// Update persists invoice fields and, when replaceServices is true,
	// swaps the full line item set.
	Update(ctx context.Context, invoice *Invoice, replaceServices bool) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	// MaxInvoiceNumber returns the greatest invoice number for the owner,
	// or empty string when the owner has no invoices.
	MaxInvoiceNumber(ctx context.Context, ownerID uuid.UUID) (string, error)
	ExistsByNumber(ctx context.Context, ownerID uuid.UUID, number string) (bool, error)
	CountByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (int64, error)
	CountByBankAccount(ctx context.Context, ownerID, bankAccountID uuid.UUID) (int64, error)
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]Invoice, error)
}

package billing

import (
	"context"

	"github.com/google/uuid"
)

// ServiceTemplateRepository persists the owner's service catalog:
// invoice_services rows with no invoice attached. Lines belonging to
// an invoice are never visible through this interface.
type ServiceTemplateRepository interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceService, error)
	// FindAll returns the owner's templates ordered by title, optionally
	// narrowed to titles containing the query.
	FindAll(ctx context.Context, ownerID uuid.UUID, query string) ([]InvoiceService, error)
	Save(ctx context.Context, template *InvoiceService) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]InvoiceService, error)
}

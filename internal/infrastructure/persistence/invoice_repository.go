package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// GormInvoiceRepository implements billing.InvoiceRepository using GORM.
// Line items live in their own table and are written together with the
// invoice in one transaction.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

var invoiceSortable = map[string]bool{
	"invoice_number": true,
	"issue_date":     true,
	"due_date":       true,
	"status":         true,
	"total_amount":   true,
	"created_at":     true,
}

func preloadServices(db *gorm.DB) *gorm.DB {
	return db.Order("invoice_services.sort_order ASC")
}

// FindByID finds an invoice with its line items within the owner's data
func (r *GormInvoiceRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).Preload("Services", preloadServices).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *GormInvoiceRepository) listQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("created_by_user_id = ?", ownerID)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if customerID, ok := filter.Filters["customer_id"]; ok {
		query = query.Where("customer_id = ?", customerID)
	}
	if from, ok := filter.Filters["issue_date_from"]; ok {
		query = query.Where("issue_date >= ?", from)
	}
	if to, ok := filter.Filters["issue_date_to"]; ok {
		query = query.Where("issue_date <= ?", to)
	}
	return applySearch(query, filter.Search, "invoice_number", "notes")
}

// FindAll finds the owner's invoices matching the filter, line items included
func (r *GormInvoiceRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.listQuery(ctx, ownerID, filter).Preload("Services", preloadServices)
	query = applyOrder(query, filter, invoiceSortable, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts the owner's invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.listQuery(ctx, ownerID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create persists the invoice together with its line items in one
// transaction. Returns shared.ErrAlreadyExists on an invoice number
// uniqueness violation.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Create(invoice).Error; err != nil {
			return err
		}
		if len(invoice.Services) > 0 {
			if err := tx.Create(&invoice.Services).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Update persists invoice fields and, when replaceServices is true,
// swaps the full line item set
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice, replaceServices bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services").Save(invoice).Error; err != nil {
			return err
		}
		if replaceServices {
			if err := tx.Where("invoice_id = ?", invoice.ID).
				Delete(&billing.InvoiceService{}).Error; err != nil {
				return err
			}
			if len(invoice.Services) > 0 {
				if err := tx.Create(&invoice.Services).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

// Delete removes an invoice within the owner's data. Line items go with
// it via the cascading foreign key.
func (r *GormInvoiceRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		Delete(&billing.Invoice{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MaxInvoiceNumber returns the greatest invoice number for the owner,
// or empty string when the owner has no invoices
func (r *GormInvoiceRepository) MaxInvoiceNumber(ctx context.Context, ownerID uuid.UUID) (string, error) {
	var number string
	err := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("created_by_user_id = ?", ownerID).
		Select("invoice_number").
		Order("invoice_number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		return "", err
	}
	return number, nil
}

// ExistsByNumber reports whether the owner already uses the invoice number
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, ownerID uuid.UUID, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("created_by_user_id = ? AND invoice_number = ?", ownerID, number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByCustomer counts the owner's invoices referencing the customer
func (r *GormInvoiceRepository) CountByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("created_by_user_id = ? AND customer_id = ?", ownerID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByBankAccount counts the owner's invoices referencing the bank account
func (r *GormInvoiceRepository) CountByBankAccount(ctx context.Context, ownerID, bankAccountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("created_by_user_id = ? AND bank_account_id = ?", ownerID, bankAccountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Search returns the owner's top invoices matching the query by number
// or notes
func (r *GormInvoiceRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	q := r.db.WithContext(ctx).Model(&billing.Invoice{}).Preload("Services", preloadServices).
		Where("created_by_user_id = ?", ownerID)
	q = applySearch(q, query, "invoice_number", "notes")

	if err := q.Order("invoice_number DESC").Limit(limit).Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

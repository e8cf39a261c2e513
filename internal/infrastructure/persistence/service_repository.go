package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// GormServiceTemplateRepository implements billing.ServiceTemplateRepository
// using GORM. Every query pins invoice_id to NULL so invoice-attached
// line items never leak into the catalog.
type GormServiceTemplateRepository struct {
	db *gorm.DB
}

// NewGormServiceTemplateRepository creates a new GormServiceTemplateRepository
func NewGormServiceTemplateRepository(db *gorm.DB) *GormServiceTemplateRepository {
	return &GormServiceTemplateRepository{db: db}
}

func (r *GormServiceTemplateRepository) templateScope(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Model(&billing.InvoiceService{}).
		Where("created_by_user_id = ? AND invoice_id IS NULL", ownerID)
}

// FindByID finds a template by ID within the owner's catalog
func (r *GormServiceTemplateRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.InvoiceService, error) {
	var template billing.InvoiceService
	if err := r.templateScope(ctx, ownerID).
		Where("id = ?", id).
		First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &template, nil
}

// FindAll returns the owner's templates ordered by title, optionally
// narrowed to titles containing the query
func (r *GormServiceTemplateRepository) FindAll(ctx context.Context, ownerID uuid.UUID, query string) ([]billing.InvoiceService, error) {
	var templates []billing.InvoiceService
	q := r.templateScope(ctx, ownerID)
	q = applySearch(q, query, "service_title")

	if err := q.Order("service_title ASC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Save persists a template
func (r *GormServiceTemplateRepository) Save(ctx context.Context, template *billing.InvoiceService) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete removes a template within the owner's catalog
func (r *GormServiceTemplateRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND invoice_id IS NULL AND id = ?", ownerID, id).
		Delete(&billing.InvoiceService{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Search returns the owner's top templates matching the query by title
func (r *GormServiceTemplateRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.InvoiceService, error) {
	var templates []billing.InvoiceService
	q := r.templateScope(ctx, ownerID)
	q = applySearch(q, query, "service_title")

	if err := q.Order("service_title ASC").Limit(limit).Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

var _ billing.ServiceTemplateRepository = (*GormServiceTemplateRepository)(nil)

package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// GormCustomerRepository implements billing.CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

var customerSortable = map[string]bool{
	"legal_name":   true,
	"display_name": true,
	"created_at":   true,
	"updated_at":   true,
}

// FindByID finds a customer by ID within the owner's data
func (r *GormCustomerRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.Customer, error) {
	var customer billing.Customer
	if err := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll finds the owner's customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Customer, error) {
	var customers []billing.Customer
	query := r.db.WithContext(ctx).Model(&billing.Customer{}).
		Where("created_by_user_id = ?", ownerID)
	query = applySearch(query, filter.Search, "legal_name", "display_name", "email")
	query = applyOrder(query, filter, customerSortable, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// Count counts the owner's customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&billing.Customer{}).
		Where("created_by_user_id = ?", ownerID)
	query = applySearch(query, filter.Search, "legal_name", "display_name", "email")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *billing.Customer) error {
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a customer within the owner's data
func (r *GormCustomerRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		Delete(&billing.Customer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByLegalName reports whether the owner already has a customer
// with the given legal name
func (r *GormCustomerRepository) ExistsByLegalName(ctx context.Context, ownerID uuid.UUID, legalName string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.Customer{}).
		Where("created_by_user_id = ? AND legal_name = ?", ownerID, strings.TrimSpace(legalName)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search returns the owner's top customers matching the query
func (r *GormCustomerRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.Customer, error) {
	var customers []billing.Customer
	q := r.db.WithContext(ctx).Model(&billing.Customer{}).
		Where("created_by_user_id = ?", ownerID)
	q = applySearch(q, query, "legal_name", "display_name", "email")

	if err := q.Order("legal_name ASC").Limit(limit).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

var _ billing.CustomerRepository = (*GormCustomerRepository)(nil)

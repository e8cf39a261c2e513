package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// GormCategoryRepository implements ledger.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

var categorySortable = map[string]bool{
	"name":       true,
	"created_at": true,
	"updated_at": true,
}

// FindByID finds a category by ID within the owner's data
func (r *GormCategoryRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.TransactionCategory, error) {
	var category ledger.TransactionCategory
	if err := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds the owner's categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ledger.TransactionCategory, error) {
	var categories []ledger.TransactionCategory
	query := r.db.WithContext(ctx).Model(&ledger.TransactionCategory{}).
		Where("created_by_user_id = ?", ownerID)
	query = applySearch(query, filter.Search, "name")
	query = applyOrder(query, filter, categorySortable, "name")
	query = applyPagination(query, filter)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Count counts the owner's categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ledger.TransactionCategory{}).
		Where("created_by_user_id = ?", ownerID)
	query = applySearch(query, filter.Search, "name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *ledger.TransactionCategory) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a category within the owner's data
func (r *GormCategoryRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		Delete(&ledger.TransactionCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByName reports whether the owner already has a category with the
// given name
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ledger.TransactionCategory{}).
		Where("created_by_user_id = ? AND name = ?", ownerID, strings.TrimSpace(name)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search returns the owner's top categories matching the query
func (r *GormCategoryRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]ledger.TransactionCategory, error) {
	var categories []ledger.TransactionCategory
	q := r.db.WithContext(ctx).Model(&ledger.TransactionCategory{}).
		Where("created_by_user_id = ?", ownerID)
	q = applySearch(q, query, "name")

	if err := q.Order("name ASC").Limit(limit).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

var _ ledger.CategoryRepository = (*GormCategoryRepository)(nil)

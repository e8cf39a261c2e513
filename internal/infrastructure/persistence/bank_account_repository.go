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

// GormBankAccountRepository implements billing.BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

var bankAccountSortable = map[string]bool{
	"label":      true,
	"bank_name":  true,
	"created_at": true,
	"updated_at": true,
}

// FindByID finds a bank account by ID within the owner's data
func (r *GormBankAccountRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.BankAccount, error) {
	var account billing.BankAccount
	if err := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll finds the owner's bank accounts matching the filter
func (r *GormBankAccountRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.BankAccount, error) {
	var accounts []billing.BankAccount
	query := r.db.WithContext(ctx).Model(&billing.BankAccount{}).
		Where("created_by_user_id = ?", ownerID)
	query = applySearch(query, filter.Search, "label", "bank_name", "beneficiary_full_name")
	query = applyOrder(query, filter, bankAccountSortable, "created_at")
	query = applyPagination(query, filter)

	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Count counts the owner's bank accounts matching the filter
func (r *GormBankAccountRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&billing.BankAccount{}).
		Where("created_by_user_id = ?", ownerID)
	query = applySearch(query, filter.Search, "label", "bank_name", "beneficiary_full_name")

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *billing.BankAccount) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a bank account within the owner's data
func (r *GormBankAccountRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		Delete(&billing.BankAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByLabel reports whether the owner already has a bank account
// with the given label
func (r *GormBankAccountRepository) ExistsByLabel(ctx context.Context, ownerID uuid.UUID, label string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&billing.BankAccount{}).
		Where("created_by_user_id = ? AND label = ?", ownerID, strings.TrimSpace(label)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Search returns the owner's top bank accounts matching the query
func (r *GormBankAccountRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.BankAccount, error) {
	var accounts []billing.BankAccount
	q := r.db.WithContext(ctx).Model(&billing.BankAccount{}).
		Where("created_by_user_id = ?", ownerID)
	q = applySearch(q, query, "label", "bank_name", "beneficiary_full_name")

	if err := q.Order("label ASC").Limit(limit).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

var _ billing.BankAccountRepository = (*GormBankAccountRepository)(nil)

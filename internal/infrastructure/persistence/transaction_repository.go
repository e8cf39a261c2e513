package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

var transactionSortable = map[string]bool{
	"date":        true,
	"amount":      true,
	"description": true,
	"type":        true,
	"created_at":  true,
}

// FindByID finds a transaction by ID within the owner's data
func (r *GormTransactionRepository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	var tx ledger.Transaction
	if err := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *GormTransactionRepository) filteredQuery(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&ledger.Transaction{}).
		Where("created_by_user_id = ?", ownerID)
	if txType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", txType)
	}
	if txContext, ok := filter.Filters["context"]; ok {
		query = query.Where("context = ?", txContext)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("category_id = ?", categoryID)
	}
	if bankAccountID, ok := filter.Filters["bank_account_id"]; ok {
		query = query.Where("bank_account_id = ?", bankAccountID)
	}
	if from, ok := filter.Filters["date_from"]; ok {
		query = query.Where("date >= ?", from)
	}
	if to, ok := filter.Filters["date_to"]; ok {
		query = query.Where("date <= ?", to)
	}
	return applySearch(query, filter.Search, "description", "notes")
}

// FindAll finds the owner's transactions matching the filter
func (r *GormTransactionRepository) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	query := r.filteredQuery(ctx, ownerID, filter)
	query = applyOrder(query, filter, transactionSortable, "date")
	query = applyPagination(query, filter)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Count counts the owner's transactions matching the filter
func (r *GormTransactionRepository) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filteredQuery(ctx, ownerID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists a transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *ledger.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// Delete removes a transaction within the owner's data
func (r *GormTransactionRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("created_by_user_id = ? AND id = ?", ownerID, id).
		Delete(&ledger.Transaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

type summaryRow struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Count        int64
}

// Summarize aggregates income, expense, net and count over the matching
// transactions. An empty result set yields zeros, not nulls.
func (r *GormTransactionRepository) Summarize(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*ledger.Summary, error) {
	var row summaryRow
	err := r.filteredQuery(ctx, ownerID, filter).
		Select(`COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS total_expense,
			COUNT(*) AS count`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ledger.Summary{
		TotalIncome:  row.TotalIncome,
		TotalExpense: row.TotalExpense,
		Net:          row.TotalIncome.Sub(row.TotalExpense),
		Count:        row.Count,
	}, nil
}

// BalancesByAccount groups matching transactions by bank account. The
// balance counts income as positive and expense as negative. Transactions
// without a bank account are left out.
func (r *GormTransactionRepository) BalancesByAccount(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ledger.AccountBalance, error) {
	var balances []ledger.AccountBalance
	err := r.filteredQuery(ctx, ownerID, filter).
		Select(`transactions.bank_account_id AS bank_account_id,
			bank_accounts.label AS label,
			COALESCE(SUM(CASE WHEN transactions.type = 'expense' THEN -transactions.amount ELSE transactions.amount END), 0) AS balance,
			COUNT(*) AS transaction_count`).
		Joins("JOIN bank_accounts ON bank_accounts.id = transactions.bank_account_id").
		Group("transactions.bank_account_id, bank_accounts.label").
		Order("bank_accounts.label ASC").
		Scan(&balances).Error
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// CountByCategory counts the owner's transactions referencing the category
func (r *GormTransactionRepository) CountByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ledger.Transaction{}).
		Where("created_by_user_id = ? AND category_id = ?", ownerID, categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Search returns the owner's top transactions matching the query by
// description or notes
func (r *GormTransactionRepository) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]ledger.Transaction, error) {
	var txs []ledger.Transaction
	q := r.db.WithContext(ctx).Model(&ledger.Transaction{}).
		Where("created_by_user_id = ?", ownerID)
	q = applySearch(q, query, "description", "notes")

	if err := q.Order("date DESC").Limit(limit).Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

var _ ledger.TransactionRepository = (*GormTransactionRepository)(nil)

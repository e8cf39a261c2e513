package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
)

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.TransactionCategory, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.TransactionCategory), args.Error(1)
}

func (m *mockCategoryRepo) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ledger.TransactionCategory, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.TransactionCategory), args.Error(1)
}

func (m *mockCategoryRepo) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCategoryRepo) Save(ctx context.Context, entity *ledger.TransactionCategory) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockCategoryRepo) ExistsByName(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]ledger.TransactionCategory, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.TransactionCategory), args.Error(1)
}

type mockTransactionRepo struct {
	mock.Mock
}

func (m *mockTransactionRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionRepo) Save(ctx context.Context, entity *ledger.Transaction) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockTransactionRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockTransactionRepo) Summarize(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (*ledger.Summary, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Summary), args.Error(1)
}

func (m *mockTransactionRepo) BalancesByAccount(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ledger.AccountBalance, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.AccountBalance), args.Error(1)
}

func (m *mockTransactionRepo) CountByCategory(ctx context.Context, ownerID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTransactionRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]ledger.Transaction, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

type mockBankAccountRepo struct {
	mock.Mock
}

func (m *mockBankAccountRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.BankAccount, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BankAccount), args.Error(1)
}

func (m *mockBankAccountRepo) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.BankAccount, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BankAccount), args.Error(1)
}

func (m *mockBankAccountRepo) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBankAccountRepo) Save(ctx context.Context, entity *billing.BankAccount) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockBankAccountRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockBankAccountRepo) ExistsByLabel(ctx context.Context, ownerID uuid.UUID, label string) (bool, error) {
	args := m.Called(ctx, ownerID, label)
	return args.Bool(0), args.Error(1)
}

func (m *mockBankAccountRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.BankAccount, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.BankAccount), args.Error(1)
}

var (
	_ ledger.CategoryRepository     = (*mockCategoryRepo)(nil)
	_ ledger.TransactionRepository  = (*mockTransactionRepo)(nil)
	_ billing.BankAccountRepository = (*mockBankAccountRepo)(nil)
)

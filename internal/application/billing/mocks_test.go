package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.Customer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Customer, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCustomerRepo) Save(ctx context.Context, entity *billing.Customer) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockCustomerRepo) ExistsByLegalName(ctx context.Context, ownerID uuid.UUID, legalName string) (bool, error) {
	args := m.Called(ctx, ownerID, legalName)
	return args.Bool(0), args.Error(1)
}

func (m *mockCustomerRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.Customer, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Customer), args.Error(1)
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

type mockInvoiceRepo struct {
	mock.Mock
}

func (m *mockInvoiceRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) FindAll(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *mockInvoiceRepo) Count(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvoiceRepo) Create(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepo) Update(ctx context.Context, invoice *billing.Invoice, replaceServices bool) error {
	args := m.Called(ctx, invoice, replaceServices)
	return args.Error(0)
}

func (m *mockInvoiceRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockInvoiceRepo) MaxInvoiceNumber(ctx context.Context, ownerID uuid.UUID) (string, error) {
	args := m.Called(ctx, ownerID)
	return args.String(0), args.Error(1)
}

func (m *mockInvoiceRepo) ExistsByNumber(ctx context.Context, ownerID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, ownerID, number)
	return args.Bool(0), args.Error(1)
}

func (m *mockInvoiceRepo) CountByCustomer(ctx context.Context, ownerID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvoiceRepo) CountByBankAccount(ctx context.Context, ownerID, bankAccountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, bankAccountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockInvoiceRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.Invoice, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

type mockServiceTemplateRepo struct {
	mock.Mock
}

func (m *mockServiceTemplateRepo) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*billing.InvoiceService, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceService), args.Error(1)
}

func (m *mockServiceTemplateRepo) FindAll(ctx context.Context, ownerID uuid.UUID, query string) ([]billing.InvoiceService, error) {
	args := m.Called(ctx, ownerID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.InvoiceService), args.Error(1)
}

func (m *mockServiceTemplateRepo) Save(ctx context.Context, template *billing.InvoiceService) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *mockServiceTemplateRepo) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *mockServiceTemplateRepo) Search(ctx context.Context, ownerID uuid.UUID, query string, limit int) ([]billing.InvoiceService, error) {
	args := m.Called(ctx, ownerID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.InvoiceService), args.Error(1)
}

var (
	_ billing.CustomerRepository        = (*mockCustomerRepo)(nil)
	_ billing.BankAccountRepository     = (*mockBankAccountRepo)(nil)
	_ billing.InvoiceRepository         = (*mockInvoiceRepo)(nil)
	_ billing.ServiceTemplateRepository = (*mockServiceTemplateRepo)(nil)
)

package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

func TestCustomerServiceCreate(t *testing.T) {
	ownerID := uuid.New()
	customerRepo := new(mockCustomerRepo)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewCustomerService(customerRepo, invoiceRepo)

	customerRepo.On("ExistsByLegalName", mock.Anything, ownerID, "Acme Corp").Return(false, nil)
	customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Customer")).Return(nil)

	resp, err := svc.Create(context.Background(), ownerID, CreateCustomerRequest{
		LegalName:   "Acme Corp",
		DisplayName: "Acme",
		Email:       "billing@acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", resp.LegalName)
	assert.Equal(t, "Acme", resp.DisplayName)
	customerRepo.AssertExpectations(t)
}

func TestCustomerServiceCreateDuplicateLegalName(t *testing.T) {
	ownerID := uuid.New()
	customerRepo := new(mockCustomerRepo)
	svc := NewCustomerService(customerRepo, new(mockInvoiceRepo))

	customerRepo.On("ExistsByLegalName", mock.Anything, ownerID, "Acme Corp").Return(true, nil)

	_, err := svc.Create(context.Background(), ownerID, CreateCustomerRequest{LegalName: "Acme Corp"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCustomerServiceUpdatePartial(t *testing.T) {
	ownerID := uuid.New()
	customerRepo := new(mockCustomerRepo)
	svc := NewCustomerService(customerRepo, new(mockInvoiceRepo))

	customer, err := billing.NewCustomer(ownerID, "Acme Corp")
	require.NoError(t, err)
	customer.City = "Berlin"

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	customerRepo.On("Save", mock.Anything, customer).Return(nil)

	email := "new@acme.test"
	resp, err := svc.Update(context.Background(), ownerID, customer.ID, UpdateCustomerRequest{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@acme.test", resp.Email)
	// Untouched fields keep their values.
	assert.Equal(t, "Acme Corp", resp.LegalName)
	assert.Equal(t, "Berlin", resp.City)
	customerRepo.AssertNotCalled(t, "ExistsByLegalName", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerServiceDeleteBlockedByInvoices(t *testing.T) {
	ownerID := uuid.New()
	customerRepo := new(mockCustomerRepo)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewCustomerService(customerRepo, invoiceRepo)

	customer, err := billing.NewCustomer(ownerID, "Acme Corp")
	require.NoError(t, err)

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("CountByCustomer", mock.Anything, ownerID, customer.ID).Return(int64(3), nil)

	err = svc.Delete(context.Background(), ownerID, customer.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RESOURCE_IN_USE", domainErr.Code)
	customerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerServiceDelete(t *testing.T) {
	ownerID := uuid.New()
	customerRepo := new(mockCustomerRepo)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewCustomerService(customerRepo, invoiceRepo)

	customer, err := billing.NewCustomer(ownerID, "Acme Corp")
	require.NoError(t, err)

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("CountByCustomer", mock.Anything, ownerID, customer.ID).Return(int64(0), nil)
	customerRepo.On("Delete", mock.Anything, ownerID, customer.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), ownerID, customer.ID))
	customerRepo.AssertExpectations(t)
}

func TestBankAccountServiceDeleteBlockedByInvoices(t *testing.T) {
	ownerID := uuid.New()
	bankAccountRepo := new(mockBankAccountRepo)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewBankAccountService(bankAccountRepo, invoiceRepo)

	account, err := billing.NewBankAccount(ownerID, "Main EUR")
	require.NoError(t, err)

	bankAccountRepo.On("FindByID", mock.Anything, ownerID, account.ID).Return(account, nil)
	invoiceRepo.On("CountByBankAccount", mock.Anything, ownerID, account.ID).Return(int64(1), nil)

	err = svc.Delete(context.Background(), ownerID, account.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RESOURCE_IN_USE", domainErr.Code)
}

func TestBankAccountServiceCreateDuplicateLabel(t *testing.T) {
	ownerID := uuid.New()
	bankAccountRepo := new(mockBankAccountRepo)
	svc := NewBankAccountService(bankAccountRepo, new(mockInvoiceRepo))

	bankAccountRepo.On("ExistsByLabel", mock.Anything, ownerID, "Main EUR").Return(true, nil)

	_, err := svc.Create(context.Background(), ownerID, CreateBankAccountRequest{Label: "Main EUR"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

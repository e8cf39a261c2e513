package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

func newInvoiceFixtures(t *testing.T) (uuid.UUID, *billing.Customer) {
	t.Helper()
	ownerID := uuid.New()
	customer, err := billing.NewCustomer(ownerID, "Acme Corp")
	require.NoError(t, err)
	return ownerID, customer
}

func invoiceCreateRequest(customerID uuid.UUID) CreateInvoiceRequest {
	return CreateInvoiceRequest{
		CustomerID: customerID,
		IssueDate:  valueobject.NewDate(2026, time.January, 15),
		DueDate:    valueobject.NewDate(2026, time.February, 15),
		Services: []ServiceItemInput{
			{ServiceTitle: "Consulting", Amount: 1500},
			{ServiceTitle: "Hosting", Amount: 49.99},
		},
	}
}

func TestInvoiceServiceCreateGeneratesNumber(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	bankAccountRepo := new(mockBankAccountRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, bankAccountRepo)

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("INV-000041", nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := svc.Create(context.Background(), ownerID, invoiceCreateRequest(customer.ID))
	require.NoError(t, err)
	assert.Equal(t, "INV-000042", resp.InvoiceNumber)
	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "USD", resp.Currency)
	assert.InDelta(t, 1549.99, resp.TotalAmount, 0.001)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceServiceCreateFirstNumber(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("", nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	resp, err := svc.Create(context.Background(), ownerID, invoiceCreateRequest(customer.ID))
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", resp.InvoiceNumber)
}

func TestInvoiceServiceCreateRetriesGeneratedNumberOnce(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("INV-000007", nil).Once()
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(shared.ErrAlreadyExists).Once()
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("INV-000008", nil).Once()
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil).Once()

	resp, err := svc.Create(context.Background(), ownerID, invoiceCreateRequest(customer.ID))
	require.NoError(t, err)
	assert.Equal(t, "INV-000009", resp.InvoiceNumber)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceServiceCreateExplicitNumberConflict(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(shared.ErrAlreadyExists).Once()

	req := invoiceCreateRequest(customer.ID)
	req.InvoiceNumber = "2024-CUSTOM-9"

	_, err := svc.Create(context.Background(), ownerID, req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	// No regeneration for caller-chosen numbers.
	invoiceRepo.AssertNumberOfCalls(t, "Create", 1)
	invoiceRepo.AssertNotCalled(t, "MaxInvoiceNumber", mock.Anything, mock.Anything)
}

func TestInvoiceServiceCreateUnknownCustomer(t *testing.T) {
	ownerID := uuid.New()
	customerID := uuid.New()
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customerID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), ownerID, invoiceCreateRequest(customerID))
	require.ErrorIs(t, err, shared.ErrNotFound)
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceServiceCreateRecurrenceValidation(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	customerRepo := new(mockCustomerRepo)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("", nil)

	req := invoiceCreateRequest(customer.ID)
	req.IsRecurrent = true

	_, err := svc.Create(context.Background(), ownerID, req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUSINESS_RULE", domainErr.Code)
}

func TestInvoiceServiceUpdateReplacesServices(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), new(mockBankAccountRepo))

	invoice, err := billing.NewInvoice(ownerID, customer.ID, "INV-000001", valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.February, 1))
	require.NoError(t, err)

	invoiceRepo.On("FindByID", mock.Anything, ownerID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("Update", mock.Anything, invoice, true).Return(nil)

	req := UpdateInvoiceRequest{
		Services: shared.Some([]ServiceItemInput{{ServiceTitle: "Audit", Amount: 200}}),
	}
	resp, err := svc.Update(context.Background(), ownerID, invoice.ID, req)
	require.NoError(t, err)
	assert.InDelta(t, 200, resp.TotalAmount, 0.001)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Audit", resp.Services[0].ServiceTitle)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceServiceUpdateDetachesBankAccount(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	bankAccountRepo := new(mockBankAccountRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), bankAccountRepo)

	invoice, err := billing.NewInvoice(ownerID, customer.ID, "INV-000001", valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.February, 1))
	require.NoError(t, err)
	accountID := uuid.New()
	invoice.BankAccountID = &accountID

	invoiceRepo.On("FindByID", mock.Anything, ownerID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("Update", mock.Anything, invoice, false).Return(nil)

	req := UpdateInvoiceRequest{BankAccountID: shared.Null[uuid.UUID]()}
	resp, err := svc.Update(context.Background(), ownerID, invoice.ID, req)
	require.NoError(t, err)
	assert.Nil(t, resp.BankAccountID)
	bankAccountRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceUpdateStopsRecurrence(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), new(mockBankAccountRepo))

	invoice, err := billing.NewInvoice(ownerID, customer.ID, "INV-000001", valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.February, 1))
	require.NoError(t, err)
	monthly := billing.RecurrenceMonthly
	day := 15
	require.NoError(t, invoice.SetRecurrence(true, &monthly, &day))

	invoiceRepo.On("FindByID", mock.Anything, ownerID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("Update", mock.Anything, invoice, false).Return(nil)

	req := UpdateInvoiceRequest{IsRecurrent: shared.Some(false)}
	resp, err := svc.Update(context.Background(), ownerID, invoice.ID, req)
	require.NoError(t, err)
	assert.False(t, resp.IsRecurrent)
	assert.Nil(t, resp.RecurrenceFrequency)
	assert.Nil(t, resp.RecurrenceDay)
}

func TestInvoiceServiceCreateRequiresServices(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	req := invoiceCreateRequest(customer.ID)
	req.Services = nil

	_, err := svc.Create(context.Background(), ownerID, req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUSINESS_RULE", domainErr.Code)
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceServiceCreateRejectsDueBeforeIssue(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("", nil)

	req := invoiceCreateRequest(customer.ID)
	req.IssueDate = valueobject.NewDate(2026, time.February, 1)
	req.DueDate = valueobject.NewDate(2026, time.January, 1)

	_, err := svc.Create(context.Background(), ownerID, req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUSINESS_RULE", domainErr.Code)
	invoiceRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInvoiceServiceCreateKeepsExplicitSortOrder(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	customerRepo := new(mockCustomerRepo)
	svc := NewInvoiceService(invoiceRepo, customerRepo, new(mockBankAccountRepo))

	customerRepo.On("FindByID", mock.Anything, ownerID, customer.ID).Return(customer, nil)
	invoiceRepo.On("MaxInvoiceNumber", mock.Anything, ownerID).Return("", nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	zero := 0
	req := invoiceCreateRequest(customer.ID)
	req.Services = []ServiceItemInput{
		{ServiceTitle: "Consulting", Amount: 1500},
		{ServiceTitle: "Hosting", Amount: 49.99, SortOrder: &zero},
	}

	resp, err := svc.Create(context.Background(), ownerID, req)
	require.NoError(t, err)
	require.Len(t, resp.Services, 2)
	require.NotNil(t, resp.Services[0].SortOrder)
	assert.Equal(t, 0, *resp.Services[0].SortOrder, "absent sort order falls back to list position")
	require.NotNil(t, resp.Services[1].SortOrder)
	assert.Equal(t, 0, *resp.Services[1].SortOrder, "explicit zero survives on a non-first item")
}

func TestInvoiceServiceUpdateRejectsEmptyServices(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), new(mockBankAccountRepo))

	invoice, err := billing.NewInvoice(ownerID, customer.ID, "INV-000001", valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.February, 1))
	require.NoError(t, err)
	invoiceRepo.On("FindByID", mock.Anything, ownerID, invoice.ID).Return(invoice, nil)

	_, err = svc.Update(context.Background(), ownerID, invoice.ID, UpdateInvoiceRequest{
		Services: shared.Some([]ServiceItemInput{}),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUSINESS_RULE", domainErr.Code)
	invoiceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceUpdateRejectsDueBeforeIssue(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), new(mockBankAccountRepo))

	invoice, err := billing.NewInvoice(ownerID, customer.ID, "INV-000001", valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.February, 1))
	require.NoError(t, err)
	invoiceRepo.On("FindByID", mock.Anything, ownerID, invoice.ID).Return(invoice, nil)

	// Moving only the due date across the stored issue date must fail.
	_, err = svc.Update(context.Background(), ownerID, invoice.ID, UpdateInvoiceRequest{
		DueDate: shared.Some(valueobject.NewDate(2025, time.December, 31)),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "BUSINESS_RULE", domainErr.Code)
	invoiceRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceServiceListIssueDateFilters(t *testing.T) {
	ownerID, _ := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), new(mockBankAccountRepo))

	var captured shared.Filter
	invoiceRepo.On("FindAll", mock.Anything, ownerID, mock.AnythingOfType("shared.Filter")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(shared.Filter) }).
		Return([]billing.Invoice{}, nil)
	invoiceRepo.On("Count", mock.Anything, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

	_, _, err := svc.List(context.Background(), ownerID, InvoiceListRequest{
		IssueDateFrom: "2026-01-01",
		IssueDateTo:   "2026-03-31",
	})
	require.NoError(t, err)

	from, ok := captured.Filters["issue_date_from"].(valueobject.Date)
	require.True(t, ok)
	assert.Equal(t, "2026-01-01", from.String())
	to, ok := captured.Filters["issue_date_to"].(valueobject.Date)
	require.True(t, ok)
	assert.Equal(t, "2026-03-31", to.String())
}

func TestInvoiceServiceUpdateNumberConflict(t *testing.T) {
	ownerID, customer := newInvoiceFixtures(t)
	invoiceRepo := new(mockInvoiceRepo)
	svc := NewInvoiceService(invoiceRepo, new(mockCustomerRepo), new(mockBankAccountRepo))

	invoice, err := billing.NewInvoice(ownerID, customer.ID, "INV-000001", valueobject.NewDate(2026, time.January, 1), valueobject.NewDate(2026, time.February, 1))
	require.NoError(t, err)

	invoiceRepo.On("FindByID", mock.Anything, ownerID, invoice.ID).Return(invoice, nil)
	invoiceRepo.On("Update", mock.Anything, invoice, false).Return(shared.ErrAlreadyExists)

	req := UpdateInvoiceRequest{InvoiceNumber: shared.Some("INV-000002")}
	_, err = svc.Update(context.Background(), ownerID, invoice.ID, req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

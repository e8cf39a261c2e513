package billing

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles invoice management use cases
type InvoiceService struct {
	invoiceRepo     billing.InvoiceRepository
	customerRepo    billing.CustomerRepository
	bankAccountRepo billing.BankAccountRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, customerRepo billing.CustomerRepository, bankAccountRepo billing.BankAccountRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		customerRepo:    customerRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// Create creates an invoice with its line items. When no invoice number
// is supplied the next number in the owner's sequence is generated; a
// generated number that loses a concurrent insert race is regenerated
// once before giving up.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if len(req.Services) == 0 {
		return nil, shared.NewDomainError("BUSINESS_RULE", "At least one service is required")
	}
	if _, err := s.customerRepo.FindByID(ctx, ownerID, req.CustomerID); err != nil {
		return nil, err
	}
	if req.BankAccountID != nil {
		if _, err := s.bankAccountRepo.FindByID(ctx, ownerID, *req.BankAccountID); err != nil {
			return nil, err
		}
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	generated := number == ""
	if generated {
		var err error
		number, err = s.nextNumber(ctx, ownerID)
		if err != nil {
			return nil, err
		}
	}

	invoice, err := billing.NewInvoice(ownerID, req.CustomerID, number, req.IssueDate, req.DueDate)
	if err != nil {
		return nil, err
	}
	invoice.BankAccountID = req.BankAccountID
	invoice.Notes = req.Notes
	if req.Currency != "" {
		invoice.Currency = strings.ToUpper(req.Currency)
	}
	if req.Status != "" {
		if err := invoice.SetStatus(billing.InvoiceStatus(req.Status)); err != nil {
			return nil, err
		}
	}

	var frequency *billing.RecurrenceFrequency
	if req.RecurrenceFrequency != nil {
		f := billing.RecurrenceFrequency(*req.RecurrenceFrequency)
		frequency = &f
	}
	if err := invoice.SetRecurrence(req.IsRecurrent, frequency, req.RecurrenceDay); err != nil {
		return nil, err
	}

	services, err := buildServices(req.Services)
	if err != nil {
		return nil, err
	}
	invoice.SetServices(services)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		if !generated {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Invoice number is already in use")
		}
		number, err = s.nextNumber(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if err := invoice.SetNumber(number); err != nil {
			return nil, err
		}
		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Invoice number is already in use")
			}
			return nil, err
		}
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetByID returns a single invoice with its line items
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// List returns the owner's invoices with pagination and optional status
// and customer filters
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID, req InvoiceListRequest) ([]InvoiceResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}
	if req.CustomerID != "" {
		customerID, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid customer id")
		}
		filter.Filters["customer_id"] = customerID
	}
	if req.IssueDateFrom != "" {
		from, err := valueobject.ParseDate(req.IssueDateFrom)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid issue_date_from")
		}
		filter.Filters["issue_date_from"] = from
	}
	if req.IssueDateTo != "" {
		to, err := valueobject.ParseDate(req.IssueDateTo)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid issue_date_to")
		}
		filter.Filters["issue_date_to"] = to
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceResponses(invoices), total, nil
}

// Update applies a partial update to an invoice. A present services
// array replaces the full line item set; an explicit null bank account
// detaches the account. Invoice number conflicts are not retried on
// update.
func (s *InvoiceService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID.Set {
		customerID, ok := req.CustomerID.Get()
		if !ok {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Customer cannot be removed from an invoice")
		}
		if _, err := s.customerRepo.FindByID(ctx, ownerID, customerID); err != nil {
			return nil, err
		}
		invoice.CustomerID = customerID
	}

	if req.BankAccountID.Set {
		if bankAccountID, ok := req.BankAccountID.Get(); ok {
			if _, err := s.bankAccountRepo.FindByID(ctx, ownerID, bankAccountID); err != nil {
				return nil, err
			}
			invoice.BankAccountID = &bankAccountID
		} else {
			invoice.BankAccountID = nil
		}
	}

	if req.InvoiceNumber.Set {
		number, ok := req.InvoiceNumber.Get()
		if !ok {
			return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be null")
		}
		if err := invoice.SetNumber(number); err != nil {
			return nil, err
		}
	}

	if req.IssueDate.Set || req.DueDate.Set {
		issueDate := invoice.IssueDate
		dueDate := invoice.DueDate
		if req.IssueDate.Set {
			var ok bool
			if issueDate, ok = req.IssueDate.Get(); !ok {
				return nil, shared.NewDomainError("BUSINESS_RULE", "Issue date cannot be null")
			}
		}
		if req.DueDate.Set {
			var ok bool
			if dueDate, ok = req.DueDate.Get(); !ok {
				return nil, shared.NewDomainError("BUSINESS_RULE", "Due date cannot be null")
			}
		}
		if err := invoice.SetDates(issueDate, dueDate); err != nil {
			return nil, err
		}
	}

	if req.Currency.Set {
		currency, ok := req.Currency.Get()
		if !ok || len(currency) != 3 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
		}
		invoice.Currency = strings.ToUpper(currency)
	}

	if req.Status.Set {
		status, ok := req.Status.Get()
		if !ok {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Status cannot be null")
		}
		if err := invoice.SetStatus(billing.InvoiceStatus(status)); err != nil {
			return nil, err
		}
	}

	if req.Notes.Set {
		notes, _ := req.Notes.Get()
		invoice.Notes = notes
	}

	if req.IsRecurrent.Set || req.RecurrenceFrequency.Set || req.RecurrenceDay.Set {
		recurrent := invoice.IsRecurrent
		frequency := invoice.RecurrenceFrequency
		day := invoice.RecurrenceDay

		if req.IsRecurrent.Set {
			recurrent, _ = req.IsRecurrent.Get()
		}
		if req.RecurrenceFrequency.Set {
			if f, ok := req.RecurrenceFrequency.Get(); ok {
				rf := billing.RecurrenceFrequency(f)
				frequency = &rf
			} else {
				frequency = nil
			}
		}
		if req.RecurrenceDay.Set {
			if d, ok := req.RecurrenceDay.Get(); ok {
				day = &d
			} else {
				day = nil
			}
		}

		if err := invoice.SetRecurrence(recurrent, frequency, day); err != nil {
			return nil, err
		}
	}

	if req.Services.Set {
		inputs, ok := req.Services.Get()
		if !ok || len(inputs) == 0 {
			return nil, shared.NewDomainError("BUSINESS_RULE", "At least one service is required")
		}
		services, err := buildServices(inputs)
		if err != nil {
			return nil, err
		}
		invoice.SetServices(services)
	}
	invoice.Touch()

	if err := s.invoiceRepo.Update(ctx, invoice, req.Services.Set); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Invoice number is already in use")
		}
		return nil, err
	}

	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// Delete removes an invoice and its line items
func (s *InvoiceService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.invoiceRepo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.invoiceRepo.Delete(ctx, ownerID, id)
}

// nextNumber generates the next invoice number in the owner's sequence
func (s *InvoiceService) nextNumber(ctx context.Context, ownerID uuid.UUID) (string, error) {
	current, err := s.invoiceRepo.MaxInvoiceNumber(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return billing.NextInvoiceNumber(current), nil
}

// buildServices converts line item inputs into domain line items.
// Items without an explicit sort order keep their list position.
func buildServices(inputs []ServiceItemInput) ([]billing.InvoiceService, error) {
	services := make([]billing.InvoiceService, 0, len(inputs))
	for i, input := range inputs {
		sortOrder := input.SortOrder
		if sortOrder == nil {
			position := i
			sortOrder = &position
		}
		svc, err := billing.NewInvoiceService(input.ServiceTitle, input.ServiceDescription, decimal.NewFromFloat(input.Amount), sortOrder)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, nil
}

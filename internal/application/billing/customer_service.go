package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// CustomerService handles customer management use cases
type CustomerService struct {
	customerRepo billing.CustomerRepository
	invoiceRepo  billing.InvoiceRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo billing.CustomerRepository, invoiceRepo billing.InvoiceRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create creates a customer for the owner. Legal names are unique per
// owner.
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByLegalName(ctx, ownerID, req.LegalName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this legal name already exists")
	}

	customer, err := billing.NewCustomer(ownerID, req.LegalName)
	if err != nil {
		return nil, err
	}
	customer.DisplayName = req.DisplayName
	customer.TaxID = req.TaxID
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.AddressLine1 = req.AddressLine1
	customer.AddressLine2 = req.AddressLine2
	customer.City = req.City
	customer.State = req.State
	customer.Zip = req.Zip
	customer.Country = req.Country

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID returns a single customer owned by the given user
func (s *CustomerService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns the owner's customers with pagination
func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, req ListRequest) ([]CustomerResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	customers, err := s.customerRepo.FindAll(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToCustomerResponses(customers), total, nil
}

// Update applies a partial update to a customer. A legal name change is
// checked for uniqueness against the owner's other customers.
func (s *CustomerService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.LegalName != nil && *req.LegalName != customer.LegalName {
		exists, err := s.customerRepo.ExistsByLegalName(ctx, ownerID, *req.LegalName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A customer with this legal name already exists")
		}
		if err := customer.Rename(*req.LegalName); err != nil {
			return nil, err
		}
	}

	if req.DisplayName != nil {
		customer.DisplayName = *req.DisplayName
	}
	if req.TaxID != nil {
		customer.TaxID = *req.TaxID
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.AddressLine1 != nil {
		customer.AddressLine1 = *req.AddressLine1
	}
	if req.AddressLine2 != nil {
		customer.AddressLine2 = *req.AddressLine2
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.Zip != nil {
		customer.Zip = *req.Zip
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	customer.Touch()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes a customer. Customers referenced by invoices cannot be
// deleted.
func (s *CustomerService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}

	count, err := s.invoiceRepo.CountByCustomer(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("RESOURCE_IN_USE", "Customer has invoices and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, ownerID, id)
}

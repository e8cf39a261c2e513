package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// ServiceCatalogService manages the owner's reusable service
// templates: line items kept outside any invoice for quick reuse.
type ServiceCatalogService struct {
	templateRepo billing.ServiceTemplateRepository
}

// NewServiceCatalogService creates a new ServiceCatalogService
func NewServiceCatalogService(templateRepo billing.ServiceTemplateRepository) *ServiceCatalogService {
	return &ServiceCatalogService{templateRepo: templateRepo}
}

// Create adds a template to the owner's catalog
func (s *ServiceCatalogService) Create(ctx context.Context, ownerID uuid.UUID, req CreateServiceRequest) (*ServiceResponse, error) {
	template, err := billing.NewServiceTemplate(ownerID, req.ServiceTitle, req.ServiceDescription, decimal.NewFromFloat(req.Amount), req.SortOrder)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}

	response := ToServiceResponse(template)
	return &response, nil
}

// GetByID returns a single template
func (s *ServiceCatalogService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*ServiceResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	response := ToServiceResponse(template)
	return &response, nil
}

// List returns the owner's catalog ordered by title, optionally
// narrowed by a title query
func (s *ServiceCatalogService) List(ctx context.Context, ownerID uuid.UUID, req ServiceListRequest) ([]ServiceResponse, error) {
	templates, err := s.templateRepo.FindAll(ctx, ownerID, req.Query)
	if err != nil {
		return nil, err
	}
	return ToServiceResponses(templates), nil
}

// Update applies a partial update to a template
func (s *ServiceCatalogService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateServiceRequest) (*ServiceResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.ServiceTitle.Set {
		title, ok := req.ServiceTitle.Get()
		if !ok {
			return nil, shared.NewDomainError("INVALID_SERVICE_TITLE", "Service title cannot be null")
		}
		if err := template.Rename(title); err != nil {
			return nil, err
		}
	}
	if req.ServiceDescription.Set {
		description, _ := req.ServiceDescription.Get()
		template.ServiceDescription = description
	}
	if req.Amount.Set {
		amount, ok := req.Amount.Get()
		if !ok {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Service amount cannot be null")
		}
		if err := template.SetAmount(decimal.NewFromFloat(amount)); err != nil {
			return nil, err
		}
	}
	if req.SortOrder.Set {
		if order, ok := req.SortOrder.Get(); ok {
			template.SortOrder = &order
		} else {
			template.SortOrder = nil
		}
	}
	template.Touch()

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}

	response := ToServiceResponse(template)
	return &response, nil
}

// Delete removes a template from the catalog
func (s *ServiceCatalogService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.templateRepo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, ownerID, id)
}

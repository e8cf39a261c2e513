package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// CategoryService handles transaction category management use cases
type CategoryService struct {
	categoryRepo    ledger.CategoryRepository
	transactionRepo ledger.TransactionRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo ledger.CategoryRepository, transactionRepo ledger.TransactionRepository) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Create creates a category for the owner. Names are unique per owner.
func (s *CategoryService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := ledger.NewTransactionCategory(ownerID, req.Name, req.Color, req.Icon)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID returns a single category owned by the given user
func (s *CategoryService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns the owner's categories with pagination
func (s *CategoryService) List(ctx context.Context, ownerID uuid.UUID, req ListRequest) ([]CategoryResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	filter.OrderBy = "name"
	filter.OrderDir = "asc"

	categories, err := s.categoryRepo.FindAll(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.categoryRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// Update applies a partial update to a category. A name change is
// checked for uniqueness against the owner's other categories.
func (s *CategoryService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, ownerID, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
		}
		if err := category.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Color != nil {
		if err := category.SetColor(*req.Color); err != nil {
			return nil, err
		}
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
		category.Touch()
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category. Categories referenced by transactions
// cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountByCategory(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("RESOURCE_IN_USE", "Category is used by transactions and cannot be deleted")
	}

	return s.categoryRepo.Delete(ctx, ownerID, id)
}

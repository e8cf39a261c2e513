package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// BankAccountService handles bank account management use cases
type BankAccountService struct {
	bankAccountRepo billing.BankAccountRepository
	invoiceRepo     billing.InvoiceRepository
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(bankAccountRepo billing.BankAccountRepository, invoiceRepo billing.InvoiceRepository) *BankAccountService {
	return &BankAccountService{
		bankAccountRepo: bankAccountRepo,
		invoiceRepo:     invoiceRepo,
	}
}

// Create creates a bank account for the owner. Labels are unique per
// owner.
func (s *BankAccountService) Create(ctx context.Context, ownerID uuid.UUID, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	exists, err := s.bankAccountRepo.ExistsByLabel(ctx, ownerID, req.Label)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A bank account with this label already exists")
	}

	account, err := billing.NewBankAccount(ownerID, req.Label)
	if err != nil {
		return nil, err
	}
	account.BeneficiaryFullName = req.BeneficiaryFullName
	account.BeneficiaryFullAddress = req.BeneficiaryFullAddress
	account.BeneficiaryAccountNumber = req.BeneficiaryAccountNumber
	account.SwiftCode = req.SwiftCode
	account.BankName = req.BankName
	account.BankAddress = req.BankAddress
	account.IntermediaryBankInfo = req.IntermediaryBankInfo

	if err := s.bankAccountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}

// GetByID returns a single bank account owned by the given user
func (s *BankAccountService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.bankAccountRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	response := ToBankAccountResponse(account)
	return &response, nil
}

// List returns the owner's bank accounts with pagination
func (s *BankAccountService) List(ctx context.Context, ownerID uuid.UUID, req ListRequest) ([]BankAccountResponse, int64, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	accounts, err := s.bankAccountRepo.FindAll(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.bankAccountRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToBankAccountResponses(accounts), total, nil
}

// Update applies a partial update to a bank account. A label change is
// checked for uniqueness against the owner's other accounts.
func (s *BankAccountService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := s.bankAccountRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil && *req.Label != account.Label {
		exists, err := s.bankAccountRepo.ExistsByLabel(ctx, ownerID, *req.Label)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A bank account with this label already exists")
		}
		if err := account.Relabel(*req.Label); err != nil {
			return nil, err
		}
	}

	if req.BeneficiaryFullName != nil {
		account.BeneficiaryFullName = *req.BeneficiaryFullName
	}
	if req.BeneficiaryFullAddress != nil {
		account.BeneficiaryFullAddress = *req.BeneficiaryFullAddress
	}
	if req.BeneficiaryAccountNumber != nil {
		account.BeneficiaryAccountNumber = *req.BeneficiaryAccountNumber
	}
	if req.SwiftCode != nil {
		account.SwiftCode = *req.SwiftCode
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.BankAddress != nil {
		account.BankAddress = *req.BankAddress
	}
	if req.IntermediaryBankInfo != nil {
		account.IntermediaryBankInfo = *req.IntermediaryBankInfo
	}
	account.Touch()

	if err := s.bankAccountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	response := ToBankAccountResponse(account)
	return &response, nil
}

// Delete removes a bank account. Accounts referenced by invoices cannot
// be deleted; references from transactions are cleared by the schema.
func (s *BankAccountService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.bankAccountRepo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}

	count, err := s.invoiceRepo.CountByBankAccount(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("RESOURCE_IN_USE", "Bank account is used by invoices and cannot be deleted")
	}

	return s.bankAccountRepo.Delete(ctx, ownerID, id)
}

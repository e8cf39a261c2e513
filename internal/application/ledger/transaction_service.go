package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

// TransactionService handles transaction management use cases
type TransactionService struct {
	transactionRepo ledger.TransactionRepository
	categoryRepo    ledger.CategoryRepository
	bankAccountRepo billing.BankAccountRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo ledger.TransactionRepository, categoryRepo ledger.CategoryRepository, bankAccountRepo billing.BankAccountRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// Create creates a transaction. Category and bank account references
// must belong to the owner.
func (s *TransactionService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTransactionRequest) (*TransactionResponse, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, ownerID, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.BankAccountID != nil {
		if _, err := s.bankAccountRepo.FindByID(ctx, ownerID, *req.BankAccountID); err != nil {
			return nil, err
		}
	}

	transaction, err := ledger.NewTransaction(
		ownerID,
		ledger.TransactionType(req.Type),
		ledger.TransactionContext(req.Context),
		req.Description,
		decimal.NewFromFloat(req.Amount),
		req.Date,
	)
	if err != nil {
		return nil, err
	}
	transaction.CategoryID = req.CategoryID
	transaction.BankAccountID = req.BankAccountID
	transaction.Notes = req.Notes
	if req.Currency != "" {
		transaction.Currency = strings.ToUpper(req.Currency)
	}

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	response := ToTransactionResponse(transaction)
	return &response, nil
}

// GetByID returns a single transaction owned by the given user
func (s *TransactionService) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	response := ToTransactionResponse(transaction)
	return &response, nil
}

// List returns the owner's transactions with pagination and the full
// filter set
func (s *TransactionService) List(ctx context.Context, ownerID uuid.UUID, req TransactionFilterRequest) ([]TransactionResponse, int64, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, 0, err
	}

	transactions, err := s.transactionRepo.FindAll(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToTransactionResponses(transactions), total, nil
}

// Summary aggregates income, expense, net and count over the matching
// transactions
func (s *TransactionService) Summary(ctx context.Context, ownerID uuid.UUID, req TransactionFilterRequest) (*SummaryResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	summary, err := s.transactionRepo.Summarize(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	response := ToSummaryResponse(summary)
	return &response, nil
}

// BalancesByAccount groups matching transactions by bank account.
// Accounts without matching transactions are absent from the result.
func (s *TransactionService) BalancesByAccount(ctx context.Context, ownerID uuid.UUID, req TransactionFilterRequest) ([]AccountBalanceResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	balances, err := s.transactionRepo.BalancesByAccount(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	return ToAccountBalanceResponses(balances), nil
}

// Update applies a partial update to a transaction. Nulling category_id
// or bank_account_id detaches the reference.
func (s *TransactionService) Update(ctx context.Context, ownerID, id uuid.UUID, req UpdateTransactionRequest) (*TransactionResponse, error) {
	transaction, err := s.transactionRepo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Type.Set {
		txType, ok := req.Type.Get()
		if !ok || !ledger.ValidTransactionType(ledger.TransactionType(txType)) {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Transaction type must be income or expense")
		}
		transaction.Type = ledger.TransactionType(txType)
	}

	if req.Context.Set {
		txContext, ok := req.Context.Get()
		if !ok || !ledger.ValidTransactionContext(ledger.TransactionContext(txContext)) {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Transaction context must be business or personal")
		}
		transaction.Context = ledger.TransactionContext(txContext)
	}

	if req.Description.Set {
		description, ok := req.Description.Get()
		if !ok || strings.TrimSpace(description) == "" {
			return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
		}
		transaction.Description = strings.TrimSpace(description)
	}

	if req.Amount.Set {
		amount, ok := req.Amount.Get()
		if !ok || amount <= 0 {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Amount must be positive")
		}
		transaction.Amount = decimal.NewFromFloat(amount)
	}

	if req.Currency.Set {
		currency, ok := req.Currency.Get()
		if !ok || len(currency) != 3 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Currency must be a 3-letter code")
		}
		transaction.Currency = strings.ToUpper(currency)
	}

	if req.Date.Set {
		date, ok := req.Date.Get()
		if !ok || date.IsZero() {
			return nil, shared.NewDomainError("BUSINESS_RULE", "Date cannot be null")
		}
		transaction.Date = date
	}

	if req.CategoryID.Set {
		if categoryID, ok := req.CategoryID.Get(); ok {
			if _, err := s.categoryRepo.FindByID(ctx, ownerID, categoryID); err != nil {
				return nil, err
			}
			transaction.CategoryID = &categoryID
		} else {
			transaction.CategoryID = nil
		}
	}

	if req.BankAccountID.Set {
		if bankAccountID, ok := req.BankAccountID.Get(); ok {
			if _, err := s.bankAccountRepo.FindByID(ctx, ownerID, bankAccountID); err != nil {
				return nil, err
			}
			transaction.BankAccountID = &bankAccountID
		} else {
			transaction.BankAccountID = nil
		}
	}

	if req.Notes.Set {
		notes, _ := req.Notes.Get()
		transaction.Notes = notes
	}
	transaction.Touch()

	if err := s.transactionRepo.Save(ctx, transaction); err != nil {
		return nil, err
	}

	response := ToTransactionResponse(transaction)
	return &response, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.transactionRepo.FindByID(ctx, ownerID, id); err != nil {
		return err
	}
	return s.transactionRepo.Delete(ctx, ownerID, id)
}

// buildFilter translates request filters into a repository filter. The
// same filter feeds listing and both aggregation queries.
func buildFilter(req TransactionFilterRequest) (shared.Filter, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search
	filter.OrderBy = "date"

	if req.Type != "" {
		filter.Filters["type"] = req.Type
	}
	if req.Context != "" {
		filter.Filters["context"] = req.Context
	}
	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return shared.Filter{}, shared.NewDomainError("INVALID_INPUT", "Invalid category id")
		}
		filter.Filters["category_id"] = categoryID
	}
	if req.BankAccountID != "" {
		bankAccountID, err := uuid.Parse(req.BankAccountID)
		if err != nil {
			return shared.Filter{}, shared.NewDomainError("INVALID_INPUT", "Invalid bank account id")
		}
		filter.Filters["bank_account_id"] = bankAccountID
	}
	if req.DateFrom != "" {
		from, err := valueobject.ParseDate(req.DateFrom)
		if err != nil {
			return shared.Filter{}, shared.NewDomainError("INVALID_INPUT", "date_from must be YYYY-MM-DD")
		}
		filter.Filters["date_from"] = from
	}
	if req.DateTo != "" {
		to, err := valueobject.ParseDate(req.DateTo)
		if err != nil {
			return shared.Filter{}, shared.NewDomainError("INVALID_INPUT", "date_to must be YYYY-MM-DD")
		}
		filter.Filters["date_to"] = to
	}

	return filter, nil
}

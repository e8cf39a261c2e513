package search

import (
	"context"
	"strings"

	"github.com/google/uuid"

	appbilling "github.com/ledgerly/backend/internal/application/billing"
	appidentity "github.com/ledgerly/backend/internal/application/identity"
	appledger "github.com/ledgerly/backend/internal/application/ledger"
	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/identity"
	"github.com/ledgerly/backend/internal/domain/ledger"
	"github.com/ledgerly/backend/internal/domain/shared"
)

// resultLimit caps the number of hits returned per result kind
const resultLimit = 3

// SearchResponse groups the top matches per result kind. Kinds without
// matches are omitted from the payload.
type SearchResponse struct {
	Customers    []appbilling.CustomerResponse    `json:"customers,omitempty"`
	BankAccounts []appbilling.BankAccountResponse `json:"bank_accounts,omitempty"`
	Invoices     []appbilling.InvoiceResponse     `json:"invoices,omitempty"`
	Services     []appbilling.ServiceResponse     `json:"services,omitempty"`
	Categories   []appledger.CategoryResponse     `json:"categories,omitempty"`
	Transactions []appledger.TransactionResponse  `json:"transactions,omitempty"`
	Users        []appidentity.UserResponse       `json:"users,omitempty"`
}

// Service fans a query out across the caller's data. The users kind is
// only searched for admins.
type Service struct {
	customerRepo    billing.CustomerRepository
	bankAccountRepo billing.BankAccountRepository
	invoiceRepo     billing.InvoiceRepository
	templateRepo    billing.ServiceTemplateRepository
	categoryRepo    ledger.CategoryRepository
	transactionRepo ledger.TransactionRepository
	userRepo        identity.UserRepository
}

// NewService creates a new search Service
func NewService(
	customerRepo billing.CustomerRepository,
	bankAccountRepo billing.BankAccountRepository,
	invoiceRepo billing.InvoiceRepository,
	templateRepo billing.ServiceTemplateRepository,
	categoryRepo ledger.CategoryRepository,
	transactionRepo ledger.TransactionRepository,
	userRepo identity.UserRepository,
) *Service {
	return &Service{
		customerRepo:    customerRepo,
		bankAccountRepo: bankAccountRepo,
		invoiceRepo:     invoiceRepo,
		templateRepo:    templateRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// Search returns the top matches per kind for the owner's data
func (s *Service) Search(ctx context.Context, ownerID uuid.UUID, isAdmin bool, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Search query cannot be empty")
	}

	response := &SearchResponse{}

	customers, err := s.customerRepo.Search(ctx, ownerID, query, resultLimit)
	if err != nil {
		return nil, err
	}
	if len(customers) > 0 {
		response.Customers = appbilling.ToCustomerResponses(customers)
	}

	accounts, err := s.bankAccountRepo.Search(ctx, ownerID, query, resultLimit)
	if err != nil {
		return nil, err
	}
	if len(accounts) > 0 {
		response.BankAccounts = appbilling.ToBankAccountResponses(accounts)
	}

	invoices, err := s.invoiceRepo.Search(ctx, ownerID, query, resultLimit)
	if err != nil {
		return nil, err
	}
	if len(invoices) > 0 {
		response.Invoices = appbilling.ToInvoiceResponses(invoices)
	}

	templates, err := s.templateRepo.Search(ctx, ownerID, query, resultLimit)
	if err != nil {
		return nil, err
	}
	if len(templates) > 0 {
		response.Services = appbilling.ToServiceResponses(templates)
	}

	categories, err := s.categoryRepo.Search(ctx, ownerID, query, resultLimit)
	if err != nil {
		return nil, err
	}
	if len(categories) > 0 {
		response.Categories = appledger.ToCategoryResponses(categories)
	}

	transactions, err := s.transactionRepo.Search(ctx, ownerID, query, resultLimit)
	if err != nil {
		return nil, err
	}
	if len(transactions) > 0 {
		response.Transactions = appledger.ToTransactionResponses(transactions)
	}

	if isAdmin {
		users, err := s.userRepo.Search(ctx, query, resultLimit)
		if err != nil {
			return nil, err
		}
		if len(users) > 0 {
			response.Users = appidentity.ToUserResponses(users)
		}
	}

	return response, nil
}

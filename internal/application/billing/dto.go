package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/billing"
	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

// CreateCustomerRequest carries the fields for creating a customer
type CreateCustomerRequest struct {
	LegalName    string `json:"legal_name" binding:"required,min=1,max=255"`
	DisplayName  string `json:"display_name" binding:"max=255"`
	TaxID        string `json:"tax_id" binding:"max=64"`
	Email        string `json:"email" binding:"omitempty,email,max=255"`
	Phone        string `json:"phone" binding:"max=50"`
	AddressLine1 string `json:"address_line_1" binding:"max=255"`
	AddressLine2 string `json:"address_line_2" binding:"max=255"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=100"`
	Zip          string `json:"zip" binding:"max=20"`
	Country      string `json:"country" binding:"max=100"`
}

// UpdateCustomerRequest carries a partial customer update; absent
// fields keep their current value.
type UpdateCustomerRequest struct {
	LegalName    *string `json:"legal_name" binding:"omitempty,min=1,max=255"`
	DisplayName  *string `json:"display_name" binding:"omitempty,max=255"`
	TaxID        *string `json:"tax_id" binding:"omitempty,max=64"`
	Email        *string `json:"email" binding:"omitempty,email,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	AddressLine1 *string `json:"address_line_1" binding:"omitempty,max=255"`
	AddressLine2 *string `json:"address_line_2" binding:"omitempty,max=255"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=100"`
	Zip          *string `json:"zip" binding:"omitempty,max=20"`
	Country      *string `json:"country" binding:"omitempty,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID           string    `json:"id"`
	LegalName    string    `json:"legal_name"`
	DisplayName  string    `json:"display_name"`
	TaxID        string    `json:"tax_id"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	AddressLine1 string    `json:"address_line_1"`
	AddressLine2 string    `json:"address_line_2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Zip          string    `json:"zip"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer
func ToCustomerResponse(c *billing.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID.String(),
		LegalName:    c.LegalName,
		DisplayName:  c.DisplayName,
		TaxID:        c.TaxID,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		Zip:          c.Zip,
		Country:      c.Country,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []billing.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}

// CreateBankAccountRequest carries the fields for creating a bank account
type CreateBankAccountRequest struct {
	Label                    string `json:"label" binding:"required,min=1,max=100"`
	BeneficiaryFullName      string `json:"beneficiary_full_name" binding:"max=255"`
	BeneficiaryFullAddress   string `json:"beneficiary_full_address"`
	BeneficiaryAccountNumber string `json:"beneficiary_account_number" binding:"max=64"`
	SwiftCode                string `json:"swift_code" binding:"max=16"`
	BankName                 string `json:"bank_name" binding:"max=255"`
	BankAddress              string `json:"bank_address"`
	IntermediaryBankInfo     string `json:"intermediary_bank_info"`
}

// UpdateBankAccountRequest carries a partial bank account update
type UpdateBankAccountRequest struct {
	Label                    *string `json:"label" binding:"omitempty,min=1,max=100"`
	BeneficiaryFullName      *string `json:"beneficiary_full_name" binding:"omitempty,max=255"`
	BeneficiaryFullAddress   *string `json:"beneficiary_full_address"`
	BeneficiaryAccountNumber *string `json:"beneficiary_account_number" binding:"omitempty,max=64"`
	SwiftCode                *string `json:"swift_code" binding:"omitempty,max=16"`
	BankName                 *string `json:"bank_name" binding:"omitempty,max=255"`
	BankAddress              *string `json:"bank_address"`
	IntermediaryBankInfo     *string `json:"intermediary_bank_info"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID                       string    `json:"id"`
	Label                    string    `json:"label"`
	BeneficiaryFullName      string    `json:"beneficiary_full_name"`
	BeneficiaryFullAddress   string    `json:"beneficiary_full_address"`
	BeneficiaryAccountNumber string    `json:"beneficiary_account_number"`
	SwiftCode                string    `json:"swift_code"`
	BankName                 string    `json:"bank_name"`
	BankAddress              string    `json:"bank_address"`
	IntermediaryBankInfo     string    `json:"intermediary_bank_info"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// ToBankAccountResponse converts a domain bank account
func ToBankAccountResponse(b *billing.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:                       b.ID.String(),
		Label:                    b.Label,
		BeneficiaryFullName:      b.BeneficiaryFullName,
		BeneficiaryFullAddress:   b.BeneficiaryFullAddress,
		BeneficiaryAccountNumber: b.BeneficiaryAccountNumber,
		SwiftCode:                b.SwiftCode,
		BankName:                 b.BankName,
		BankAddress:              b.BankAddress,
		IntermediaryBankInfo:     b.IntermediaryBankInfo,
		CreatedAt:                b.CreatedAt,
		UpdatedAt:                b.UpdatedAt,
	}
}

// ToBankAccountResponses converts a slice of domain bank accounts
func ToBankAccountResponses(accounts []billing.BankAccount) []BankAccountResponse {
	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToBankAccountResponse(&accounts[i])
	}
	return responses
}

// ListRequest holds common pagination and search parameters
type ListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

// ServiceItemInput is a single line item in invoice create/update
// requests. SortOrder distinguishes absent from an explicit zero;
// absent items fall back to their position in the list.
type ServiceItemInput struct {
	ServiceTitle       string  `json:"service_title" binding:"required,min=1,max=255"`
	ServiceDescription string  `json:"service_description"`
	Amount             float64 `json:"amount" binding:"required,gt=0"`
	SortOrder          *int    `json:"sort_order"`
}

// CreateInvoiceRequest carries the fields for creating an invoice.
// InvoiceNumber is optional; when empty the next number in the owner's
// sequence is generated.
type CreateInvoiceRequest struct {
	CustomerID          uuid.UUID          `json:"customer_id" binding:"required"`
	BankAccountID       *uuid.UUID         `json:"bank_account_id"`
	InvoiceNumber       string             `json:"invoice_number" binding:"max=50"`
	IssueDate           valueobject.Date   `json:"issue_date"`
	DueDate             valueobject.Date   `json:"due_date"`
	Currency            string             `json:"currency" binding:"omitempty,len=3"`
	Status              string             `json:"status" binding:"omitempty,oneof=draft sent paid void"`
	Notes               string             `json:"notes"`
	IsRecurrent         bool               `json:"is_recurrent"`
	RecurrenceFrequency *string            `json:"recurrence_frequency" binding:"omitempty,oneof=daily weekly monthly"`
	RecurrenceDay       *int               `json:"recurrence_day"`
	Services            []ServiceItemInput `json:"services" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest carries a partial invoice update. Optional
// fields distinguish absent from explicit null; a present services
// array replaces the full line item set.
type UpdateInvoiceRequest struct {
	CustomerID          shared.Optional[uuid.UUID]          `json:"customer_id"`
	BankAccountID       shared.Optional[uuid.UUID]          `json:"bank_account_id"`
	InvoiceNumber       shared.Optional[string]             `json:"invoice_number"`
	IssueDate           shared.Optional[valueobject.Date]   `json:"issue_date"`
	DueDate             shared.Optional[valueobject.Date]   `json:"due_date"`
	Currency            shared.Optional[string]             `json:"currency"`
	Status              shared.Optional[string]             `json:"status"`
	Notes               shared.Optional[string]             `json:"notes"`
	IsRecurrent         shared.Optional[bool]               `json:"is_recurrent"`
	RecurrenceFrequency shared.Optional[string]             `json:"recurrence_frequency"`
	RecurrenceDay       shared.Optional[int]                `json:"recurrence_day"`
	Services            shared.Optional[[]ServiceItemInput] `json:"services"`
}

// InvoiceListRequest holds list filters for invoices
type InvoiceListRequest struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status        string `form:"status" binding:"omitempty,oneof=draft sent paid void"`
	CustomerID    string `form:"customer_id" binding:"omitempty,uuid"`
	IssueDateFrom string `form:"issue_date_from" binding:"omitempty,datetime=2006-01-02"`
	IssueDateTo   string `form:"issue_date_to" binding:"omitempty,datetime=2006-01-02"`
}

// InvoiceServiceResponse represents a line item in API responses
type InvoiceServiceResponse struct {
	ID                 string  `json:"id"`
	ServiceTitle       string  `json:"service_title"`
	ServiceDescription string  `json:"service_description"`
	Amount             float64 `json:"amount"`
	SortOrder          *int    `json:"sort_order"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID                  string                   `json:"id"`
	CustomerID          string                   `json:"customer_id"`
	BankAccountID       *string                  `json:"bank_account_id"`
	InvoiceNumber       string                   `json:"invoice_number"`
	IssueDate           string                   `json:"issue_date"`
	DueDate             string                   `json:"due_date"`
	Currency            string                   `json:"currency"`
	Status              string                   `json:"status"`
	TotalAmount         float64                  `json:"total_amount"`
	Notes               string                   `json:"notes"`
	IsRecurrent         bool                     `json:"is_recurrent"`
	RecurrenceFrequency *string                  `json:"recurrence_frequency"`
	RecurrenceDay       *int                     `json:"recurrence_day"`
	Services            []InvoiceServiceResponse `json:"services"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

// ToInvoiceResponse converts a domain invoice with its line items
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	services := make([]InvoiceServiceResponse, len(inv.Services))
	for i, svc := range inv.Services {
		services[i] = InvoiceServiceResponse{
			ID:                 svc.ID.String(),
			ServiceTitle:       svc.ServiceTitle,
			ServiceDescription: svc.ServiceDescription,
			Amount:             svc.Amount.InexactFloat64(),
			SortOrder:          svc.SortOrder,
		}
	}

	var bankAccountID *string
	if inv.BankAccountID != nil {
		id := inv.BankAccountID.String()
		bankAccountID = &id
	}

	var frequency *string
	if inv.RecurrenceFrequency != nil {
		f := string(*inv.RecurrenceFrequency)
		frequency = &f
	}

	return InvoiceResponse{
		ID:                  inv.ID.String(),
		CustomerID:          inv.CustomerID.String(),
		BankAccountID:       bankAccountID,
		InvoiceNumber:       inv.InvoiceNumber,
		IssueDate:           inv.IssueDate.String(),
		DueDate:             inv.DueDate.String(),
		Currency:            inv.Currency,
		Status:              string(inv.Status),
		TotalAmount:         inv.TotalAmount.InexactFloat64(),
		Notes:               inv.Notes,
		IsRecurrent:         inv.IsRecurrent,
		RecurrenceFrequency: frequency,
		RecurrenceDay:       inv.RecurrenceDay,
		Services:            services,
		CreatedAt:           inv.CreatedAt,
		UpdatedAt:           inv.UpdatedAt,
	}
}

// CreateServiceRequest carries the fields for creating a catalog
// service template
type CreateServiceRequest struct {
	ServiceTitle       string  `json:"service_title" binding:"required,min=1,max=255"`
	ServiceDescription string  `json:"service_description"`
	Amount             float64 `json:"amount" binding:"required,gt=0"`
	SortOrder          *int    `json:"sort_order"`
}

// UpdateServiceRequest carries a partial template update
type UpdateServiceRequest struct {
	ServiceTitle       shared.Optional[string]  `json:"service_title"`
	ServiceDescription shared.Optional[string]  `json:"service_description"`
	Amount             shared.Optional[float64] `json:"amount"`
	SortOrder          shared.Optional[int]     `json:"sort_order"`
}

// ServiceListRequest holds the catalog listing filter
type ServiceListRequest struct {
	Query string `form:"q"`
}

// ServiceResponse represents a catalog service template in API responses
type ServiceResponse struct {
	ID                 string    `json:"id"`
	ServiceTitle       string    `json:"service_title"`
	ServiceDescription string    `json:"service_description"`
	Amount             float64   `json:"amount"`
	SortOrder          *int      `json:"sort_order"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToServiceResponse converts a domain service template
func ToServiceResponse(s *billing.InvoiceService) ServiceResponse {
	return ServiceResponse{
		ID:                 s.ID.String(),
		ServiceTitle:       s.ServiceTitle,
		ServiceDescription: s.ServiceDescription,
		Amount:             s.Amount.InexactFloat64(),
		SortOrder:          s.SortOrder,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToServiceResponses converts a slice of domain service templates
func ToServiceResponses(services []billing.InvoiceService) []ServiceResponse {
	responses := make([]ServiceResponse, len(services))
	for i := range services {
		responses[i] = ToServiceResponse(&services[i])
	}
	return responses
}

// ToInvoiceResponses converts a slice of domain invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

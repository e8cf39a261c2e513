package billing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerly/backend/internal/domain/shared"
	"github.com/ledgerly/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
	InvoiceStatusVoid  InvoiceStatus = "void"
)

// ValidInvoiceStatus reports whether the status is one of the known values
func ValidInvoiceStatus(s InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusVoid:
		return true
	}
	return false
}

// RecurrenceFrequency represents how often a recurrent invoice repeats
type RecurrenceFrequency string

const (
	RecurrenceDaily   RecurrenceFrequency = "daily"
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
)

// DefaultCurrency is used when the caller does not specify one
const DefaultCurrency = "USD"

// InvoiceService is a billable line item. Attached to an invoice it is
// one of the invoice's lines; with a nil InvoiceID it is a reusable
// template in the owner's service catalog.
type InvoiceService struct {
	shared.OwnedEntity
	InvoiceID          *uuid.UUID      `gorm:"type:uuid;index"`
	ServiceTitle       string          `gorm:"type:varchar(255);not null"`
	ServiceDescription string          `gorm:"type:text"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SortOrder          *int
}

// TableName returns the table name for GORM
func (InvoiceService) TableName() string {
	return "invoice_services"
}

// IsTemplate reports whether the line item belongs to the service
// catalog rather than to an invoice
func (s *InvoiceService) IsTemplate() bool {
	return s.InvoiceID == nil
}

// NewInvoiceService creates a line item. Invoice and owner references
// are stamped when the line is attached to an invoice.
func NewInvoiceService(title, description string, amount decimal.Decimal, sortOrder *int) (*InvoiceService, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_TITLE", "Service title cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("BUSINESS_RULE", "Service amount must be greater than zero")
	}

	return &InvoiceService{
		OwnedEntity:        shared.OwnedEntity{BaseEntity: shared.NewBaseEntity()},
		ServiceTitle:       title,
		ServiceDescription: description,
		Amount:             amount,
		SortOrder:          sortOrder,
	}, nil
}

// NewServiceTemplate creates a catalog line item owned by the given
// user and attached to no invoice
func NewServiceTemplate(ownerID uuid.UUID, title, description string, amount decimal.Decimal, sortOrder *int) (*InvoiceService, error) {
	svc, err := NewInvoiceService(title, description, amount, sortOrder)
	if err != nil {
		return nil, err
	}
	svc.CreatedByUserID = ownerID
	return svc, nil
}

// Rename changes the template title
func (s *InvoiceService) Rename(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_SERVICE_TITLE", "Service title cannot be empty")
	}
	s.ServiceTitle = title
	s.Touch()
	return nil
}

// SetAmount changes the line amount
func (s *InvoiceService) SetAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("BUSINESS_RULE", "Service amount must be greater than zero")
	}
	s.Amount = amount
	s.Touch()
	return nil
}

// Invoice is the aggregate root for billing documents. Line items are
// owned by the invoice; the stored total is always the sum of line
// amounts.
type Invoice struct {
	shared.OwnedEntity
	CustomerID          uuid.UUID            `gorm:"type:uuid;not null;index"`
	BankAccountID       *uuid.UUID           `gorm:"type:uuid;index"`
	InvoiceNumber       string               `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_owner_number,priority:2"`
	IssueDate           valueobject.Date     `gorm:"type:date;not null"`
	DueDate             valueobject.Date     `gorm:"type:date;not null"`
	Currency            string               `gorm:"type:varchar(3);not null;default:'USD'"`
	Status              InvoiceStatus        `gorm:"type:varchar(20);not null;default:'draft'"`
	TotalAmount         decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	Notes               string               `gorm:"type:text"`
	IsRecurrent         bool                 `gorm:"not null;default:false"`
	RecurrenceFrequency *RecurrenceFrequency `gorm:"type:varchar(10)"`
	RecurrenceDay       *int
	Services            []InvoiceService `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice owned by the given user
func NewInvoice(ownerID, customerID uuid.UUID, number string, issueDate, dueDate valueobject.Date) (*Invoice, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if err := validateDates(issueDate, dueDate); err != nil {
		return nil, err
	}

	return &Invoice{
		OwnedEntity:   shared.NewOwnedEntity(ownerID),
		CustomerID:    customerID,
		InvoiceNumber: number,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Currency:      DefaultCurrency,
		Status:        InvoiceStatusDraft,
		TotalAmount:   decimal.Zero,
		Services:      make([]InvoiceService, 0),
	}, nil
}

func validateDates(issueDate, dueDate valueobject.Date) error {
	if issueDate.IsZero() || dueDate.IsZero() {
		return shared.NewDomainError("BUSINESS_RULE", "Issue date and due date are required")
	}
	if dueDate.Before(issueDate) {
		return shared.NewDomainError("BUSINESS_RULE", "Due date must be on or after the issue date")
	}
	return nil
}

// SetDates changes the issue and due dates together so the due date
// can never precede the issue date
func (i *Invoice) SetDates(issueDate, dueDate valueobject.Date) error {
	if err := validateDates(issueDate, dueDate); err != nil {
		return err
	}
	i.IssueDate = issueDate
	i.DueDate = dueDate
	i.Touch()
	return nil
}

// SetStatus changes the invoice status
func (i *Invoice) SetStatus(status InvoiceStatus) error {
	if !ValidInvoiceStatus(status) {
		return shared.NewDomainError("BUSINESS_RULE", fmt.Sprintf("Unknown invoice status %q", status))
	}
	i.Status = status
	i.Touch()
	return nil
}

// SetNumber changes the invoice number
func (i *Invoice) SetNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	i.InvoiceNumber = number
	i.Touch()
	return nil
}

// SetServices replaces the full line item set and recomputes the total
func (i *Invoice) SetServices(services []InvoiceService) {
	for idx := range services {
		id := i.ID
		services[idx].InvoiceID = &id
		services[idx].CreatedByUserID = i.CreatedByUserID
	}
	i.Services = services
	i.RecalculateTotal()
	i.Touch()
}

// RecalculateTotal recomputes TotalAmount from the current line items
func (i *Invoice) RecalculateTotal() {
	total := decimal.Zero
	for _, svc := range i.Services {
		total = total.Add(svc.Amount)
	}
	i.TotalAmount = total
}

// SetRecurrence configures the recurrence fields, enforcing the
// frequency/day constraints. When recurrent is false both frequency and
// day are cleared regardless of input.
func (i *Invoice) SetRecurrence(recurrent bool, frequency *RecurrenceFrequency, day *int) error {
	if !recurrent {
		i.IsRecurrent = false
		i.RecurrenceFrequency = nil
		i.RecurrenceDay = nil
		i.Touch()
		return nil
	}

	if frequency == nil {
		return shared.NewDomainError("BUSINESS_RULE", "Recurrence frequency is required for recurrent invoices")
	}

	switch *frequency {
	case RecurrenceDaily:
		// Daily schedules have no day slot; a supplied day is discarded.
		day = nil
	case RecurrenceWeekly:
		if day == nil || *day < 0 || *day > 6 {
			return shared.NewDomainError("BUSINESS_RULE", "Weekly recurrence day must be between 0 (Monday) and 6 (Sunday)")
		}
	case RecurrenceMonthly:
		if day == nil || *day < 1 || *day > 31 {
			return shared.NewDomainError("BUSINESS_RULE", "Monthly recurrence day must be between 1 and 31")
		}
	default:
		return shared.NewDomainError("BUSINESS_RULE", fmt.Sprintf("Unknown recurrence frequency %q", *frequency))
	}

	i.IsRecurrent = true
	i.RecurrenceFrequency = frequency
	i.RecurrenceDay = day
	i.Touch()
	return nil
}

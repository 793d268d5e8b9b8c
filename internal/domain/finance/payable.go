package finance

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableStatus represents the settlement status of a payable
type PayableStatus string

const (
	PayableStatusOpen PayableStatus = "A_PAGAR"
	PayableStatusPaid PayableStatus = "PAGO"
)

// IsValid checks if the status is a valid PayableStatus
func (s PayableStatus) IsValid() bool {
	return s == PayableStatusOpen || s == PayableStatusPaid
}

// Payable represents an amount owed to a supplier. Overdue is not a stored
// status: an open payable past its due date is overdue by derivation.
type Payable struct {
	shared.CompanyEntity
	Description string          `gorm:"size:200;not null" json:"description"`
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"not null;index" json:"due_date"`
	Status      PayableStatus   `gorm:"size:20;not null;default:A_PAGAR" json:"status"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	PaidAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"paid_amount"`
	Category    string          `gorm:"size:80" json:"category"`
	Notes       string          `gorm:"type:text" json:"notes"`

	// set when the payable was generated from another document
	SourceType string     `gorm:"size:40;index:idx_payables_source" json:"source_type,omitempty"`
	SourceID   *uuid.UUID `gorm:"type:uuid;index:idx_payables_source" json:"source_id,omitempty"`
}

// TableName returns the database table name
func (Payable) TableName() string {
	return "payables"
}

// NewPayable creates a new open payable
func NewPayable(companyID uuid.UUID, description string, amount decimal.Decimal, dueDate time.Time) (*Payable, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be empty")
	}

	return &Payable{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Description:   description,
		Amount:        amount,
		DueDate:       dueDate,
		Status:        PayableStatusOpen,
		PaidAmount:    decimal.Zero,
	}, nil
}

// Settle marks the payable as paid. Settling twice is an error.
func (p *Payable) Settle(paidAt time.Time, paidAmount decimal.Decimal) error {
	if p.Status == PayableStatusPaid {
		return shared.ErrAlreadySettled
	}
	if paidAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Paid amount must be positive")
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	p.Status = PayableStatusPaid
	p.PaidAt = &paidAt
	p.PaidAmount = paidAmount
	p.UpdatedAt = time.Now()
	return nil
}

// Reopen reverts a settlement
func (p *Payable) Reopen() error {
	if p.Status != PayableStatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid payables can be reopened")
	}
	p.Status = PayableStatusOpen
	p.PaidAt = nil
	p.PaidAmount = decimal.Zero
	p.Touch()
	return nil
}

// IsOverdue reports whether the payable is open and past due at the given time
func (p *Payable) IsOverdue(now time.Time) bool {
	return p.Status == PayableStatusOpen && p.DueDate.Before(truncateToDay(now))
}

// IsSettled reports whether the payable has been paid
func (p *Payable) IsSettled() bool {
	return p.Status == PayableStatusPaid
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package billing

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract represents a recurring billing agreement with a client. Each
// active contract yields one receivable per competency month, due on DueDay
// (clamped to the month's last day).
type Contract struct {
	shared.CompanyEntity
	ClientID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName  string          `gorm:"size:160;not null" json:"client_name"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	DueDay      int             `gorm:"not null" json:"due_day"`
	StartsAt    time.Time       `gorm:"not null" json:"starts_at"`
	EndsAt      *time.Time      `json:"ends_at,omitempty"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

// TableName returns the database table name
func (Contract) TableName() string {
	return "contracts"
}

// NewContract creates a new active contract
func NewContract(companyID, clientID uuid.UUID, clientName, description string, amount decimal.Decimal, dueDay int, startsAt time.Time) (*Contract, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, shared.NewDomainError("INVALID_DUE_DAY", "Due day must be between 1 and 31")
	}
	if startsAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_START", "Start date cannot be empty")
	}

	return &Contract{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		ClientID:      clientID,
		ClientName:    clientName,
		Description:   description,
		Amount:        amount,
		DueDay:        dueDay,
		StartsAt:      startsAt,
		Active:        true,
	}, nil
}

// SetAmount updates the recurring amount
func (c *Contract) SetAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	c.Amount = amount
	c.Touch()
	return nil
}

// SetDueDay updates the configured day of month
func (c *Contract) SetDueDay(day int) error {
	if day < 1 || day > 31 {
		return shared.NewDomainError("INVALID_DUE_DAY", "Due day must be between 1 and 31")
	}
	c.DueDay = day
	c.Touch()
	return nil
}

// Terminate closes the contract at the given date
func (c *Contract) Terminate(endsAt time.Time) error {
	if !c.Active {
		return shared.NewDomainError("INVALID_STATE", "Contract is already inactive")
	}
	if endsAt.Before(c.StartsAt) {
		return shared.NewDomainError("INVALID_END", "End date cannot precede start date")
	}
	c.Active = false
	c.EndsAt = &endsAt
	c.Touch()
	return nil
}

// Reactivate reopens a terminated contract
func (c *Contract) Reactivate() {
	c.Active = true
	c.EndsAt = nil
	c.Touch()
}

// BillsIn reports whether the contract is active for the competency month
func (c *Contract) BillsIn(comp Competency) bool {
	if !c.Active {
		return false
	}
	monthStart := time.Date(comp.Year, comp.Month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	if !c.StartsAt.Before(monthEnd) {
		return false
	}
	if c.EndsAt != nil && c.EndsAt.Before(monthStart) {
		return false
	}
	return true
}

// DueDateFor resolves the due date for a competency, clamped to month end
func (c *Contract) DueDateFor(comp Competency) time.Time {
	return comp.DueDate(c.DueDay)
}

package finance

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the settlement status of a receivable
type ReceivableStatus string

const (
	ReceivableStatusOpen     ReceivableStatus = "A_RECEBER"
	ReceivableStatusReceived ReceivableStatus = "RECEBIDO"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	return s == ReceivableStatusOpen || s == ReceivableStatusReceived
}

// Receivable represents an amount owed by a client. Receivables generated
// from a recurring contract carry the contract reference and the competency
// month they bill, so a billing run never issues the same month twice.
type Receivable struct {
	shared.CompanyEntity
	Description    string           `gorm:"size:200;not null" json:"description"`
	ClientID       *uuid.UUID       `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Amount         decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	DueDate        time.Time        `gorm:"not null;index" json:"due_date"`
	Status         ReceivableStatus `gorm:"size:20;not null;default:A_RECEBER" json:"status"`
	ReceivedAt     *time.Time       `json:"received_at,omitempty"`
	ReceivedAmount decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"received_amount"`
	Category       string           `gorm:"size:80" json:"category"`
	Notes          string           `gorm:"type:text" json:"notes"`

	ContractID *uuid.UUID `gorm:"type:uuid;index:idx_receivables_contract_competency" json:"contract_id,omitempty"`
	Competency string     `gorm:"size:7;index:idx_receivables_contract_competency" json:"competency,omitempty"`

	SourceType string     `gorm:"size:40;index:idx_receivables_source" json:"source_type,omitempty"`
	SourceID   *uuid.UUID `gorm:"type:uuid;index:idx_receivables_source" json:"source_id,omitempty"`
}

// TableName returns the database table name
func (Receivable) TableName() string {
	return "receivables"
}

// NewReceivable creates a new open receivable
func NewReceivable(companyID uuid.UUID, description string, amount decimal.Decimal, dueDate time.Time) (*Receivable, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be empty")
	}

	return &Receivable{
		CompanyEntity:  shared.NewCompanyEntity(companyID),
		Description:    description,
		Amount:         amount,
		DueDate:        dueDate,
		Status:         ReceivableStatusOpen,
		ReceivedAmount: decimal.Zero,
	}, nil
}

// NewContractReceivable creates a receivable issued by a billing run for a
// contract and a competency month ("2026-08")
func NewContractReceivable(companyID uuid.UUID, contractID, clientID uuid.UUID, description string, amount decimal.Decimal, dueDate time.Time, competency string) (*Receivable, error) {
	r, err := NewReceivable(companyID, description, amount, dueDate)
	if err != nil {
		return nil, err
	}
	if contractID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract ID cannot be empty")
	}
	if competency == "" {
		return nil, shared.NewDomainError("INVALID_COMPETENCY", "Competency cannot be empty")
	}
	r.ContractID = &contractID
	if clientID != uuid.Nil {
		r.ClientID = &clientID
	}
	r.Competency = competency
	r.SourceType = SourceTypeContract
	r.SourceID = &contractID
	return r, nil
}

// Settle marks the receivable as received. Settling twice is an error.
func (r *Receivable) Settle(receivedAt time.Time, receivedAmount decimal.Decimal) error {
	if r.Status == ReceivableStatusReceived {
		return shared.ErrAlreadySettled
	}
	if receivedAmount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Received amount must be positive")
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}
	r.Status = ReceivableStatusReceived
	r.ReceivedAt = &receivedAt
	r.ReceivedAmount = receivedAmount
	r.UpdatedAt = time.Now()
	return nil
}

// Reopen reverts a settlement
func (r *Receivable) Reopen() error {
	if r.Status != ReceivableStatusReceived {
		return shared.NewDomainError("INVALID_STATE", "Only received receivables can be reopened")
	}
	r.Status = ReceivableStatusOpen
	r.ReceivedAt = nil
	r.ReceivedAmount = decimal.Zero
	r.Touch()
	return nil
}

// IsOverdue reports whether the receivable is open and past due at the given time
func (r *Receivable) IsOverdue(now time.Time) bool {
	return r.Status == ReceivableStatusOpen && r.DueDate.Before(truncateToDay(now))
}

// IsSettled reports whether the receivable has been received
func (r *Receivable) IsSettled() bool {
	return r.Status == ReceivableStatusReceived
}

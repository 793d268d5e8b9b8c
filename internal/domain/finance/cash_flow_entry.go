package finance

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashFlowType distinguishes money coming in from money going out
type CashFlowType string

const (
	CashFlowTypeIn  CashFlowType = "ENTRADA"
	CashFlowTypeOut CashFlowType = "SAIDA"
)

// IsValid checks if the type is a valid CashFlowType
func (t CashFlowType) IsValid() bool {
	return t == CashFlowTypeIn || t == CashFlowTypeOut
}

// Source document types recorded on ledger entries
const (
	SourceTypePayable    = "PAYABLE"
	SourceTypeReceivable = "RECEIVABLE"
	SourceTypeContract   = "CONTRACT"
	SourceTypeSale       = "SALE"
	SourceTypePurchase   = "PURCHASE"
	SourceTypePOS        = "POS"
	SourceTypeManual     = "MANUAL"
)

// CashFlowEntry is a row in the company ledger. Settling a payable or a
// receivable writes exactly one entry, in the same transaction.
type CashFlowEntry struct {
	shared.CompanyEntity
	Type        CashFlowType    `gorm:"size:10;not null;index" json:"type"`
	Description string          `gorm:"size:200;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Category    string          `gorm:"size:80" json:"category"`
	SourceType  string          `gorm:"size:40;index:idx_cash_flow_source" json:"source_type,omitempty"`
	SourceID    *uuid.UUID      `gorm:"type:uuid;index:idx_cash_flow_source" json:"source_id,omitempty"`
}

// TableName returns the database table name
func (CashFlowEntry) TableName() string {
	return "cash_flow_entries"
}

// NewCashFlowEntry creates a ledger entry
func NewCashFlowEntry(companyID uuid.UUID, entryType CashFlowType, description string, amount decimal.Decimal, date time.Time) (*CashFlowEntry, error) {
	if !entryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Cash flow type must be ENTRADA or SAIDA")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if date.IsZero() {
		date = time.Now()
	}

	return &CashFlowEntry{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Type:          entryType,
		Description:   description,
		Amount:        amount,
		Date:          date,
	}, nil
}

// EntryFromPayableSettlement builds the outflow entry for a paid payable
func EntryFromPayableSettlement(p *Payable) (*CashFlowEntry, error) {
	if !p.IsSettled() || p.PaidAt == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Payable is not settled")
	}
	entry, err := NewCashFlowEntry(p.CompanyID, CashFlowTypeOut, p.Description, p.PaidAmount, *p.PaidAt)
	if err != nil {
		return nil, err
	}
	entry.Category = p.Category
	entry.SourceType = SourceTypePayable
	sourceID := p.ID
	entry.SourceID = &sourceID
	return entry, nil
}

// EntryFromReceivableSettlement builds the inflow entry for a received receivable
func EntryFromReceivableSettlement(r *Receivable) (*CashFlowEntry, error) {
	if !r.IsSettled() || r.ReceivedAt == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Receivable is not settled")
	}
	entry, err := NewCashFlowEntry(r.CompanyID, CashFlowTypeIn, r.Description, r.ReceivedAmount, *r.ReceivedAt)
	if err != nil {
		return nil, err
	}
	entry.Category = r.Category
	entry.SourceType = SourceTypeReceivable
	sourceID := r.ID
	entry.SourceID = &sourceID
	return entry, nil
}

// SignedAmount returns the amount negated for outflows, for balance sums
func (e *CashFlowEntry) SignedAmount() decimal.Decimal {
	if e.Type == CashFlowTypeOut {
		return e.Amount.Neg()
	}
	return e.Amount
}

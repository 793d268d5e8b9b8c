package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePayableRequest registers a bill to pay
type CreatePayableRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	SupplierID  *uuid.UUID      `json:"supplier_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	Category    string          `json:"category" binding:"max=80"`
	Notes       string          `json:"notes"`
}

// UpdatePayableRequest updates an open payable
type UpdatePayableRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=200"`
	SupplierID  *uuid.UUID       `json:"supplier_id"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"due_date"`
	Category    *string          `json:"category" binding:"omitempty,max=80"`
	Notes       *string          `json:"notes"`
}

// CreateReceivableRequest registers an amount to collect
type CreateReceivableRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	ClientID    *uuid.UUID      `json:"client_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	Category    string          `json:"category" binding:"max=80"`
	Notes       string          `json:"notes"`
}

// UpdateReceivableRequest updates an open receivable
type UpdateReceivableRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=200"`
	ClientID    *uuid.UUID       `json:"client_id"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDate     *time.Time       `json:"due_date"`
	Category    *string          `json:"category" binding:"omitempty,max=80"`
	Notes       *string          `json:"notes"`
}

// SettleRequest liquidates a payable or a receivable. Amount falls back to
// the document amount and date to now.
type SettleRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Date   *time.Time       `json:"date"`
}

// CreateCashFlowEntryRequest records a manual ledger entry
type CreateCashFlowEntryRequest struct {
	Type        string          `json:"type" binding:"required,oneof=ENTRADA SAIDA"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        *time.Time      `json:"date"`
	Category    string          `json:"category" binding:"max=80"`
}

package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateContractRequest opens a recurring billing contract. DueDay falls
// back to the configured company default when omitted.
type CreateContractRequest struct {
	ClientID    uuid.UUID       `json:"client_id" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDay      *int            `json:"due_day" binding:"omitempty,min=1,max=31"`
	StartsAt    *time.Time      `json:"starts_at"`
	Notes       string          `json:"notes"`
}

// UpdateContractRequest updates a contract
type UpdateContractRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *decimal.Decimal `json:"amount"`
	DueDay      *int             `json:"due_day" binding:"omitempty,min=1,max=31"`
	Notes       *string          `json:"notes"`
}

// BillingRunRequest issues the receivables of one competency month.
// Competency defaults to the current month when empty.
type BillingRunRequest struct {
	Competency string `json:"competency" binding:"omitempty,len=7"`
}

// BillingRunResult summarizes one billing run. Existing counts contracts
// already billed for the competency; OutOfRange counts contracts whose
// billing window does not include it.
type BillingRunResult struct {
	Competency string `json:"competency"`
	Created    int    `json:"created"`
	Existing   int    `json:"existing"`
	OutOfRange int    `json:"out_of_range"`
}

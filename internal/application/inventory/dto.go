package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMovementRequest records a manual stock movement. Adjustment
// quantities may be negative; entries and exits must be positive.
type CreateMovementRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Type      string           `json:"type" binding:"required,oneof=ENTRADA SAIDA AJUSTE"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
	Date      *time.Time       `json:"date"`
	Reason    string           `json:"reason" binding:"max=200"`
}

// NoteItemInput is one product line in an incoming note payload
type NoteItemInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost  *decimal.Decimal `json:"unit_cost"`
}

// CreateIncomingNoteRequest creates a draft incoming note
type CreateIncomingNoteRequest struct {
	Number     string          `json:"number" binding:"required,min=1,max=50"`
	SupplierID *uuid.UUID      `json:"supplier_id"`
	IssuedAt   *time.Time      `json:"issued_at"`
	Items      []NoteItemInput `json:"items" binding:"required,min=1,dive"`
	Notes      string          `json:"notes"`
}

// UpdateIncomingNoteRequest updates a draft note; items replace the stored
// collection
type UpdateIncomingNoteRequest struct {
	Number     *string          `json:"number" binding:"omitempty,min=1,max=50"`
	SupplierID *uuid.UUID       `json:"supplier_id"`
	IssuedAt   *time.Time       `json:"issued_at"`
	Items      *[]NoteItemInput `json:"items" binding:"omitempty,min=1,dive"`
	Notes      *string          `json:"notes"`
}

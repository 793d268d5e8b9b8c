package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesItemInput is one product line in a sales order payload. Unit price
// falls back to the catalog price when omitted.
type SalesItemInput struct {
	ProductID       uuid.UUID        `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// CreateSalesOrderRequest creates a new open sales order
type CreateSalesOrderRequest struct {
	ClientID     uuid.UUID        `json:"client_id" binding:"required"`
	SellerID     *uuid.UUID       `json:"seller_id"`
	Items        []SalesItemInput `json:"items" binding:"required,min=1,dive"`
	Discount     string           `json:"discount" binding:"max=20"`
	Freight      decimal.Decimal  `json:"freight"`
	ExtraCharges decimal.Decimal  `json:"extra_charges"`
	Notes        string           `json:"notes"`
}

// UpdateSalesOrderRequest updates an open sales order. Items, when present,
// replace the stored collection.
type UpdateSalesOrderRequest struct {
	SellerID     *uuid.UUID        `json:"seller_id"`
	Items        *[]SalesItemInput `json:"items" binding:"omitempty,min=1,dive"`
	Discount     *string           `json:"discount" binding:"omitempty,max=20"`
	Freight      *decimal.Decimal  `json:"freight"`
	ExtraCharges *decimal.Decimal  `json:"extra_charges"`
	Notes        *string           `json:"notes"`
}

// PurchaseItemInput is one product line in a purchase order payload
type PurchaseItemInput struct {
	ProductID       uuid.UUID        `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitCost        *decimal.Decimal `json:"unit_cost"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	IPIPercent      decimal.Decimal  `json:"ipi_percent"`
}

// CreatePurchaseOrderRequest creates a new open purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   uuid.UUID           `json:"supplier_id" binding:"required"`
	Items        []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
	Discount     string              `json:"discount" binding:"max=20"`
	Freight      decimal.Decimal     `json:"freight"`
	ExtraCharges decimal.Decimal     `json:"extra_charges"`
	ExpectedAt   *time.Time          `json:"expected_at"`
	Notes        string              `json:"notes"`
}

// UpdatePurchaseOrderRequest updates an open purchase order
type UpdatePurchaseOrderRequest struct {
	Items        *[]PurchaseItemInput `json:"items" binding:"omitempty,min=1,dive"`
	Discount     *string              `json:"discount" binding:"omitempty,max=20"`
	Freight      *decimal.Decimal     `json:"freight"`
	ExtraCharges *decimal.Decimal     `json:"extra_charges"`
	ExpectedAt   *time.Time           `json:"expected_at"`
	Notes        *string              `json:"notes"`
}

// ReceivePurchaseOrderRequest confirms receipt of a purchase order.
// PayableDueDate, when set, generates an open payable for the order total.
type ReceivePurchaseOrderRequest struct {
	PayableDueDate *time.Time `json:"payable_due_date"`
}

// ServiceItemInput is one service line in a service order payload
type ServiceItemInput struct {
	ServiceID       uuid.UUID        `json:"service_id" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
}

// CreateServiceOrderRequest opens a new service order in the quote stage
type CreateServiceOrderRequest struct {
	ClientID      uuid.UUID          `json:"client_id" binding:"required"`
	SellerID      *uuid.UUID         `json:"seller_id"`
	Description   string             `json:"description"`
	Equipment     string             `json:"equipment" binding:"max=200"`
	ReportedIssue string             `json:"reported_issue"`
	Items         []ServiceItemInput `json:"items" binding:"dive"`
	Discount      string             `json:"discount" binding:"max=20"`
	DueAt         *time.Time         `json:"due_at"`
}

// UpdateServiceOrderRequest updates a service order that has not reached a
// terminal stage
type UpdateServiceOrderRequest struct {
	SellerID       *uuid.UUID          `json:"seller_id"`
	Description    *string             `json:"description"`
	Equipment      *string             `json:"equipment" binding:"omitempty,max=200"`
	ReportedIssue  *string             `json:"reported_issue"`
	TechnicalNotes *string             `json:"technical_notes"`
	Items          *[]ServiceItemInput `json:"items" binding:"omitempty,dive"`
	Discount       *string             `json:"discount" binding:"omitempty,max=20"`
	DueAt          *time.Time          `json:"due_at"`
}

// MoveServiceOrderRequest moves a service order to another kanban stage
type MoveServiceOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=ORCAMENTO ABERTA EM_ANDAMENTO FINALIZADA CANCELADA"`
}

package trade

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusOpen      PurchaseOrderStatus = "ABERTO"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEBIDO"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELADO"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusOpen, PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrderItem represents a line item in a purchase order. Purchase
// lines may carry an IPI tax percentage applied on top of the discounted
// line total.
type PurchaseOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName     string          `gorm:"size:160;not null" json:"product_name"`
	Quantity        decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	UnitCost        decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_cost"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	IPIPercent      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"ipi_percent"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
	IPIAmount       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"ipi_amount"`
}

// LineTotal computes quantity x unit cost x (1 - discount/100), before tax
func (i *PurchaseOrderItem) LineTotal() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(i.DiscountPercent.Div(decimal.NewFromInt(100)))
	return i.Quantity.Mul(i.UnitCost).Mul(factor).Round(2)
}

// LineIPI computes the IPI tax amount over the discounted line total
func (i *PurchaseOrderItem) LineIPI() decimal.Decimal {
	return i.LineTotal().Mul(i.IPIPercent).Div(decimal.NewFromInt(100)).Round(2)
}

// PurchaseOrder represents an order placed with a supplier
type PurchaseOrder struct {
	shared.CompanyEntity
	Number         string              `gorm:"size:50;not null;index" json:"number"`
	SupplierID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"supplier_id"`
	SupplierName   string              `gorm:"size:160;not null" json:"supplier_name"` // denormalized for list views
	Status         PurchaseOrderStatus `gorm:"size:20;not null;default:ABERTO" json:"status"`
	Discount       string              `gorm:"size:20" json:"discount"`
	Freight        decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"freight"`
	ExtraCharges   decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"extra_charges"`
	Subtotal       decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	IPITotal       decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"ipi_total"`
	Total          decimal.Decimal     `gorm:"type:numeric(14,2);not null;default:0" json:"total"`
	Notes          string              `gorm:"type:text" json:"notes"`
	ExpectedAt     *time.Time          `json:"expected_at,omitempty"`
	ReceivedAt     *time.Time          `json:"received_at,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`

	Items []PurchaseOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName returns the database table name
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new open purchase order
func NewPurchaseOrder(companyID uuid.UUID, number string, supplierID uuid.UUID, supplierName string) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &PurchaseOrder{
		CompanyEntity:  shared.NewCompanyEntity(companyID),
		Number:         number,
		SupplierID:     supplierID,
		SupplierName:   supplierName,
		Status:         PurchaseOrderStatusOpen,
		Freight:        decimal.Zero,
		ExtraCharges:   decimal.Zero,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		IPITotal:       decimal.Zero,
		Total:          decimal.Zero,
		Items:          make([]PurchaseOrderItem, 0),
	}, nil
}

// AddItem adds a line item and recomputes totals. Only allowed while open.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productName string, quantity, unitCost, discountPercent, ipiPercent decimal.Decimal) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-open order")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Line discount must be between 0 and 100")
	}
	if ipiPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_IPI", "IPI percent cannot be negative")
	}

	item := PurchaseOrderItem{
		ID:              uuid.New(),
		OrderID:         o.ID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		UnitCost:        unitCost,
		DiscountPercent: discountPercent,
		IPIPercent:      ipiPercent,
	}
	item.Total = item.LineTotal()
	item.IPIAmount = item.LineIPI()
	o.Items = append(o.Items, item)
	o.RecalculateTotals()
	return &o.Items[len(o.Items)-1], nil
}

// ReplaceItems swaps the whole item collection and recomputes totals
func (o *PurchaseOrder) ReplaceItems(items []PurchaseOrderItem) error {
	if o.Status != PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot replace items of a non-open order")
	}
	replaced := make([]PurchaseOrderItem, 0, len(items))
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.OrderID = o.ID
		it.Total = it.LineTotal()
		it.IPIAmount = it.LineIPI()
		replaced = append(replaced, it)
	}
	o.Items = replaced
	o.RecalculateTotals()
	return nil
}

// SetAdjustments sets the header-level adjustments and recomputes totals
func (o *PurchaseOrder) SetAdjustments(discount string, freight, extraCharges decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a non-open order")
	}
	if freight.IsNegative() || extraCharges.IsNegative() {
		return shared.NewDomainError("INVALID_ADJUSTMENT", "Freight and extra charges cannot be negative")
	}
	o.Discount = discount
	o.Freight = freight
	o.ExtraCharges = extraCharges
	o.RecalculateTotals()
	return nil
}

// RecalculateTotals recomputes subtotal, discount, IPI and grand total from
// the current items and header adjustments.
func (o *PurchaseOrder) RecalculateTotals() {
	subtotal := decimal.Zero
	ipi := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].Total = o.Items[idx].LineTotal()
		o.Items[idx].IPIAmount = o.Items[idx].LineIPI()
		subtotal = subtotal.Add(o.Items[idx].Total)
		ipi = ipi.Add(o.Items[idx].IPIAmount)
	}
	o.Subtotal = subtotal
	o.IPITotal = ipi
	o.DiscountAmount = ResolveHeaderDiscount(o.Discount, subtotal).Round(2)
	o.Total = subtotal.Sub(o.DiscountAmount).Add(o.IPITotal).Add(o.Freight).Add(o.ExtraCharges).Round(2)
	o.Touch()
}

// Receive marks the order as received
func (o *PurchaseOrder) Receive() error {
	if o.Status != PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot receive an order without items")
	}
	now := time.Now()
	o.Status = PurchaseOrderStatusReceived
	o.ReceivedAt = &now
	o.UpdatedAt = now
	return nil
}

// Cancel cancels the order
func (o *PurchaseOrder) Cancel() error {
	if o.Status != PurchaseOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	return nil
}

package trade

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderStatus represents the lifecycle status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusOpen      SalesOrderStatus = "ABERTO"
	SalesOrderStatusInvoiced  SalesOrderStatus = "FATURADO"
	SalesOrderStatusDelivered SalesOrderStatus = "ENTREGUE"
	SalesOrderStatusCancelled SalesOrderStatus = "CANCELADO"
)

// IsValid checks if the status is a valid SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusOpen, SalesOrderStatusInvoiced, SalesOrderStatusDelivered, SalesOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusOpen:
		return target == SalesOrderStatusInvoiced || target == SalesOrderStatusCancelled
	case SalesOrderStatusInvoiced:
		return target == SalesOrderStatusDelivered || target == SalesOrderStatusCancelled
	case SalesOrderStatusDelivered, SalesOrderStatusCancelled:
		return false
	}
	return false
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName     string          `gorm:"size:160;not null" json:"product_name"`
	Quantity        decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	WeightKg        decimal.Decimal `gorm:"type:numeric(10,3);not null;default:0" json:"weight_kg"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
}

// LineTotal computes quantity x unit price x (1 - discount/100)
func (i *SalesOrderItem) LineTotal() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(i.DiscountPercent.Div(decimal.NewFromInt(100)))
	return i.Quantity.Mul(i.UnitPrice).Mul(factor).Round(2)
}

// SalesOrder represents a customer order. Monetary totals are always a pure
// function of the current items plus the header adjustments and are
// recomputed on every mutation.
type SalesOrder struct {
	shared.CompanyEntity
	Number         string           `gorm:"size:50;not null;index" json:"number"`
	ClientID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName     string           `gorm:"size:160;not null" json:"client_name"` // denormalized for list views
	SellerID       *uuid.UUID       `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	SellerName     string           `gorm:"size:160" json:"seller_name"`
	Status         SalesOrderStatus `gorm:"size:20;not null;default:ABERTO" json:"status"`
	Discount       string           `gorm:"size:20" json:"discount"` // "10%" or flat "50.00"
	Freight        decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"freight"`
	ExtraCharges   decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"extra_charges"`
	Subtotal       decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	Total          decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"total"`
	TotalWeightKg  decimal.Decimal  `gorm:"type:numeric(12,3);not null;default:0" json:"total_weight_kg"`
	Notes          string           `gorm:"type:text" json:"notes"`
	InvoicedAt     *time.Time       `json:"invoiced_at,omitempty"`
	DeliveredAt    *time.Time       `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time       `json:"cancelled_at,omitempty"`

	Items []SalesOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName returns the database table name
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new open sales order
func NewSalesOrder(companyID uuid.UUID, number string, clientID uuid.UUID, clientName string) (*SalesOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	return &SalesOrder{
		CompanyEntity:  shared.NewCompanyEntity(companyID),
		Number:         number,
		ClientID:       clientID,
		ClientName:     clientName,
		Status:         SalesOrderStatusOpen,
		Freight:        decimal.Zero,
		ExtraCharges:   decimal.Zero,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
		TotalWeightKg:  decimal.Zero,
		Items:          make([]SalesOrderItem, 0),
	}, nil
}

// AddItem adds a line item and recomputes totals. Only allowed while open.
func (o *SalesOrder) AddItem(productID uuid.UUID, productName string, quantity, unitPrice, discountPercent, weightKg decimal.Decimal) (*SalesOrderItem, error) {
	if o.Status != SalesOrderStatusOpen {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-open order")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Line discount must be between 0 and 100")
	}

	item := SalesOrderItem{
		ID:              uuid.New(),
		OrderID:         o.ID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		WeightKg:        weightKg,
	}
	item.Total = item.LineTotal()
	o.Items = append(o.Items, item)
	o.RecalculateTotals()
	return &o.Items[len(o.Items)-1], nil
}

// UpdateItemQuantity replaces a line quantity and recomputes totals
func (o *SalesOrder) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if o.Status != SalesOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items of a non-open order")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items[idx].Quantity = quantity
			o.Items[idx].Total = o.Items[idx].LineTotal()
			o.RecalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item and recomputes totals
func (o *SalesOrder) RemoveItem(itemID uuid.UUID) error {
	if o.Status != SalesOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-open order")
	}
	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.RecalculateTotals()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ReplaceItems swaps the whole item collection and recomputes totals
func (o *SalesOrder) ReplaceItems(items []SalesOrderItem) error {
	if o.Status != SalesOrderStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Cannot replace items of a non-open order")
	}
	replaced := make([]SalesOrderItem, 0, len(items))
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.OrderID = o.ID
		it.Total = it.LineTotal()
		replaced = append(replaced, it)
	}
	o.Items = replaced
	o.RecalculateTotals()
	return nil
}

// SetAdjustments sets the header-level adjustments and recomputes totals
func (o *SalesOrder) SetAdjustments(discount string, freight, extraCharges decimal.Decimal) error {
	if o.Status != SalesOrderStatusOpen {
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

// AssignSeller attaches the seller responsible for the order
func (o *SalesOrder) AssignSeller(sellerID uuid.UUID, sellerName string) {
	o.SellerID = &sellerID
	o.SellerName = sellerName
	o.Touch()
}

// RecalculateTotals recomputes subtotal, discount amount, weight and grand
// total from the current items and header adjustments.
func (o *SalesOrder) RecalculateTotals() {
	subtotal := decimal.Zero
	weight := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].Total = o.Items[idx].LineTotal()
		subtotal = subtotal.Add(o.Items[idx].Total)
		weight = weight.Add(o.Items[idx].WeightKg.Mul(o.Items[idx].Quantity))
	}
	o.Subtotal = subtotal
	o.TotalWeightKg = weight.Round(3)
	o.DiscountAmount = ResolveHeaderDiscount(o.Discount, subtotal).Round(2)
	o.Total = subtotal.Sub(o.DiscountAmount).Add(o.Freight).Add(o.ExtraCharges).Round(2)
	o.Touch()
}

// Invoice transitions the order from ABERTO to FATURADO
func (o *SalesOrder) Invoice() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusInvoiced) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot invoice order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot invoice an order without items")
	}
	now := time.Now()
	o.Status = SalesOrderStatusInvoiced
	o.InvoicedAt = &now
	o.UpdatedAt = now
	return nil
}

// Deliver transitions the order from FATURADO to ENTREGUE
func (o *SalesOrder) Deliver() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = SalesOrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	return nil
}

// Cancel cancels the order
func (o *SalesOrder) Cancel() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	now := time.Now()
	o.Status = SalesOrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	return nil
}

// IsOpen returns true while the order accepts modifications
func (o *SalesOrder) IsOpen() bool {
	return o.Status == SalesOrderStatusOpen
}

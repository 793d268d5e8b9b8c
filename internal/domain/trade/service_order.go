package trade

import (
	"fmt"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceOrderStatus represents a column on the service order board
type ServiceOrderStatus string

const (
	ServiceOrderStatusQuote      ServiceOrderStatus = "ORCAMENTO"
	ServiceOrderStatusOpen       ServiceOrderStatus = "ABERTA"
	ServiceOrderStatusInProgress ServiceOrderStatus = "EM_ANDAMENTO"
	ServiceOrderStatusDone       ServiceOrderStatus = "FINALIZADA"
	ServiceOrderStatusCancelled  ServiceOrderStatus = "CANCELADA"
)

// IsValid checks if the status is a valid ServiceOrderStatus
func (s ServiceOrderStatus) IsValid() bool {
	switch s {
	case ServiceOrderStatusQuote, ServiceOrderStatusOpen, ServiceOrderStatusInProgress,
		ServiceOrderStatusDone, ServiceOrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the order lifecycle
func (s ServiceOrderStatus) IsTerminal() bool {
	return s == ServiceOrderStatusDone || s == ServiceOrderStatusCancelled
}

// CanTransitionTo checks if the order can move to the target column. Orders
// move freely between non-terminal columns; terminal columns are reachable
// from any non-terminal one and never left.
func (s ServiceOrderStatus) CanTransitionTo(target ServiceOrderStatus) bool {
	if !target.IsValid() || s == target {
		return false
	}
	return !s.IsTerminal()
}

// ServiceOrderItem represents a service (or package) line on a service order
type ServiceOrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ServiceID       uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName     string          `gorm:"size:160;not null" json:"service_name"`
	Quantity        decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_percent"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`
}

// LineTotal computes quantity x unit price x (1 - discount/100)
func (i *ServiceOrderItem) LineTotal() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(i.DiscountPercent.Div(decimal.NewFromInt(100)))
	return i.Quantity.Mul(i.UnitPrice).Mul(factor).Round(2)
}

// ServiceOrder represents work performed for a client, tracked on a kanban
// board from quote to completion
type ServiceOrder struct {
	shared.CompanyEntity
	Number         string             `gorm:"size:50;not null;index" json:"number"`
	ClientID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"client_id"`
	ClientName     string             `gorm:"size:160;not null" json:"client_name"`
	SellerID       *uuid.UUID         `gorm:"type:uuid;index" json:"seller_id,omitempty"`
	Status         ServiceOrderStatus `gorm:"size:20;not null;default:ORCAMENTO" json:"status"`
	Description    string             `gorm:"type:text" json:"description"`
	Equipment      string             `gorm:"size:200" json:"equipment"`
	ReportedIssue  string             `gorm:"type:text" json:"reported_issue"`
	TechnicalNotes string             `gorm:"type:text" json:"technical_notes"`
	Discount       string             `gorm:"size:20" json:"discount"`
	Subtotal       decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"subtotal"`
	DiscountAmount decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"discount_amount"`
	Total          decimal.Decimal    `gorm:"type:numeric(14,2);not null;default:0" json:"total"`
	DueAt          *time.Time         `json:"due_at,omitempty"`
	FinishedAt     *time.Time         `json:"finished_at,omitempty"`
	CancelledAt    *time.Time         `json:"cancelled_at,omitempty"`

	Items []ServiceOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName returns the database table name
func (ServiceOrder) TableName() string {
	return "service_orders"
}

// NewServiceOrder creates a new service order in the quote column
func NewServiceOrder(companyID uuid.UUID, number string, clientID uuid.UUID, clientName string) (*ServiceOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	return &ServiceOrder{
		CompanyEntity:  shared.NewCompanyEntity(companyID),
		Number:         number,
		ClientID:       clientID,
		ClientName:     clientName,
		Status:         ServiceOrderStatusQuote,
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		Total:          decimal.Zero,
		Items:          make([]ServiceOrderItem, 0),
	}, nil
}

// AddItem adds a service line and recomputes totals
func (o *ServiceOrder) AddItem(serviceID uuid.UUID, serviceName string, quantity, unitPrice, discountPercent decimal.Decimal) (*ServiceOrderItem, error) {
	if o.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a closed order")
	}
	if serviceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SERVICE", "Service ID cannot be empty")
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

	item := ServiceOrderItem{
		ID:              uuid.New(),
		OrderID:         o.ID,
		ServiceID:       serviceID,
		ServiceName:     serviceName,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
	}
	item.Total = item.LineTotal()
	o.Items = append(o.Items, item)
	o.RecalculateTotals()
	return &o.Items[len(o.Items)-1], nil
}

// ReplaceItems swaps the whole item collection and recomputes totals
func (o *ServiceOrder) ReplaceItems(items []ServiceOrderItem) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot replace items of a closed order")
	}
	replaced := make([]ServiceOrderItem, 0, len(items))
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

// SetDiscount sets the header discount expression and recomputes totals
func (o *ServiceOrder) SetDiscount(discount string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot adjust a closed order")
	}
	o.Discount = discount
	o.RecalculateTotals()
	return nil
}

// RecalculateTotals recomputes subtotal, discount and total from the items
func (o *ServiceOrder) RecalculateTotals() {
	subtotal := decimal.Zero
	for idx := range o.Items {
		o.Items[idx].Total = o.Items[idx].LineTotal()
		subtotal = subtotal.Add(o.Items[idx].Total)
	}
	o.Subtotal = subtotal
	o.DiscountAmount = ResolveHeaderDiscount(o.Discount, subtotal).Round(2)
	o.Total = subtotal.Sub(o.DiscountAmount).Round(2)
	o.Touch()
}

// MoveTo moves the order to another board column
func (o *ServiceOrder) MoveTo(target ServiceOrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %s", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}
	now := time.Now()
	o.Status = target
	switch target {
	case ServiceOrderStatusDone:
		o.FinishedAt = &now
	case ServiceOrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	return nil
}

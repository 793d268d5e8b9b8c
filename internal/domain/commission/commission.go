package commission

import (
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionStatus represents the payment status of a commission
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "PENDENTE"
	CommissionStatusPaid    CommissionStatus = "PAGA"
)

// IsValid checks if the status is a valid CommissionStatus
func (s CommissionStatus) IsValid() bool {
	return s == CommissionStatusPending || s == CommissionStatusPaid
}

// Commission is a seller's cut on an invoiced sale, computed from the
// seller's percentage at invoicing time
type Commission struct {
	shared.CompanyEntity
	SellerID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"seller_id"`
	SellerName  string           `gorm:"size:160;not null" json:"seller_name"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderNumber string           `gorm:"size:50;not null" json:"order_number"`
	BaseAmount  decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"base_amount"`
	Percent     decimal.Decimal  `gorm:"type:numeric(5,2);not null" json:"percent"`
	Amount      decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	Status      CommissionStatus `gorm:"size:20;not null;default:PENDENTE" json:"status"`
	PaidAt      *time.Time       `json:"paid_at,omitempty"`
}

// TableName returns the database table name
func (Commission) TableName() string {
	return "commissions"
}

// NewCommission creates a pending commission over an order total
func NewCommission(companyID, sellerID uuid.UUID, sellerName string, orderID uuid.UUID, orderNumber string, baseAmount, percent decimal.Decimal) (*Commission, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if baseAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Base amount cannot be negative")
	}
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_PERCENT", "Percent must be between 0 and 100")
	}

	return &Commission{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		SellerID:      sellerID,
		SellerName:    sellerName,
		OrderID:       orderID,
		OrderNumber:   orderNumber,
		BaseAmount:    baseAmount,
		Percent:       percent,
		Amount:        baseAmount.Mul(percent).Div(decimal.NewFromInt(100)).Round(2),
		Status:        CommissionStatusPending,
	}, nil
}

// MarkPaid settles the commission
func (c *Commission) MarkPaid(paidAt time.Time) error {
	if c.Status == CommissionStatusPaid {
		return shared.ErrAlreadySettled
	}
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	c.Status = CommissionStatusPaid
	c.PaidAt = &paidAt
	c.UpdatedAt = time.Now()
	return nil
}

package partner

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Seller represents a salesperson who earns commission on invoiced orders
type Seller struct {
	shared.CompanyEntity
	Name              string          `gorm:"size:160;not null" json:"name"`
	Email             string          `gorm:"size:160" json:"email"`
	Phone             string          `gorm:"size:40" json:"phone"`
	CommissionPercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"commission_percent"`
	Active            bool            `gorm:"not null;default:true" json:"active"`
}

// TableName returns the database table name
func (Seller) TableName() string {
	return "sellers"
}

// NewSeller creates a new seller
func NewSeller(companyID uuid.UUID, name string, commissionPercent decimal.Decimal) (*Seller, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Seller name cannot be empty")
	}
	if commissionPercent.IsNegative() || commissionPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_COMMISSION", "Commission percent must be between 0 and 100")
	}

	return &Seller{
		CompanyEntity:     shared.NewCompanyEntity(companyID),
		Name:              strings.TrimSpace(name),
		CommissionPercent: commissionPercent,
		Active:            true,
	}, nil
}

// SetCommissionPercent updates the commission rate
func (s *Seller) SetCommissionPercent(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_COMMISSION", "Commission percent must be between 0 and 100")
	}
	s.CommissionPercent = pct
	s.Touch()
	return nil
}

// Deactivate marks the seller inactive
func (s *Seller) Deactivate() {
	s.Active = false
	s.Touch()
}

// Activate marks the seller active
func (s *Seller) Activate() {
	s.Active = true
	s.Touch()
}

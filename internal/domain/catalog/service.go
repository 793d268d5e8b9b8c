package catalog

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service represents a sellable service. Services referenced by historical
// order lines are deactivated instead of deleted so those references stay
// resolvable.
type Service struct {
	shared.CompanyEntity
	Name        string          `gorm:"size:160;not null;index" json:"name"`
	Code        string          `gorm:"size:50" json:"code"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
}

// TableName returns the database table name
func (Service) TableName() string {
	return "services"
}

// NewService creates a new service
func NewService(companyID uuid.UUID, name string, price decimal.Decimal) (*Service, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Service name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Service price cannot be negative")
	}

	return &Service{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          strings.TrimSpace(name),
		Price:         price,
		Active:        true,
	}, nil
}

// SetPrice updates the service price
func (s *Service) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Service price cannot be negative")
	}
	s.Price = price
	s.Touch()
	return nil
}

// Deactivate marks the service inactive
func (s *Service) Deactivate() {
	s.Active = false
	s.Touch()
}

// Activate marks the service active
func (s *Service) Activate() {
	s.Active = true
	s.Touch()
}

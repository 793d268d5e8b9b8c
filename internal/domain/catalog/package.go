package catalog

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageItem is a child record of a service package
type PackageItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PackageID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"package_id"`
	ServiceID   uuid.UUID       `gorm:"type:uuid;not null" json:"service_id"`
	ServiceName string          `gorm:"size:160;not null" json:"service_name"`
	Quantity    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:1" json:"quantity"`
}

// Package bundles services under a single fixed price
type Package struct {
	shared.CompanyEntity
	Name        string          `gorm:"size:160;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Active      bool            `gorm:"not null;default:true" json:"active"`

	Items []PackageItem `gorm:"foreignKey:PackageID" json:"items,omitempty"`
}

// TableName returns the database table name
func (Package) TableName() string {
	return "packages"
}

// NewPackage creates a new service package
func NewPackage(companyID uuid.UUID, name string, price decimal.Decimal) (*Package, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Package name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Package price cannot be negative")
	}

	return &Package{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          strings.TrimSpace(name),
		Price:         price,
		Active:        true,
		Items:         make([]PackageItem, 0),
	}, nil
}

// ReplaceItems swaps the whole item collection
func (p *Package) ReplaceItems(items []PackageItem) {
	replaced := make([]PackageItem, 0, len(items))
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		it.PackageID = p.ID
		replaced = append(replaced, it)
	}
	p.Items = replaced
	p.Touch()
}

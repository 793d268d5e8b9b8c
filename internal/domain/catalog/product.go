package catalog

import (
	"strings"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a sellable stocked item
type Product struct {
	shared.CompanyEntity
	Name        string          `gorm:"size:160;not null;index" json:"name"`
	Code        string          `gorm:"size:50;index" json:"code"`
	Description string          `gorm:"type:text" json:"description"`
	Unit        string          `gorm:"size:10;not null;default:UN" json:"unit"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"price"`
	Cost        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"cost"`
	Stock       decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"stock"`
	MinStock    decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"min_stock"`
	WeightKg    decimal.Decimal `gorm:"type:numeric(10,3);not null;default:0" json:"weight_kg"`
	NCM         string          `gorm:"size:10" json:"ncm"`
	ImagePath   string          `gorm:"size:300" json:"image_path"`
	Active      bool            `gorm:"not null;default:true" json:"active"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(companyID uuid.UUID, name, unit string, price, cost decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Product cost cannot be negative")
	}
	if unit == "" {
		unit = "UN"
	}

	return &Product{
		CompanyEntity: shared.NewCompanyEntity(companyID),
		Name:          strings.TrimSpace(name),
		Unit:          unit,
		Price:         price,
		Cost:          cost,
		Stock:         decimal.Zero,
		MinStock:      decimal.Zero,
		WeightKg:      decimal.Zero,
		Active:        true,
	}, nil
}

// SetPrice updates the sale price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// ApplyStockDelta adjusts the cached stock quantity. Positive deltas are
// entries, negative deltas are exits. The movement ledger is the audit
// trail; this field is the current snapshot.
func (p *Product) ApplyStockDelta(delta decimal.Decimal) {
	p.Stock = p.Stock.Add(delta)
	p.Touch()
}

// BelowMinimum returns true when current stock is under the alert threshold
func (p *Product) BelowMinimum() bool {
	return p.MinStock.IsPositive() && p.Stock.LessThan(p.MinStock)
}

// SetImagePath records the blob storage path of the product image
func (p *Product) SetImagePath(path string) {
	p.ImagePath = path
	p.Touch()
}

// Activate marks the product active
func (p *Product) Activate() {
	p.Active = true
	p.Touch()
}

// Deactivate marks the product inactive
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

package catalog

import (
	"github.com/gestor-erp/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest creates a new product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=160"`
	Code        string          `json:"code" binding:"max=50"`
	Description string          `json:"description"`
	Unit        string          `json:"unit" binding:"max=10"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       decimal.Decimal `json:"stock"`
	MinStock    decimal.Decimal `json:"min_stock"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	NCM         string          `json:"ncm" binding:"max=10"`
}

// UpdateProductRequest updates an existing product. Stock is not part of the
// payload: it only moves through inventory movements.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=160"`
	Code        *string          `json:"code" binding:"omitempty,max=50"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit" binding:"omitempty,max=10"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	WeightKg    *decimal.Decimal `json:"weight_kg"`
	NCM         *string          `json:"ncm" binding:"omitempty,max=10"`
	Active      *bool            `json:"active"`
}

// CreateServiceRequest creates a new service
type CreateServiceRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=160"`
	Code        string          `json:"code" binding:"max=50"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateServiceRequest updates an existing service
type UpdateServiceRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=160"`
	Code        *string          `json:"code" binding:"omitempty,max=50"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// PackageItemInput is one bundled service in a package payload
type PackageItemInput struct {
	ServiceID   uuid.UUID       `json:"service_id" binding:"required"`
	ServiceName string          `json:"service_name" binding:"required,min=1,max=160"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreatePackageRequest creates a new service package
type CreatePackageRequest struct {
	Name        string             `json:"name" binding:"required,min=1,max=160"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Items       []PackageItemInput `json:"items" binding:"dive"`
}

// UpdatePackageRequest updates a package; items replace the stored collection
type UpdatePackageRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1,max=160"`
	Description *string             `json:"description"`
	Price       *decimal.Decimal    `json:"price"`
	Active      *bool               `json:"active"`
	Items       *[]PackageItemInput `json:"items" binding:"omitempty,dive"`
}

func packageItemsFromInput(inputs []PackageItemInput) []catalog.PackageItem {
	items := make([]catalog.PackageItem, 0, len(inputs))
	for _, in := range inputs {
		qty := in.Quantity
		if qty.LessThanOrEqual(decimal.Zero) {
			qty = decimal.NewFromInt(1)
		}
		items = append(items, catalog.PackageItem{
			ID:          uuid.New(),
			ServiceID:   in.ServiceID,
			ServiceName: in.ServiceName,
			Quantity:    qty,
		})
	}
	return items
}

package catalog

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository persists products
type ProductRepository interface {
	shared.CompanyRepository[Product]
	SearchByName(ctx context.Context, companyID uuid.UUID, name string, limit int) ([]Product, error)
	FindBelowMinimum(ctx context.Context, companyID uuid.UUID) ([]Product, error)
	// AdjustStock applies a stock delta atomically at the database level
	AdjustStock(ctx context.Context, companyID, productID uuid.UUID, delta decimal.Decimal) error
	// PatchForCompany applies a partial update from an application-convention
	// field map without rewriting the full row
	PatchForCompany(ctx context.Context, companyID, id uuid.UUID, fields map[string]any) error
}

// ServiceRepository persists services
type ServiceRepository interface {
	shared.CompanyRepository[Service]
	// InUse reports whether the service is referenced by any order line,
	// in which case it must be deactivated rather than deleted.
	InUse(ctx context.Context, companyID, serviceID uuid.UUID) (bool, error)
}

// PackageRepository persists service packages and their items
type PackageRepository interface {
	shared.CompanyRepository[Package]
}

package partner

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientRepository persists clients and their contact collections
type ClientRepository interface {
	shared.CompanyRepository[Client]
	// SearchByName performs a free-text name search. When supplierOnly is
	// true only records flagged as suppliers are returned.
	SearchByName(ctx context.Context, companyID uuid.UUID, name string, supplierOnly bool, limit int) ([]Client, error)
}

// SellerRepository persists sellers
type SellerRepository interface {
	shared.CompanyRepository[Seller]
	FindActive(ctx context.Context, companyID uuid.UUID) ([]Seller, error)
}

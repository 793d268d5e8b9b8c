package trade

import (
	"context"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesOrderRepository defines persistence operations for sales orders
type SalesOrderRepository interface {
	shared.CompanyRepository[SalesOrder]

	// NextNumber allocates the next sequential order number for the company,
	// formatted like "PV-2026-00042"
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	FindByStatus(ctx context.Context, companyID uuid.UUID, status SalesOrderStatus, filter shared.Filter) (*shared.Paginated[SalesOrder], error)
	FindByClient(ctx context.Context, companyID, clientID uuid.UUID, filter shared.Filter) (*shared.Paginated[SalesOrder], error)
}

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	shared.CompanyRepository[PurchaseOrder]

	// NextNumber allocates the next sequential order number for the company,
	// formatted like "PC-2026-00042"
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	FindByStatus(ctx context.Context, companyID uuid.UUID, status PurchaseOrderStatus, filter shared.Filter) (*shared.Paginated[PurchaseOrder], error)
	FindBySupplier(ctx context.Context, companyID, supplierID uuid.UUID, filter shared.Filter) (*shared.Paginated[PurchaseOrder], error)
}

// ServiceOrderRepository defines persistence operations for service orders
type ServiceOrderRepository interface {
	shared.CompanyRepository[ServiceOrder]

	// NextNumber allocates the next sequential order number for the company,
	// formatted like "OS-2026-00042"
	NextNumber(ctx context.Context, companyID uuid.UUID) (string, error)
	// FindBoard returns all non-archived orders grouped for the kanban view
	FindBoard(ctx context.Context, companyID uuid.UUID) ([]ServiceOrder, error)
	FindByStatus(ctx context.Context, companyID uuid.UUID, status ServiceOrderStatus, filter shared.Filter) (*shared.Paginated[ServiceOrder], error)
}

package commission

import (
	"context"
	"time"

	"github.com/gestor-erp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRepository defines persistence operations for commissions
type CommissionRepository interface {
	shared.CompanyRepository[Commission]

	FindBySeller(ctx context.Context, companyID, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Commission], error)
	FindByOrder(ctx context.Context, companyID, orderID uuid.UUID) (*Commission, error)
	SumPendingBySeller(ctx context.Context, companyID, sellerID uuid.UUID) (decimal.Decimal, error)
	FindByPeriod(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]Commission, error)
}
